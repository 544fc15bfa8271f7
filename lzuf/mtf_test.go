// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzuf

import "testing"

func TestMtfRank(t *testing.T) {
	var m mtfRank
	m.Init()

	// On an identity list, the rank of any byte equals its own value.
	if r := m.Rank(0x41); r != 0x41 {
		t.Fatalf("Rank(0x41) = %d, want 65", r)
	}
	assertPermutation(t, &m)
	if m.list[0] != 0x41 {
		t.Fatalf("list[0] = %#x, want 0x41", m.list[0])
	}

	// A repeated byte is now at the front, so its rank is 0.
	if r := m.Rank(0x41); r != 0 {
		t.Fatalf("Rank(0x41) = %d, want 0", r)
	}
	assertPermutation(t, &m)

	// A second distinct byte ranks one higher than its value, since 0x41 now
	// sits ahead of it.
	if r := m.Rank(0x00); r != 1 {
		t.Fatalf("Rank(0x00) = %d, want 1", r)
	}
	assertPermutation(t, &m)
	if m.list[0] != 0x00 || m.list[1] != 0x41 {
		t.Fatalf("list[:2] = %v, want [0x00 0x41]", m.list[:2])
	}
}

func TestMtfRankSequence(t *testing.T) {
	var m mtfRank
	m.Init()
	for _, b := range []byte("mississippi") {
		m.Rank(b)
		assertPermutation(t, &m)
	}
}

func assertPermutation(t *testing.T, m *mtfRank) {
	t.Helper()
	var seen [256]bool
	for _, b := range m.list {
		if seen[b] {
			t.Fatalf("list is not a permutation: %d appears more than once", b)
		}
		seen[b] = true
	}
}
