// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzuf

// mtfRank implements the move-to-front rank transform over the full byte
// alphabet. Unlike bzip2's moveToFront (which operates over a block-local
// dictionary of only the bytes present in that block, and folds in a
// run-length stage), this variant always ranks across all 256 byte values,
// since the adaptive coder downstream needs a stable 256-symbol alphabet.
type mtfRank struct {
	list [256]byte
}

// Init resets the rank list to identity order: list[i] == i.
func (m *mtfRank) Init() {
	for i := range m.list {
		m.list[i] = byte(i)
	}
}

// Rank returns the current rank of b (the index r such that list[r] == b),
// then promotes b to the front of the list, shifting list[0:r] one step
// right. After Rank returns, list[0] == b and list is still a permutation of
// 0..255.
func (m *mtfRank) Rank(b byte) uint8 {
	var r int
	for i, v := range m.list {
		if v == b {
			r = i
			break
		}
	}
	copy(m.list[1:r+1], m.list[:r])
	m.list[0] = b
	return uint8(r)
}
