// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzuf

import (
	"bytes"
	"testing"
)

// TestAdaptiveCoderFirstSymbol checks the two-step scenario spelled out for
// a single novel symbol: the NYT leaf of a brand-new tree has no ancestors,
// so its code is empty, and the symbol itself rides along as a raw 8 bits.
func TestAdaptiveCoderFirstSymbol(t *testing.T) {
	var c adaptiveCoder
	c.Init()

	var buf bytes.Buffer
	var bw bitWriter
	bw.Init(&buf)
	c.Encode(&bw, 0x41)
	if _, err := bw.Flush(); err != nil {
		t.Fatalf("Flush error: %v", err)
	}

	// No code bits precede the raw symbol, so "01000001" (0x41) lands
	// byte-aligned immediately after the header-less stream starts.
	want := []byte{0x41}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("output = %08b, want %08b", buf.Bytes(), want)
	}
	if c.leafOf[0x41] == nil {
		t.Fatal("leafOf[0x41] was not populated by split")
	}
}

func TestAdaptiveCoderSiblingProperty(t *testing.T) {
	var c adaptiveCoder
	c.Init()
	var bw bitWriter
	bw.Init(&bytes.Buffer{})

	msg := []byte{5, 5, 5, 2, 5, 9, 2, 0, 5, 2, 9, 9, 9, 9}
	for _, sym := range msg {
		c.Encode(&bw, sym)
		assertSiblingProperty(t, &c)
	}

	// Every leaf that was encoded must be reachable and have a weight equal
	// to the number of times it was encoded.
	counts := map[byte]int{}
	for _, sym := range msg {
		counts[sym]++
	}
	for sym, want := range counts {
		leaf := c.leafOf[sym]
		if leaf == nil {
			t.Fatalf("leafOf[%d] is nil", sym)
		}
		if leaf.weight != want {
			t.Errorf("leafOf[%d].weight = %d, want %d", sym, leaf.weight, want)
		}
	}
}

// TestAdaptiveCoderPrefixFree checks that after a run of encodes, no two
// leaves (including NYT) have a root path where one is a prefix of another —
// the defining property of a usable prefix code.
func TestAdaptiveCoderPrefixFree(t *testing.T) {
	var c adaptiveCoder
	c.Init()
	var bw bitWriter
	bw.Init(&bytes.Buffer{})

	for _, sym := range []byte{3, 1, 4, 1, 5, 9, 2, 6, 1} {
		c.Encode(&bw, sym)
	}

	var codes []string
	var walk func(n *fgkNode, path string)
	walk = func(n *fgkNode, path string) {
		if n.leaf {
			codes = append(codes, path)
			return
		}
		walk(n.left, path+"0")
		walk(n.right, path+"1")
	}
	walk(c.root, "")

	for i := range codes {
		for j := range codes {
			if i == j {
				continue
			}
			if len(codes[i]) <= len(codes[j]) && codes[j][:len(codes[i])] == codes[i] {
				t.Fatalf("code %q is a prefix of code %q", codes[i], codes[j])
			}
		}
	}
}

func assertSiblingProperty(t *testing.T, c *adaptiveCoder) {
	t.Helper()
	for i := 1; i < len(c.order); i++ {
		if c.order[i].weight < c.order[i-1].weight {
			t.Fatalf("order not sorted by weight at index %d: %d < %d", i, c.order[i].weight, c.order[i-1].weight)
		}
	}
	for i, n := range c.order {
		if n.idx != i {
			t.Fatalf("order[%d].idx = %d, want %d", i, n.idx, i)
		}
		if n.parent == nil {
			if n != c.root {
				t.Fatalf("order[%d] has no parent but is not root", i)
			}
			continue
		}
		if n.parent.left != n && n.parent.right != n {
			t.Fatalf("order[%d] is not a child of its own parent", i)
		}
	}
	if c.root.parent != nil {
		t.Fatal("root has a parent")
	}
}
