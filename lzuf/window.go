// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzuf

// noPos marks the absence of a window position, used both as an empty hash
// bucket and as the end of a hash chain. It is chosen outside [0, W) for any
// configured window size.
const noPos = ^uint32(0)

// windowIndex is a hash-chained index over the most recent occurrences of
// every hashBytesN-byte context inside a sliding window of 1<<numPosBits
// bytes. head maps a context hash to the newest window position sharing
// that hash, and next/prev thread a doubly-linked list through every other
// position sharing it, indexed directly by position so insertion, lookup,
// and eviction are all O(1).
//
// The hash occupies exactly B = numPosBits bits, so the head table has the
// same size as the window itself.
//
// windowIndex holds no byte content; it only tracks positions. The window's
// actual bytes are owned by Writer, which is also responsible for unlinking
// positions via Delete before their context bytes change and re-filing them
// via Insert afterwards.
type windowIndex struct {
	numPosBits uint
	mask       uint32
	head       []uint32 // W entries
	next       []uint32 // W entries: link toward older positions
	prev       []uint32 // W entries: link toward newer positions
}

// newWindowIndex allocates a windowIndex for a window of 1<<numPosBits bytes.
func newWindowIndex(numPosBits int) *windowIndex {
	size := 1 << uint(numPosBits)
	wi := &windowIndex{
		numPosBits: uint(numPosBits),
		mask:       uint32(size - 1),
		head:       make([]uint32, size),
		next:       make([]uint32, size),
		prev:       make([]uint32, size),
	}
	wi.Reset()
	return wi
}

// Reset empties every hash bucket and chain link.
func (wi *windowIndex) Reset() {
	for i := range wi.head {
		wi.head[i] = noPos
	}
	for i := range wi.next {
		wi.next[i] = noPos
	}
	for i := range wi.prev {
		wi.prev[i] = noPos
	}
}

// Hash folds the hashBytesN context bytes starting at b0 into a B-bit bucket
// index, per the formula h(p) = ((b0<<(B-8)) ^ (b1<<7) ^ (b2<<4) ^ b3) & Mw.
func (wi *windowIndex) Hash(b0, b1, b2, b3 byte) uint32 {
	v := uint32(b0)<<(wi.numPosBits-8) ^ uint32(b1)<<7 ^ uint32(b2)<<4 ^ uint32(b3)
	return v & wi.mask
}

// Head returns the newest position filed under hash h, if any.
func (wi *windowIndex) Head(h uint32) (pos uint32, ok bool) {
	pos = wi.head[h]
	return pos, pos != noPos
}

// Next returns the next-older position in the same chain as pos, if any.
func (wi *windowIndex) Next(pos uint32) (uint32, bool) {
	n := wi.next[pos&wi.mask]
	return n, n != noPos
}

// Insert files pos as the newest position under hash h. The old head, if
// any, becomes the next-older entry, and pos becomes its next-newer entry.
func (wi *windowIndex) Insert(h uint32, pos uint32) {
	slot := pos & wi.mask
	old := wi.head[h]
	wi.next[slot] = old
	wi.prev[slot] = noPos
	if old != noPos {
		wi.prev[old&wi.mask] = pos
	}
	wi.head[h] = pos
}

// Delete removes pos from the chain filed under hash h. It must be called
// before a window slot is overwritten with new content, so that stale
// positions never leak into a match search.
func (wi *windowIndex) Delete(h uint32, pos uint32) {
	slot := pos & wi.mask
	p, n := wi.prev[slot], wi.next[slot]
	if p == noPos {
		wi.head[h] = n
	} else {
		wi.next[p&wi.mask] = n
	}
	if n != noPos {
		wi.prev[n&wi.mask] = p
	}
	wi.next[slot], wi.prev[slot] = noPos, noPos
}
