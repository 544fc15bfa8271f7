// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzuf

import (
	"bufio"
	"io"
)

// bitWriter buffers output bytes and emits bit fields most-significant-bit
// first. It is the lowest layer of the encoder: every other component writes
// through it rather than touching the underlying io.Writer directly.
//
// A write error from the underlying sink is fatal and is reported by
// panicking with an Error value; callers at the Writer boundary recover it
// with errRecover.
type bitWriter struct {
	w      *bufio.Writer
	cur    byte  // partially filled output byte
	nbits  uint  // number of valid bits in cur, 0..7
	Offset int64 // number of whole bytes written so far
}

// Init resets bw to write to w, discarding any unflushed bits.
func (bw *bitWriter) Init(w io.Writer) {
	*bw = bitWriter{w: bufio.NewWriter(w)}
}

// putBit emits a single bit, most-significant-bit first within each byte.
func (bw *bitWriter) putBit(bit byte) {
	bw.cur = bw.cur<<1 | (bit & 1)
	bw.nbits++
	if bw.nbits == 8 {
		if err := bw.w.WriteByte(bw.cur); err != nil {
			panic(Error(err.Error()))
		}
		bw.Offset++
		bw.cur, bw.nbits = 0, 0
	}
}

// PutOne emits a single one-bit.
func (bw *bitWriter) PutOne() { bw.putBit(1) }

// PutZero emits a single zero-bit.
func (bw *bitWriter) PutZero() { bw.putBit(0) }

// PutBits emits the low n bits of value, most-significant bit first.
func (bw *bitWriter) PutBits(value uint32, n uint) {
	for i := n; i > 0; i-- {
		bw.putBit(byte(value>>(i-1)) & 1)
	}
}

// Flush pads the trailing partial byte with zero bits, writes it, and flushes
// the underlying writer. It returns the total number of bytes written.
func (bw *bitWriter) Flush() (int64, error) {
	if bw.nbits > 0 {
		bw.cur <<= 8 - bw.nbits
		if err := bw.w.WriteByte(bw.cur); err != nil {
			return bw.Offset, err
		}
		bw.Offset++
		bw.cur, bw.nbits = 0, 0
	}
	if err := bw.w.Flush(); err != nil {
		return bw.Offset, err
	}
	return bw.Offset, nil
}
