// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzuf

import "encoding/binary"

// header is the fixed-layout file stamp written before the bitstream.
//
// Unlike the reference encoder, which writes this as a raw in-memory struct
// (tying the file format to the producer's endianness and padding rules),
// fields are serialized explicitly in little-endian order.
type header struct {
	FileSize   int64
	NumPosBits int32
}

// marshal encodes h into the fixed headerLength-byte layout.
func (h header) marshal() []byte {
	buf := make([]byte, headerLength)
	copy(buf[:hdrAlgoSize], hdrMagic)
	binary.LittleEndian.PutUint64(buf[hdrAlgoSize:], uint64(h.FileSize))
	binary.LittleEndian.PutUint32(buf[hdrAlgoSize+hdrSizeSize:], uint32(h.NumPosBits))
	return buf
}

// unmarshalHeader decodes a headerLength-byte buffer written by marshal.
func unmarshalHeader(buf []byte) (header, error) {
	if len(buf) < headerLength {
		return header{}, Error("short header")
	}
	if string(buf[:hdrAlgoSize]) != hdrMagic {
		return header{}, Error("bad header magic")
	}
	var h header
	h.FileSize = int64(binary.LittleEndian.Uint64(buf[hdrAlgoSize:]))
	h.NumPosBits = int32(binary.LittleEndian.Uint32(buf[hdrAlgoSize+hdrSizeSize:]))
	return h, nil
}
