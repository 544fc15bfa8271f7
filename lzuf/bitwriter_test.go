// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzuf

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBitWriter(t *testing.T) {
	vectors := []struct {
		label string
		write func(bw *bitWriter)
		want  []byte
	}{{
		label: "Empty",
		write: func(bw *bitWriter) {},
		want:  nil,
	}, {
		label: "SingleOne",
		write: func(bw *bitWriter) { bw.PutOne() },
		want:  []byte{0x80},
	}, {
		label: "SingleZero",
		write: func(bw *bitWriter) { bw.PutZero() },
		want:  []byte{0x00},
	}, {
		label: "ByteAligned",
		write: func(bw *bitWriter) { bw.PutBits(0xcafe, 16) },
		want:  []byte{0xca, 0xfe},
	}, {
		label: "UnalignedPadded",
		write: func(bw *bitWriter) { bw.PutBits(0x5, 3) }, // 101
		want:  []byte{0xa0},
	}, {
		label: "MixedCalls",
		write: func(bw *bitWriter) {
			bw.PutOne()         // 1
			bw.PutZero()        // 0
			bw.PutBits(0x3, 2)  // 11
			bw.PutZero()        // 0
			bw.PutOne()         // 1
			bw.PutBits(0x1, 10) // 0000000001
		},
		want: []byte{0xb4, 0x01},
	}}

	for _, v := range vectors {
		t.Run(v.label, func(t *testing.T) {
			var buf bytes.Buffer
			var bw bitWriter
			bw.Init(&buf)
			v.write(&bw)
			if _, err := bw.Flush(); err != nil {
				t.Fatalf("Flush error: %v", err)
			}
			if diff := cmp.Diff(v.want, buf.Bytes()); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBitWriterOffset(t *testing.T) {
	var buf bytes.Buffer
	var bw bitWriter
	bw.Init(&buf)
	bw.PutBits(0, 17) // 2 whole bytes plus a bit carried over
	if bw.Offset != 2 {
		t.Errorf("Offset = %d, want 2", bw.Offset)
	}
	n, err := bw.Flush()
	if err != nil {
		t.Fatalf("Flush error: %v", err)
	}
	if n != 3 || bw.Offset != 3 {
		t.Errorf("Flush = %d, Offset = %d, want 3, 3", n, bw.Offset)
	}
}
