// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bench compares lzuf's ratio and throughput against a couple of
// reference Go compressors on a synthetic, LZ77-friendly corpus.
//
// This is a trimmed relative of the teacher's internal/tool/bench: rather
// than a generic multi-format, multi-codec sweep driven by command-line flag
// lists, it fixes the codec set (lzuf, flate, xz) and only reports the
// comparisons the ambient CLI cares about.
package bench

import (
	"bytes"
	"hash/crc32"
	"io"
	"time"

	"github.com/dsnet/golib/hashutil"
	"github.com/dsnet/golib/strconv"
	"github.com/klauspost/compress/flate"
	"github.com/ulikunitz/xz"

	"github.com/dsnet/lzuf/internal/testutil"
	"github.com/dsnet/lzuf/lzuf"
)

// Corpus synthesizes an LZ77-friendly byte slice of the given size: runs of
// fresh pseudo-random bytes interleaved with copies of earlier spans, in the
// same spirit as testdata/repeats.go, but generated in-memory with the
// deterministic Rand so the benchmark needs no on-disk fixture.
func Corpus(seed, size int) []byte {
	r := testutil.NewRand(seed)
	b := make([]byte, 0, size)
	for len(b) < size {
		if len(b) > 0 && r.Intn(10) < 7 {
			dist := 1 + r.Intn(len(b))
			length := 4 + r.Intn(512)
			for i := 0; i < length && len(b) < size; i++ {
				b = append(b, b[len(b)-dist])
			}
			continue
		}
		length := 4 + r.Intn(256)
		if length > size-len(b) {
			length = size - len(b)
		}
		b = append(b, r.Bytes(length)...)
	}
	return b
}

// Result reports a single codec's performance on one input.
type Result struct {
	Name     string
	RawSize  int
	CompSize int
	Ratio    float64 // RawSize / CompSize
	MBps     float64 // encode throughput
}

func (r Result) String() string {
	return r.Name + ": " +
		strconv.FormatPrefix(float64(r.RawSize), strconv.Base1024, 2) + "B -> " +
		strconv.FormatPrefix(float64(r.CompSize), strconv.Base1024, 2) + "B, " +
		strconv.FormatPrefix(r.Ratio, strconv.Base1000, 2) + "x, " +
		strconv.FormatPrefix(r.MBps, strconv.Base1000, 2) + "MB/s"
}

type codec struct {
	name   string
	encode func(w io.Writer) (io.WriteCloser, error)
}

// Codecs lists the comparison set: lzuf itself, plus two ambient reference
// compressors carried in the teacher's go.mod for exactly this purpose.
func Codecs(numBits int) []codec {
	return []codec{
		{"lzuf", func(w io.Writer) (io.WriteCloser, error) {
			return lzuf.NewWriterConfig(w, &lzuf.WriterConfig{NumPosBits: numBits})
		}},
		{"flate", func(w io.Writer) (io.WriteCloser, error) {
			return flate.NewWriter(w, flate.DefaultCompression)
		}},
		{"xz", func(w io.Writer) (io.WriteCloser, error) {
			return xz.NewWriter(w)
		}},
	}
}

// Run encodes input with every registered codec and reports size and
// throughput for each.
func Run(input []byte, numBits int) ([]Result, error) {
	var out []Result
	for _, c := range Codecs(numBits) {
		var buf bytes.Buffer
		t0 := time.Now()
		wc, err := c.encode(&buf)
		if err != nil {
			return nil, err
		}
		if _, err := wc.Write(input); err != nil {
			return nil, err
		}
		if err := wc.Close(); err != nil {
			return nil, err
		}
		elapsed := time.Since(t0)

		mbps := 0.0
		if elapsed > 0 {
			mbps = (float64(len(input)) / (1 << 20)) / elapsed.Seconds()
		}
		out = append(out, Result{
			Name:     c.name,
			RawSize:  len(input),
			CompSize: buf.Len(),
			Ratio:    float64(len(input)) / float64(buf.Len()),
			MBps:     mbps,
		})
	}
	return out, nil
}

// CheckCorpusStable recomputes the CRC-32 of a corpus by splitting it in
// half, hashing each half independently, and combining the two partial
// checksums with hashutil.CombineCRC32. It reports whether that combined
// value equals a single-pass CRC over the same buffer; b is compared only
// against itself, not against an earlier run. This mirrors the split/combine
// CRC discipline bzip2.Writer uses across block boundaries
// (bzip2/common.go's updateCRC/combineCRC).
func CheckCorpusStable(b []byte) bool {
	whole := crc32.ChecksumIEEE(b)

	mid := len(b) / 2
	c1 := crc32.ChecksumIEEE(b[:mid])
	c2 := crc32.ChecksumIEEE(b[mid:])
	combined := hashutil.CombineCRC32(crc32.IEEE, c1, c2, int64(len(b)-mid))

	return combined == whole
}
