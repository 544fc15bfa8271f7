// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzuf

import "io"

// WriterConfig configures a Writer. The zero value selects every default.
type WriterConfig struct {
	// NumPosBits sets the window exponent (window size is 1<<NumPosBits
	// bytes). It is clamped to [MinNumPosBits, MaxNumPosBits]; zero selects
	// DefaultNumPosBits.
	NumPosBits int
}

// Writer is an LZUF compressor. It implements io.WriteCloser: input bytes
// passed to Write are buffered internally until a full look-ahead window is
// available, matched against the sliding window, and encoded; Close drains
// whatever remains (treating it as the end of input) and finalizes the
// output.
//
// Writer owns every piece of codec state — the window, its hash index, the
// look-ahead queue, the move-to-front list, and the adaptive prefix tree —
// as plain fields. There is no ambient or package-level mutable state.
type Writer struct {
	w          io.Writer
	numPosBits int
	W, P       uint32 // window and look-ahead capacities, powers of two
	Mw, Mp     uint32 // W-1, P-1

	bw   bitWriter
	win  *windowIndex
	mtf  mtfRank
	fgk  adaptiveCoder

	winBuf []byte // circular window, length W
	look   []byte // circular look-ahead, length P

	winCnt uint32
	patCnt uint32
	bufCnt uint32

	pending  []byte // input bytes accepted by Write but not yet in look-ahead
	eof      bool
	started  bool
	closed   bool
	fileSize int64
}

// NewWriter creates a new Writer that writes the compressed form of what is
// written to it to w, using DefaultNumPosBits.
func NewWriter(w io.Writer) *Writer {
	zw, err := NewWriterConfig(w, nil)
	if err != nil {
		panic(err) // only reached if writing the initial header to w fails
	}
	return zw
}

// NewWriterConfig creates a new Writer configured by c. A nil c selects every
// default.
func NewWriterConfig(w io.Writer, c *WriterConfig) (*Writer, error) {
	zw := new(Writer)
	if err := zw.Reset(w, c); err != nil {
		return nil, err
	}
	return zw, nil
}

// Reset discards the Writer's state and configures it to write to w, as if
// it were newly created by NewWriterConfig.
func (zw *Writer) Reset(w io.Writer, c *WriterConfig) error {
	var cfg WriterConfig
	if c != nil {
		cfg = *c
	}
	n := clampNumPosBits(cfg.NumPosBits)

	*zw = Writer{
		w:          w,
		numPosBits: n,
		W:          1 << uint(n),
		P:          1 << uint(n-1),
	}
	zw.Mw = zw.W - 1
	zw.Mp = zw.P - 1
	zw.winBuf = make([]byte, zw.W)
	zw.look = make([]byte, zw.P)
	zw.win = newWindowIndex(n)
	zw.mtf.Init()
	zw.fgk.Init()
	zw.bw.Init(w)

	zeroHash := zw.win.Hash(0, 0, 0, 0)
	for i := uint32(0); i < zw.W; i++ {
		zw.win.Insert(zeroHash, i)
	}

	if err := zw.writeHeader(0); err != nil {
		return err
	}
	return nil
}

func (zw *Writer) writeHeader(fileSize int64) error {
	hdr := header{FileSize: fileSize, NumPosBits: int32(zw.numPosBits)}
	_, err := zw.w.Write(hdr.marshal())
	return err
}

// Write buffers buf and encodes as many complete steps as the accumulated
// input allows. It never blocks on more data than buf supplies; any bytes
// that cannot yet fill a full look-ahead window are held until the next
// Write or until Close signals end of input.
func (zw *Writer) Write(buf []byte) (n int, err error) {
	if zw.closed {
		return 0, ErrClosed
	}
	defer errRecover(&err)
	zw.pending = append(zw.pending, buf...)
	zw.runLoop()
	return len(buf), nil
}

// Close drains any buffered input as a final, possibly short, look-ahead
// refill, flushes the bit writer, and rewrites the header's file size if the
// underlying writer supports seeking.
func (zw *Writer) Close() (err error) {
	if zw.closed {
		return nil
	}
	defer errRecover(&err)
	zw.eof = true
	zw.runLoop()
	zw.closed = true

	if _, ferr := zw.bw.Flush(); ferr != nil {
		return ferr
	}
	if seeker, ok := zw.w.(io.Seeker); ok {
		if _, serr := seeker.Seek(0, io.SeekStart); serr != nil {
			return serr
		}
		if werr := zw.writeHeader(zw.fileSize); werr != nil {
			return werr
		}
		if _, serr := seeker.Seek(0, io.SeekEnd); serr != nil {
			return serr
		}
	}
	return nil
}

// runLoop tops up the look-ahead buffer from pending input and processes
// complete steps for as long as either the look-ahead is full or input has
// ended.
func (zw *Writer) runLoop() {
	for {
		zw.topUp()
		if zw.bufCnt < zw.P && !zw.eof {
			return
		}
		if zw.bufCnt == 0 {
			return
		}
		zw.step()
	}
}

// topUp pulls as many bytes as are available from pending into the
// look-ahead buffer, up to capacity P.
func (zw *Writer) topUp() {
	want := int(zw.P) - int(zw.bufCnt)
	if want <= 0 {
		return
	}
	n := len(zw.pending)
	if n > want {
		n = want
	}
	for i := 0; i < n; i++ {
		zw.look[(zw.patCnt+zw.bufCnt+uint32(i))&zw.Mp] = zw.pending[i]
	}
	zw.pending = zw.pending[n:]
	zw.bufCnt += uint32(n)
}

func (zw *Writer) lookByte(p uint32) byte { return zw.look[p&zw.Mp] }
func (zw *Writer) winByte(p uint32) byte  { return zw.winBuf[p&zw.Mw] }

func (zw *Writer) lookHashAt(p uint32) uint32 {
	return zw.win.Hash(zw.lookByte(p), zw.lookByte(p+1), zw.lookByte(p+2), zw.lookByte(p+3))
}

func (zw *Writer) winHashAt(p uint32) uint32 {
	return zw.win.Hash(zw.winByte(p), zw.winByte(p+1), zw.winByte(p+2), zw.winByte(p+3))
}

// search walks the hash chain for the current look-ahead context, returning
// the longest match found (pos, length), or length 0 if none qualifies. It
// is skipped entirely when fewer than two look-ahead bytes remain.
func (zw *Writer) search() (pos, length uint32) {
	if zw.bufCnt <= 1 {
		return 0, 0
	}
	p := zw.patCnt
	h := zw.lookHashAt(p)
	i, ok := zw.win.Head(h)

	var bestPos, bestLen uint32
	farVisits, nmatchHits := 0, 0
	for ok {
		if farVisits >= farListCap || nmatchHits >= nmatchCap {
			break
		}
		farVisits++

		if zw.lookByte(p+bestLen) == zw.winByte(i+bestLen) {
			verified := true
			for off := int(bestLen) - 1; off >= 0; off-- {
				if zw.lookByte(p+uint32(off)) != zw.winByte(i+uint32(off)) {
					verified = false
					break
				}
			}
			if verified {
				k := bestLen + 1
				for k < zw.bufCnt && zw.lookByte(p+k) == zw.winByte(i+k) {
					k++
				}
				if k > bestLen {
					bestPos, bestLen = i, k
					nmatchHits++
					if bestLen == zw.bufCnt {
						break
					}
				}
			}
		}
		i, ok = zw.win.Next(i)
	}
	return bestPos, bestLen
}

// emitMatch writes the framing, folded-unary length, and position code for
// a match of the given length at pos, per the L>MIN and L==MIN cases.
func (zw *Writer) emitMatch(pos, length uint32) {
	if length > minMatchLen {
		zw.bw.PutOne()
		code := length - (minMatchLen + 1)
		for unary := code >> foldBits; unary > 0; unary-- {
			zw.bw.PutOne()
		}
		zw.bw.PutZero() // unary terminator
		zw.bw.PutBits(code%(1<<foldBits), foldBits)
	} else {
		zw.bw.PutZero()
		zw.bw.PutOne()
	}
	zw.bw.PutBits(pos, uint(zw.numPosBits))
}

// emitLiteral writes the literal framing and the FGK code for the
// move-to-front rank of b.
func (zw *Writer) emitLiteral(b byte) {
	zw.bw.PutZero()
	zw.bw.PutZero()
	r := zw.mtf.Rank(b)
	zw.fgk.Encode(&zw.bw, r)
}

// step performs one encode step: search for a match, emit its code (or a
// literal), then slide the window and rehash the affected span.
func (zw *Writer) step() {
	pos, length := zw.search()

	var l uint32
	if length >= minMatchLen {
		zw.emitMatch(pos, length)
		l = length
	} else {
		zw.emitLiteral(zw.lookByte(zw.patCnt))
		l = 1
	}

	zw.slide(l)
	zw.fileSize += int64(l)
	zw.winCnt = (zw.winCnt + l) & zw.Mw
	zw.patCnt = (zw.patCnt + l) & zw.Mp
	zw.bufCnt -= l
}

// slide deletes the stale hash entries for the span affected by writing l
// new bytes at win_cnt, copies those bytes in from the look-ahead, then
// re-inserts the same span under its now-current hashes. The span spans
// l+hashBytesN-1 positions starting at k0 = win_cnt-(hashBytesN-1), since
// every position whose 4-byte context overlaps the new bytes needs rehashing
// even when its own content didn't change.
func (zw *Writer) slide(l uint32) {
	k0 := (zw.winCnt + zw.W - uint32(hashBytesN-1)) & zw.Mw
	span := l + uint32(hashBytesN) - 1

	for i := uint32(0); i < span; i++ {
		pos := (k0 + i) & zw.Mw
		zw.win.Delete(zw.winHashAt(pos), pos)
	}

	for i := uint32(0); i < l; i++ {
		zw.winBuf[(zw.winCnt+i)&zw.Mw] = zw.look[(zw.patCnt+i)&zw.Mp]
	}

	for i := uint32(0); i < span; i++ {
		pos := (k0 + i) & zw.Mw
		zw.win.Insert(zw.winHashAt(pos), pos)
	}
}
