// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command lzuf compresses a single file using the LZUF format.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/cpuid"

	"github.com/dsnet/lzuf/lzuf"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("lzuf", flag.ContinueOnError)
	numBits := fs.Int("n", lzuf.DefaultNumPosBits, "window exponent, clamped to [12, 20]")
	verbose := fs.Bool("v", false, "print a startup diagnostic line")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: lzuf [-n bits] [-v] infile outfile")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return 2
	}
	infile, outfile := fs.Arg(0), fs.Arg(1)

	if err := compress(infile, outfile, *numBits, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "lzuf: %v\n", err)
		return 1
	}
	return 0
}

func compress(infile, outfile string, numBits int, verbose bool) error {
	in, err := os.Open(infile)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(outfile)
	if err != nil {
		return err
	}
	defer out.Close()

	cfg := &lzuf.WriterConfig{NumPosBits: numBits}
	zw, err := lzuf.NewWriterConfig(out, cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "lzuf: window=%d look-ahead=%d cpu=%s\n",
			1<<uint(numBitsOrDefault(numBits)), 1<<uint(numBitsOrDefault(numBits)-1), cpuid.CPU.BrandName)
	}

	if _, err := io.Copy(zw, in); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// numBitsOrDefault mirrors the clamping Writer.Reset performs internally, so
// the verbose diagnostic reports the window size actually in effect.
func numBitsOrDefault(n int) int {
	switch {
	case n == 0:
		return lzuf.DefaultNumPosBits
	case n < lzuf.MinNumPosBits:
		return lzuf.MinNumPosBits
	case n > lzuf.MaxNumPosBits:
		return lzuf.MaxNumPosBits
	default:
		return n
	}
}
