// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The chainstat tool loads newline-separated keys into a chainmap.Map
// and reports how evenly they spread over the buckets.
//
// Usage:
//
//	chainstat [-hint N] [-limit BYTES] [-v] [FILE]
//
// Keys are read from FILE, or from stdin when FILE is omitted or "-".
// Duplicate lines are counted and skipped.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/montanaflynn/stats"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/aristanetworks/chainmap"
	"github.com/aristanetworks/chainmap/malloc"
)

var (
	hintFlag    = flag.Int("hint", 0, "expected number of keys")
	limitFlag   = flag.Int("limit", 0, "cap on map memory in bytes (0 for none)")
	verboseFlag = flag.BoolP("verbose", "v", false, "log every resize")
)

func main() {
	flag.Parse()

	cfg := zap.NewDevelopmentConfig()
	if !*verboseFlag {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	in, name, err := openInput(flag.Arg(0))
	if err != nil {
		logger.Fatal("cannot open input", zap.Error(err))
	}
	defer in.Close()

	opts := []chainmap.Option{
		chainmap.WithSizeHint(*hintFlag),
		chainmap.WithLogger(logger),
	}
	if *limitFlag > 0 {
		opts = append(opts, chainmap.WithAllocator(malloc.NewLimitAllocator(*limitFlag)))
	}
	m, err := chainmap.New[int](opts...)
	if err != nil {
		logger.Fatal("cannot create map", zap.Error(err))
	}

	r, err := load(m, in)
	if err != nil {
		logger.Fatal("cannot load keys", zap.String("input", name), zap.Error(err))
	}
	if err := report(os.Stdout, r, m.Stats()); err != nil {
		logger.Fatal("cannot compute statistics", zap.Error(err))
	}
}

func openInput(path string) (io.ReadCloser, string, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), "stdin", nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, path, errors.Wrap(err, "open")
	}
	return f, path, nil
}

type loadResult struct {
	lines      int
	duplicates int
	empty      int
}

// load inserts every line of r into m, keyed by the line and mapped to
// its line number.
func load(m *chainmap.Map[int], r io.Reader) (loadResult, error) {
	var res loadResult
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	for sc.Scan() {
		res.lines++
		err := m.Insert(sc.Bytes(), res.lines)
		switch {
		case err == nil:
		case errors.Is(err, chainmap.ErrDuplicateKey):
			res.duplicates++
		case errors.Is(err, chainmap.ErrEmptyKey):
			res.empty++
		default:
			return res, errors.Wrapf(err, "line %d", res.lines)
		}
	}
	return res, errors.Wrap(sc.Err(), "read")
}

func report(w io.Writer, r loadResult, s chainmap.Stats) error {
	lengths := make(stats.Float64Data, 0, len(s.ChainLengths))
	for _, n := range s.ChainLengths {
		lengths = append(lengths, float64(n))
	}
	mean, err := lengths.Mean()
	if err != nil {
		return err
	}
	stddev, err := lengths.StandardDeviation()
	if err != nil {
		return err
	}
	p99, err := lengths.Percentile(99)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "lines:          %d (%d duplicate, %d empty)\n", r.lines, r.duplicates, r.empty)
	fmt.Fprintf(w, "entries:        %d\n", s.Entries)
	fmt.Fprintf(w, "level:          %d of %d\n", s.Level, chainmap.MaxLevel())
	fmt.Fprintf(w, "buckets:        %d (%d empty)\n", s.Buckets, s.EmptyBuckets)
	fmt.Fprintf(w, "resizes:        %d (%d failed)\n", s.Resizes, s.FailedResizes)
	fmt.Fprintf(w, "chain mean:     %.3f\n", mean)
	fmt.Fprintf(w, "chain stddev:   %.3f\n", stddev)
	fmt.Fprintf(w, "chain p99:      %.0f\n", p99)
	fmt.Fprintf(w, "chain max:      %d\n", s.LongestChain)
	fmt.Fprintln(w, "histogram:")
	for length, buckets := range s.Histogram() {
		fmt.Fprintf(w, "  %3d: %d\n", length, buckets)
	}
	return nil
}
