// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chainmap

// Stats describes the shape of a Map's bucket table.
type Stats struct {
	Entries       int
	Buckets       int
	Level         int
	EmptyBuckets  int
	LongestChain  int
	Resizes       int
	FailedResizes int
	// ChainLengths[i] is the number of entries in bucket i.
	ChainLengths []int
}

// Stats walks every chain in m. It costs O(buckets + entries).
func (m *Map[E]) Stats() Stats {
	if m == nil {
		return Stats{}
	}
	s := Stats{
		Entries:       m.count,
		Buckets:       len(m.buckets),
		Level:         m.level,
		Resizes:       m.resizes,
		FailedResizes: m.failedResizes,
		ChainLengths:  make([]int, len(m.buckets)),
	}
	for i, e := range m.buckets {
		n := 0
		for ; e != nil; e = e.next {
			n++
		}
		s.ChainLengths[i] = n
		if n == 0 {
			s.EmptyBuckets++
		}
		if n > s.LongestChain {
			s.LongestChain = n
		}
	}
	return s
}

// Histogram returns h where h[n] is the number of buckets holding n
// entries.
func (s Stats) Histogram() []int {
	h := make([]int, s.LongestChain+1)
	for _, n := range s.ChainLengths {
		h[n]++
	}
	return h
}
