// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chainmap

// bucketCounts is the growth table. Each level is a prime near a power
// of two; a map only ever moves from one level to the next.
var bucketCounts = [...]int{
	23,
	509,
	1021,
	2053,
	4093,
	8191,
	16301,
	32771,
	65521,
	131071,
	256049,
	512671,
	1281101,
	2562317,
	5194069,
	10991719,
}

// LevelCount returns the number of levels in the growth table.
func LevelCount() int {
	return len(bucketCounts)
}

// MaxLevel returns the terminal level. A map at this level no longer
// grows; its chains lengthen instead.
func MaxLevel() int {
	return len(bucketCounts) - 1
}

// BucketsFor returns the bucket count at level. It panics if level is
// outside [0, LevelCount()).
func BucketsFor(level int) int {
	return bucketCounts[level]
}

// levelForHint returns the smallest level with at least hint buckets,
// or the terminal level when no level is that large.
func levelForHint(hint int) int {
	for level, n := range bucketCounts {
		if n >= hint {
			return level
		}
	}
	return MaxLevel()
}
