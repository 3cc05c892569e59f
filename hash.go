// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chainmap

// HashFunc hashes a key. The map reduces the result modulo its bucket
// count, so all 32 bits should be well mixed.
type HashFunc func(key []byte) uint32

// OneAtATime is Bob Jenkins' one-at-a-time hash. It is the default
// HashFunc.
func OneAtATime(key []byte) uint32 {
	var h uint32
	for _, b := range key {
		h += uint32(b)
		h += h << 10
		h ^= h >> 6
	}
	h += h << 3
	h ^= h >> 11
	h += h << 15
	return h
}

func (m *Map[E]) bucketIndex(key []byte, nbuckets int) int {
	return int(m.hash(key) % uint32(nbuckets))
}
