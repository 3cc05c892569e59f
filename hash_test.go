// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chainmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOneAtATime(t *testing.T) {
	for _, tc := range []struct {
		key  string
		hash uint32
	}{
		{"", 0},
		{"\x00", 0},
		{"a", 0xca2e9442},
		{"The quick brown fox jumps over the lazy dog", 0x519e91f5},
	} {
		assert.Equal(t, tc.hash, OneAtATime([]byte(tc.key)), "key %q", tc.key)
	}
}

func TestBucketIndex(t *testing.T) {
	m := newMap[int](t)
	for _, n := range []int{23, 509, 10991719} {
		for i := 0; i < 1000; i++ {
			idx := m.bucketIndex(intKey(i), n)
			assert.GreaterOrEqual(t, idx, 0)
			assert.Less(t, idx, n)
		}
	}
	assert.Equal(t, int(0xca2e9442%23), m.bucketIndex([]byte("a"), 23))
}

func BenchmarkOneAtATime(b *testing.B) {
	key := []byte("The quick brown fox jumps over the lazy dog")
	b.SetBytes(int64(len(key)))
	for i := 0; i < b.N; i++ {
		OneAtATime(key)
	}
}
