// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chainmap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrowthTable(t *testing.T) {
	assert.Equal(t, 16, LevelCount())
	assert.Equal(t, LevelCount()-1, MaxLevel())
	assert.Equal(t, 23, BucketsFor(0))
	assert.Equal(t, 10991719, BucketsFor(MaxLevel()))
	for level := 1; level < LevelCount(); level++ {
		assert.Greater(t, BucketsFor(level), BucketsFor(level-1), "level %d", level)
	}
	assert.Panics(t, func() { BucketsFor(LevelCount()) })
}

func TestLevelForHint(t *testing.T) {
	for _, tc := range []struct {
		hint  int
		level int
	}{
		{-1, 0},
		{0, 0},
		{23, 0},
		{24, 1},
		{509, 1},
		{510, 2},
		{131071, 9},
		{10991719, 15},
		{10991720, 15},
		{math.MaxInt, 15},
	} {
		assert.Equal(t, tc.level, levelForHint(tc.hint), "hint %d", tc.hint)
	}
}
