// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import (
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	a := Default()
	buf, err := a.Allocate(16)
	require.NoError(t, err)
	require.Len(t, buf, 16)
	require.NoError(t, a.Reserve(1<<40))
	a.Free(16)

	_, err = a.Allocate(-1)
	require.Error(t, err)
}

func TestLimitAllocator(t *testing.T) {
	a := NewLimitAllocator(100)

	buf, err := a.Allocate(60)
	require.NoError(t, err)
	require.Len(t, buf, 60)
	require.Equal(t, 60, a.InUse())

	_, err = a.Allocate(41)
	require.True(t, errors.Is(err, ErrOutOfMemory))
	require.Equal(t, 60, a.InUse())

	require.NoError(t, a.Reserve(40))
	require.Equal(t, 100, a.InUse())
	require.Equal(t, 100, a.Peak())

	a.Free(100)
	require.Equal(t, 0, a.InUse())
	require.Equal(t, 100, a.Peak())
	require.Equal(t, 100, a.Limit())
}

func TestLimitAllocatorOverFree(t *testing.T) {
	a := NewLimitAllocator(10)
	require.NoError(t, a.Reserve(5))
	require.Panics(t, func() { a.Free(6) })
}

func TestLimitAllocatorConcurrent(t *testing.T) {
	a := NewLimitAllocator(1000)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				if err := a.Reserve(10); err == nil {
					a.Free(10)
				}
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 0, a.InUse())
	require.LessOrEqual(t, a.Peak(), 1000)
}
