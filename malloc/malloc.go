// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package malloc provides the memory accounting used by chainmap.Map.
//
// Go manages memory itself, so an Allocator does not hand out raw
// blocks. It hands out byte buffers for key copies and keeps track of
// how many bytes a map is holding, which lets a caller put a hard cap
// on a map's footprint and observe allocation failures as errors.
package malloc

import (
	"sync/atomic"

	"github.com/cockroachdb/errors"
)

// ErrOutOfMemory is returned when an allocation would exceed an
// allocator's limit.
var ErrOutOfMemory = errors.New("out of memory")

// Allocator is the buffer contract consumed by chainmap.Map.
type Allocator interface {
	// Allocate returns a zeroed buffer of exactly size bytes.
	Allocate(size int) ([]byte, error)
	// Reserve accounts for size bytes that the caller allocates
	// itself, such as a bucket table.
	Reserve(size int) error
	// Free returns size bytes obtained from Allocate or Reserve.
	Free(size int)
}

type defaultAllocator struct{}

// Default returns an Allocator without a limit.
func Default() Allocator {
	return defaultAllocator{}
}

func (defaultAllocator) Allocate(size int) ([]byte, error) {
	if size < 0 {
		return nil, errors.Newf("invalid allocation size %d", size)
	}
	return make([]byte, size), nil
}

func (defaultAllocator) Reserve(size int) error {
	if size < 0 {
		return errors.Newf("invalid reservation size %d", size)
	}
	return nil
}

func (defaultAllocator) Free(int) {}

// LimitAllocator fails allocations once the bytes in use would exceed
// its limit. It is safe to share between goroutines.
type LimitAllocator struct {
	limit int64
	inUse atomic.Int64
	peak  atomic.Int64
}

var _ Allocator = (*LimitAllocator)(nil)

// NewLimitAllocator returns an allocator that permits at most limit
// bytes to be in use at once.
func NewLimitAllocator(limit int) *LimitAllocator {
	return &LimitAllocator{limit: int64(limit)}
}

// Allocate implements Allocator.
func (a *LimitAllocator) Allocate(size int) ([]byte, error) {
	if err := a.Reserve(size); err != nil {
		return nil, err
	}
	return make([]byte, size), nil
}

// Reserve implements Allocator.
func (a *LimitAllocator) Reserve(size int) error {
	if size < 0 {
		return errors.Newf("invalid reservation size %d", size)
	}
	n := int64(size)
	for {
		cur := a.inUse.Load()
		if cur+n > a.limit {
			return errors.Wrapf(ErrOutOfMemory,
				"reserve %d bytes: %d of %d in use", size, cur, a.limit)
		}
		if a.inUse.CompareAndSwap(cur, cur+n) {
			a.updatePeak(cur + n)
			return nil
		}
	}
}

// Free implements Allocator.
func (a *LimitAllocator) Free(size int) {
	if a.inUse.Add(-int64(size)) < 0 {
		panic("malloc: freed more bytes than were allocated")
	}
}

func (a *LimitAllocator) updatePeak(v int64) {
	for {
		p := a.peak.Load()
		if v <= p || a.peak.CompareAndSwap(p, v) {
			return
		}
	}
}

// InUse returns the number of bytes currently allocated or reserved.
func (a *LimitAllocator) InUse() int {
	return int(a.inUse.Load())
}

// Peak returns the largest value InUse has reached.
func (a *LimitAllocator) Peak() int {
	return int(a.peak.Load())
}

// Limit returns the allocator's limit in bytes.
func (a *LimitAllocator) Limit() int {
	return int(a.limit)
}
