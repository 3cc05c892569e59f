// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chainmap

import (
	"go.uber.org/zap"

	"github.com/aristanetworks/chainmap/malloc"
)

type config struct {
	hint   int
	hash   HashFunc
	alloc  malloc.Allocator
	logger *zap.Logger
}

// Option configures a Map.
type Option func(*config)

// WithSizeHint sets the expected number of entries. It only selects
// the initial level of the growth table.
func WithSizeHint(hint int) Option {
	return func(c *config) {
		c.hint = hint
	}
}

// WithHashFunc replaces the default OneAtATime hash.
func WithHashFunc(hash HashFunc) Option {
	return func(c *config) {
		if hash != nil {
			c.hash = hash
		}
	}
}

// WithAllocator sets the allocator that supplies key buffers and
// accounts for bucket tables.
func WithAllocator(a malloc.Allocator) Option {
	return func(c *config) {
		if a != nil {
			c.alloc = a
		}
	}
}

// WithLogger sets the logger used to report resizes.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(opts []Option) config {
	c := config{
		hash:   OneAtATime,
		alloc:  malloc.Default(),
		logger: zap.NewNop(),
	}
	for _, o := range opts {
		o(&c)
	}
	return c
}
