// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chainmap

import (
	"strconv"

	"github.com/cockroachdb/errors"
)

var (
	// ErrDuplicateKey is returned by Insert when the key is already
	// present. The map is not modified.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrNotFound is returned by Get, Update, UpdateFunc and Remove
	// when the key is absent.
	ErrNotFound = errors.New("key not found")
	// ErrAllocation is returned when the map's allocator cannot
	// supply memory. The operation has no effect.
	ErrAllocation = errors.New("allocation failed")
	// ErrEmptyKey is returned when a zero-length key is inserted.
	ErrEmptyKey = errors.New("empty key")
	// ErrFreed is returned by inserts into a map after Free.
	ErrFreed = errors.New("map has been freed")
)

const maxQuotedKey = 32

// quoteKey renders key for error messages.
func quoteKey(key []byte) string {
	if len(key) > maxQuotedKey {
		return strconv.Quote(string(key[:maxQuotedKey])) + "..."
	}
	return strconv.Quote(string(key))
}

func keyError(sentinel error, op string, key []byte) error {
	return errors.Wrapf(sentinel, "%s %s", op, quoteKey(key))
}

// allocError marks err, an allocator failure, as ErrAllocation while
// keeping the allocator's own error in the chain.
func allocError(err error, what string) error {
	return errors.Mark(errors.Wrapf(err, "allocate %s", what), ErrAllocation)
}
