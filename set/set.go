// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package set provides a set of byte-string items backed by a
// chainmap.Map.
package set

import (
	"iter"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/slices"

	"github.com/aristanetworks/chainmap"
)

// Set is an unordered collection of distinct byte strings. Items are
// copied on Add. A Set is not safe for concurrent use.
type Set struct {
	m *chainmap.Map[struct{}]
}

// New returns an empty Set. The options are passed to the underlying
// map.
func New(opts ...chainmap.Option) (*Set, error) {
	m, err := chainmap.New[struct{}](opts...)
	if err != nil {
		return nil, err
	}
	return &Set{m: m}, nil
}

// Add inserts item into s. Adding an item already in s is a no-op.
func (s *Set) Add(item []byte) error {
	err := s.m.Insert(item, struct{}{})
	if errors.Is(err, chainmap.ErrDuplicateKey) {
		return nil
	}
	return err
}

// Remove deletes item from s and reports whether it was present.
func (s *Set) Remove(item []byte) bool {
	_, err := s.m.Remove(item)
	return err == nil
}

// Has reports whether item is in s.
func (s *Set) Has(item []byte) bool {
	return s.m.Has(item)
}

// Len returns the number of items in s.
func (s *Set) Len() int {
	return s.m.Len()
}

// IsEmpty reports whether s has no items.
func (s *Set) IsEmpty() bool {
	return s.m.IsEmpty()
}

// Clear removes every item from s.
func (s *Set) Clear() {
	s.m.Clear()
}

// Free removes every item and releases the set's bucket table. A
// freed set stays empty; Add returns an error wrapping
// chainmap.ErrFreed.
func (s *Set) Free() {
	s.m.Free()
}

// All returns an iterator over the items in s. The items belong to s
// and must not be modified.
func (s *Set) All() iter.Seq[[]byte] {
	return s.m.Keys()
}

// String returns the items of s in sorted order.
func (s *Set) String() string {
	items := make([]string, 0, s.Len())
	for item := range s.All() {
		items = append(items, string(item))
	}
	slices.Sort(items)
	return "set.Set[" + strings.Join(items, " ") + "]"
}

// addAll adds every item yielded by seq for which keep returns true.
func (s *Set) addAll(seq iter.Seq[[]byte], keep func([]byte) bool) error {
	for item := range seq {
		if !keep(item) {
			continue
		}
		if err := s.Add(item); err != nil {
			return err
		}
	}
	return nil
}

func always([]byte) bool { return true }

// Union returns a new set holding the items in a or b.
func Union(a, b *Set, opts ...chainmap.Option) (*Set, error) {
	out, err := New(append([]chainmap.Option{chainmap.WithSizeHint(a.Len() + b.Len())}, opts...)...)
	if err != nil {
		return nil, err
	}
	if err := out.addAll(a.All(), always); err != nil {
		out.m.Free()
		return nil, err
	}
	if err := out.addAll(b.All(), always); err != nil {
		out.m.Free()
		return nil, err
	}
	return out, nil
}

// Intersection returns a new set holding the items in both a and b.
func Intersection(a, b *Set, opts ...chainmap.Option) (*Set, error) {
	out, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err := out.addAll(a.All(), b.Has); err != nil {
		out.m.Free()
		return nil, err
	}
	return out, nil
}

// Difference returns a new set holding the items in a that are not
// in b.
func Difference(a, b *Set, opts ...chainmap.Option) (*Set, error) {
	out, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err := out.addAll(a.All(), func(item []byte) bool { return !b.Has(item) }); err != nil {
		out.m.Free()
		return nil, err
	}
	return out, nil
}

// SymmetricDifference returns a new set holding the items in exactly
// one of a and b.
func SymmetricDifference(a, b *Set, opts ...chainmap.Option) (*Set, error) {
	out, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err := out.addAll(a.All(), func(item []byte) bool { return !b.Has(item) }); err != nil {
		out.m.Free()
		return nil, err
	}
	if err := out.addAll(b.All(), func(item []byte) bool { return !a.Has(item) }); err != nil {
		out.m.Free()
		return nil, err
	}
	return out, nil
}

// Equal reports whether a and b hold the same items.
func Equal(a, b *Set) bool {
	return a.Len() == b.Len() && IsSubset(a, b)
}

// IsSubset reports whether every item of a is in b.
func IsSubset(a, b *Set) bool {
	if a.Len() > b.Len() {
		return false
	}
	for item := range a.All() {
		if !b.Has(item) {
			return false
		}
	}
	return true
}

// IsSuperset reports whether every item of b is in a.
func IsSuperset(a, b *Set) bool {
	return IsSubset(b, a)
}
