// Modifications copyright (c) Arista Networks, Inc. 2026
// Underlying
// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chainmap

import "iter"

// All returns an iterator over key-value pairs from m. Keys belong to
// m and must not be modified.
func (m *Map[E]) All() iter.Seq2[[]byte, E] {
	return func(yield func([]byte, E) bool) {
		for it := m.Iter(); it.Next(); {
			if !yield(it.Key(), it.Elem()) {
				return
			}
		}
	}
}

// Keys returns an iterator over keys in m.
func (m *Map[E]) Keys() iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for it := m.Iter(); it.Next(); {
			if !yield(it.Key()) {
				return
			}
		}
	}
}

// Values returns an iterator over values in m.
func (m *Map[E]) Values() iter.Seq[E] {
	return func(yield func(E) bool) {
		for it := m.Iter(); it.Next(); {
			if !yield(it.Elem()) {
				return
			}
		}
	}
}
