// Modifications copyright (c) Arista Networks, Inc. 2026
// Underlying
// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chainmap

import (
	"maps"
	"testing"
)

func TestRangeFuncs(t *testing.T) {
	m := newMap[string](t)
	for k, v := range map[string]string{
		"Avenue": "AVE",
		"Street": "ST",
		"Court":  "CT",
	} {
		if err := m.Insert([]byte(k), v); err != nil {
			t.Fatal(err)
		}
	}

	t.Run("All", func(t *testing.T) {
		exp := map[string]string{
			"Avenue": "AVE",
			"Street": "ST",
			"Court":  "CT",
		}
		got := make(map[string]string)
		for k, v := range m.All() {
			got[string(k)] = v
		}
		if !maps.Equal(exp, got) {
			t.Errorf("expected: %v got: %v", exp, got)
		}
	})

	t.Run("Keys", func(t *testing.T) {
		exp := map[string]struct{}{
			"Avenue": {},
			"Street": {},
			"Court":  {},
		}
		got := make(map[string]struct{})
		for k := range m.Keys() {
			got[string(k)] = struct{}{}
		}
		if !maps.Equal(exp, got) {
			t.Errorf("expected: %v got: %v", exp, got)
		}
	})

	t.Run("Values", func(t *testing.T) {
		exp := map[string]struct{}{
			"AVE": {},
			"ST":  {},
			"CT":  {},
		}
		got := make(map[string]struct{})
		for k := range m.Values() {
			got[k] = struct{}{}
		}
		if !maps.Equal(exp, got) {
			t.Errorf("expected: %v got: %v", exp, got)
		}
	})

	t.Run("Break", func(t *testing.T) {
		n := 0
		for range m.All() {
			n++
			break
		}
		if n != 1 {
			t.Errorf("expected 1 iteration, got %d", n)
		}
	})
}

func TestIterAfterResize(t *testing.T) {
	m := newMap[int](t)
	const count = 3000
	for i := 0; i < count; i++ {
		if err := m.Insert(intKey(i), i); err != nil {
			t.Fatal(err)
		}
	}
	seen := make(map[int]int, count)
	for k, v := range m.All() {
		if string(k) != string(intKey(v)) {
			t.Errorf("key %q does not match elem %d", k, v)
		}
		seen[v]++
	}
	if len(seen) != count {
		t.Errorf("expected %d distinct entries, got %d", count, len(seen))
	}
	for v, n := range seen {
		if n != 1 {
			t.Errorf("entry %d produced %d times", v, n)
		}
	}
}
