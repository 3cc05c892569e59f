// Copyright (c) 2026 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chainmap_test

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/aristanetworks/chainmap"
)

func ExampleMap_Iter() {
	m, err := chainmap.New[string]()
	if err != nil {
		panic(err)
	}
	_ = m.Insert([]byte("Avenue"), "AVE")
	_ = m.Insert([]byte("Street"), "ST")
	_ = m.Insert([]byte("Court"), "CT")

	for i := m.Iter(); i.Next(); {
		fmt.Printf("The abbreviation for %q is %q", i.Key(), i.Elem())
	}
}

func ExampleMap_Insert() {
	m, err := chainmap.New[int]()
	if err != nil {
		panic(err)
	}
	fmt.Println(m.Insert([]byte("answer"), 42))
	err = m.Insert([]byte("answer"), 43)
	fmt.Println(errors.Is(err, chainmap.ErrDuplicateKey))
	v, _ := m.Get([]byte("answer"))
	fmt.Println(v)
	// Output:
	// <nil>
	// true
	// 42
}
