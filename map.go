// Modifications copyright (c) Arista Networks, Inc. 2026
// Underlying
// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chainmap provides the Map type, a hash table keyed by
// arbitrary byte sequences.
//
// The following hold for every Map:
//   - Keys are copied on insert. The caller's slice is never retained,
//     and two keys are equal when their lengths and bytes are equal.
//   - Elements are stored as given. When E is a pointer, slice, map or
//     other reference type the map shares the referenced data with the
//     caller and never releases or inspects it.
//   - A Map never shrinks. Its bucket count moves up the growth table
//     one level at a time and stops at MaxLevel.
//   - A Map is not safe for concurrent use. Callers that share one
//     between goroutines must provide their own locking.
package chainmap

// A map is an array of buckets, each the head of a singly linked
// chain of entries whose keys hash to that bucket. New entries are
// pushed on the front of their chain.
//
// The bucket count is always a level of the growth table (see
// growth.go). After an insert brings the entry count up to the bucket
// count the whole table is rebuilt at the next level: every entry is
// detached from its old chain and pushed on the front of its chain in
// the new table. Entries are moved, never copied, so key buffers stay
// where they are. Because each level roughly doubles the bucket count
// the total rehash work over n inserts is O(n).
//
// Iterators walk the array of buckets from a random starting bucket,
// wrapping around, and follow each chain in order.

import (
	"math/bits"

	"go.uber.org/zap"
	"golang.org/x/exp/rand"

	"github.com/aristanetworks/chainmap/malloc"
)

const (
	// flags
	hashWriting = 1 // a write to the map is in progress

	ptrSize = bits.UintSize / 8
)

// Map implements a hashmap with chained buckets.
type Map[E any] struct {
	count int // # live entries == size of map
	flags uint32
	level int // index into the growth table, never decreases

	// len(buckets) == BucketsFor(level) until the map is freed
	buckets []*entry[E]

	hash   HashFunc
	alloc  malloc.Allocator
	logger *zap.Logger

	resizes       int
	failedResizes int
	freed         bool
}

type entry[E any] struct {
	next *entry[E]
	// key is owned by the entry. It was obtained from the map's
	// allocator and is returned to it when the entry is destroyed.
	key  []byte
	elem E
}

// Iterator is instantiated by a call to Iter(). It allows iterating
// over a Map.
type Iterator[E any] struct {
	key     []byte
	elem    E
	buckets []*entry[E]
	e       *entry[E] // next entry in the current chain
	bucket  int       // next bucket to visit
	visited int       // # buckets visited so far
}

// Key returns the key at the iterator's current position. This is
// only valid after a call to Next() that returns true. The returned
// slice belongs to the map and must not be modified.
func (it *Iterator[E]) Key() []byte {
	return it.key
}

// Elem returns the element at the iterator's current position. This
// is only valid after a call to Next() that returns true.
func (it *Iterator[E]) Elem() E {
	return it.elem
}

// New instantiates a new empty Map. Unless WithSizeHint is given the
// map starts at level 0 of the growth table.
func New[E any](opts ...Option) (*Map[E], error) {
	m := &Map[E]{}
	if err := m.init(newConfig(opts)); err != nil {
		return nil, err
	}
	return m, nil
}

// NewHint instantiates a new Map with a hint as to how many elements
// will be inserted. The hint picks the smallest level of the growth
// table with at least hint buckets.
func NewHint[E any](hint int, opts ...Option) (*Map[E], error) {
	return New[E](append(opts[:len(opts):len(opts)], WithSizeHint(hint))...)
}

func (m *Map[E]) init(c config) error {
	level := levelForHint(c.hint)
	nbuckets := BucketsFor(level)
	if err := c.alloc.Reserve(tableBytes(nbuckets)); err != nil {
		return allocError(err, "bucket table")
	}
	m.level = level
	m.buckets = make([]*entry[E], nbuckets)
	m.hash = c.hash
	m.alloc = c.alloc
	m.logger = c.logger
	return nil
}

// lazyInit makes the zero Map usable.
func (m *Map[E]) lazyInit() error {
	if m.hash != nil || m.freed {
		return nil
	}
	return m.init(newConfig(nil))
}

func tableBytes(nbuckets int) int {
	return nbuckets * ptrSize
}

func (m *Map[E]) startWrite() {
	if m.flags&hashWriting != 0 {
		panic("concurrent map writes")
	}
	m.flags ^= hashWriting
}

func (m *Map[E]) endWrite() {
	if m.flags&hashWriting == 0 {
		panic("concurrent map writes")
	}
	m.flags &^= hashWriting
}

// Len returns the count of occupied elements in m.
func (m *Map[E]) Len() int {
	if m == nil {
		return 0
	}
	return m.count
}

// IsEmpty reports whether m holds no entries.
func (m *Map[E]) IsEmpty() bool {
	return m.Len() == 0
}

// Level returns m's current level in the growth table.
func (m *Map[E]) Level() int {
	if m == nil {
		return 0
	}
	return m.level
}

// Buckets returns m's current bucket count. It is zero for a freed
// map.
func (m *Map[E]) Buckets() int {
	if m == nil {
		return 0
	}
	return len(m.buckets)
}

// find returns the entry for key, or nil.
func (m *Map[E]) find(key []byte) *entry[E] {
	if m == nil || m.count == 0 || len(m.buckets) == 0 {
		return nil
	}
	e := m.buckets[m.bucketIndex(key, len(m.buckets))]
	for ; e != nil; e = e.next {
		if string(e.key) == string(key) {
			return e
		}
	}
	return nil
}

// Get returns the element associated with key. It returns an error
// wrapping ErrNotFound if key is not in m.
func (m *Map[E]) Get(key []byte) (E, error) {
	e := m.find(key)
	if e == nil {
		var zeroE E
		return zeroE, keyError(ErrNotFound, "get", key)
	}
	return e.elem, nil
}

// GetOrDefault returns the element associated with key, or def if key
// is not in m.
func (m *Map[E]) GetOrDefault(key []byte, def E) E {
	if e := m.find(key); e != nil {
		return e.elem
	}
	return def
}

// Has reports whether key is in m.
func (m *Map[E]) Has(key []byte) bool {
	return m.find(key) != nil
}

// Insert associates key with elem in m. It returns an error wrapping
// ErrDuplicateKey if key is already present, ErrEmptyKey if key is
// empty, or ErrAllocation if memory for the entry or for the resize it
// triggers cannot be obtained. m is unchanged when Insert fails.
func (m *Map[E]) Insert(key []byte, elem E) error {
	if m == nil {
		// There is nowhere to put the entry, and the caller cannot
		// observe a map we allocate here.
		panic("Insert called on nil map")
	}
	if err := m.checkInsert(key, "insert"); err != nil {
		return err
	}
	if m.find(key) != nil {
		return keyError(ErrDuplicateKey, "insert", key)
	}
	m.startWrite()
	defer m.endWrite()
	return m.insertNew(key, elem)
}

// Set associates key with elem in m, replacing any existing element.
// If key was present Set returns the element it replaced and true.
// Errors are as for Insert, except that a present key is not an
// error.
func (m *Map[E]) Set(key []byte, elem E) (prev E, replaced bool, err error) {
	if m == nil {
		panic("Set called on nil map")
	}
	if err = m.checkInsert(key, "set"); err != nil {
		return prev, false, err
	}
	if e := m.find(key); e != nil {
		prev = e.elem
		e.elem = elem
		return prev, true, nil
	}
	m.startWrite()
	defer m.endWrite()
	return prev, false, m.insertNew(key, elem)
}

func (m *Map[E]) checkInsert(key []byte, op string) error {
	if len(key) == 0 {
		return keyError(ErrEmptyKey, op, key)
	}
	if m.freed {
		return keyError(ErrFreed, op, key)
	}
	return m.lazyInit()
}

// insertNew adds an entry for key, which must not be in m.
func (m *Map[E]) insertNew(key []byte, elem E) error {
	buf, err := m.alloc.Allocate(len(key))
	if err != nil {
		m.logger.Warn("chainmap: cannot allocate key",
			zap.Int("key_size", len(key)), zap.Error(err))
		return allocError(err, "key")
	}
	copy(buf, key)

	// Reserve the next table up front so that a failed resize leaves
	// the map exactly as it was.
	grow := m.count+1 >= len(m.buckets) && m.level < MaxLevel()
	if grow {
		if err := m.alloc.Reserve(tableBytes(BucketsFor(m.level + 1))); err != nil {
			m.alloc.Free(len(buf))
			m.failedResizes++
			m.logger.Warn("chainmap: cannot allocate bucket table",
				zap.Int("level", m.level+1),
				zap.Int("buckets", BucketsFor(m.level+1)),
				zap.Int("entries", m.count),
				zap.Error(err))
			return allocError(err, "bucket table")
		}
	}

	i := m.bucketIndex(key, len(m.buckets))
	m.buckets[i] = &entry[E]{next: m.buckets[i], key: buf, elem: elem}
	m.count++

	if grow {
		m.rehash()
	}
	return nil
}

// rehash moves every entry into a table at the next level. The new
// table has already been reserved.
func (m *Map[E]) rehash() {
	oldbuckets := m.buckets
	newlevel := m.level + 1
	newbuckets := make([]*entry[E], BucketsFor(newlevel))

	for i := range oldbuckets {
		for e := oldbuckets[i]; e != nil; e = oldbuckets[i] {
			// detach from the old chain before splicing, so the rest
			// of the chain stays reachable
			oldbuckets[i] = e.next
			j := m.bucketIndex(e.key, len(newbuckets))
			e.next = newbuckets[j]
			newbuckets[j] = e
		}
	}

	m.logger.Debug("chainmap: resized",
		zap.Int("from_level", m.level),
		zap.Int("to_level", newlevel),
		zap.Int("buckets", len(newbuckets)),
		zap.Int("entries", m.count))

	m.buckets = newbuckets
	m.level = newlevel
	m.resizes++
	m.alloc.Free(tableBytes(len(oldbuckets)))
}

// Update replaces the element associated with key and returns the
// element it replaced. It returns an error wrapping ErrNotFound if key
// is not in m.
func (m *Map[E]) Update(key []byte, elem E) (E, error) {
	e := m.find(key)
	if e == nil {
		var zeroE E
		return zeroE, keyError(ErrNotFound, "update", key)
	}
	prev := e.elem
	e.elem = elem
	return prev, nil
}

// UpdateFunc replaces the element associated with key with the result
// of fn applied to it. It returns an error wrapping ErrNotFound if key
// is not in m, in which case fn is not called.
func (m *Map[E]) UpdateFunc(key []byte, fn func(cur E) E) error {
	e := m.find(key)
	if e == nil {
		return keyError(ErrNotFound, "update", key)
	}
	e.elem = fn(e.elem)
	return nil
}

// Remove deletes key and its element from m and returns the element.
// It returns an error wrapping ErrNotFound if key is not in m.
func (m *Map[E]) Remove(key []byte) (E, error) {
	var zeroE E
	if m == nil || m.count == 0 || len(m.buckets) == 0 {
		return zeroE, keyError(ErrNotFound, "remove", key)
	}
	i := m.bucketIndex(key, len(m.buckets))
	m.startWrite()
	defer m.endWrite()

	for p := &m.buckets[i]; *p != nil; p = &(*p).next {
		e := *p
		if string(e.key) != string(key) {
			continue
		}
		*p = e.next
		m.count--
		elem := e.elem
		m.destroy(e)
		return elem, nil
	}
	return zeroE, keyError(ErrNotFound, "remove", key)
}

// destroy releases an entry that is no longer linked into m.
func (m *Map[E]) destroy(e *entry[E]) {
	var zeroE E
	m.alloc.Free(len(e.key))
	// Clear fields in case they hold pointers
	e.next = nil
	e.key = nil
	e.elem = zeroE
}

// Clear deletes all keys from m. The bucket count is unchanged.
func (m *Map[E]) Clear() {
	if m == nil || m.count == 0 {
		return
	}
	m.startWrite()
	m.destroyAll()
	m.endWrite()
}

func (m *Map[E]) destroyAll() {
	for i := range m.buckets {
		for e := m.buckets[i]; e != nil; e = m.buckets[i] {
			m.buckets[i] = e.next
			m.destroy(e)
		}
	}
	m.count = 0
}

// Free deletes all keys from m and releases its bucket table. Inserts
// into a freed map fail with ErrFreed; lookups find nothing.
func (m *Map[E]) Free() {
	if m == nil || m.freed {
		return
	}
	m.startWrite()
	defer m.endWrite()
	m.freed = true
	if m.buckets == nil {
		// never initialized
		return
	}
	m.destroyAll()
	m.alloc.Free(tableBytes(len(m.buckets)))
	m.buckets = nil
}

// Iter instantiates an Iterator to explore the elements of the Map.
// Ordering is undefined and is intentionally randomized. The map must
// not be modified while the iterator is in use.
func (m *Map[E]) Iter() *Iterator[E] {
	if m == nil || m.count == 0 {
		return &Iterator[E]{}
	}
	return &Iterator[E]{
		buckets: m.buckets,
		// decide where to start
		bucket: int(rand.Uint64() % uint64(len(m.buckets))),
	}
}

// Next moves the iterator to the next element. Next returns false
// when the iterator is complete.
func (it *Iterator[E]) Next() bool {
	for it.e == nil {
		if it.visited == len(it.buckets) {
			// end of iteration
			var zeroE E
			it.key = nil
			it.elem = zeroE
			return false
		}
		it.e = it.buckets[it.bucket]
		it.visited++
		it.bucket++
		if it.bucket == len(it.buckets) {
			it.bucket = 0
		}
	}
	it.key = it.e.key
	it.elem = it.e.elem
	it.e = it.e.next
	return true
}
