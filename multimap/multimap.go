// Package multimap holds several values per key on top of an omap.Map, so
// the distinct keys stay dense and slot addressable.
package multimap

import (
	"github.com/pkg/errors"

	"github.com/rgolang/hml/omap"
)

var ErrStaleIterator = errors.New("iterator no longer valid")

type MultiMap[K comparable, V any] struct {
	m        *omap.Map[K, []V]
	total    int
	version  uint64
	released bool
}

// Iterator points at one value stored under a key. It is invalidated by any
// change to the MultiMap.
type Iterator[K comparable] struct {
	Key     K
	Index   int
	version uint64
}

func New[K comparable, V any](capacity int) *MultiMap[K, V] {
	return &MultiMap[K, V]{m: omap.New[K, []V](capacity)}
}

func (mm *MultiMap[K, V]) Release() {
	mm.m.Release()
	mm.released = true
	mm.total = 0
	mm.version++
}

func (mm *MultiMap[K, V]) Clear() {
	mm.m.Clear()
	mm.total = 0
	mm.version++
}

// Add appends v to the values of k. Duplicates are kept. Adding to a
// released MultiMap does nothing.
func (mm *MultiMap[K, V]) Add(k K, v V) {
	if mm.released {
		return
	}
	mm.version++
	if !mm.m.Add(k, []V{v}) {
		vs, _ := mm.m.Get(k)
		mm.m.Set(k, append(vs, v))
	}
	mm.total++
}

func (mm *MultiMap[K, V]) ContainsKey(k K) bool {
	return mm.m.Has(k)
}

// Count is the number of values stored under k.
func (mm *MultiMap[K, V]) Count(k K) int {
	vs, _ := mm.m.Get(k)
	return len(vs)
}

// Len is the number of distinct keys.
func (mm *MultiMap[K, V]) Len() int {
	return mm.m.Len()
}

// Total is the number of values across all keys.
func (mm *MultiMap[K, V]) Total() int {
	return mm.total
}

// Keys returns the distinct keys in slot order.
func (mm *MultiMap[K, V]) Keys() []K {
	return mm.m.Keys()
}

// CopyValues returns a copy of the values under k, in insertion order.
func (mm *MultiMap[K, V]) CopyValues(k K) ([]V, bool) {
	vs, ok := mm.m.Get(k)
	if !ok {
		return nil, false
	}
	return append([]V(nil), vs...), true
}

// Select finds the first value under k accepted by pred.
func (mm *MultiMap[K, V]) Select(k K, pred func(V) bool) (Iterator[K], bool) {
	vs, _ := mm.m.Get(k)
	for i, v := range vs {
		if pred(v) {
			return Iterator[K]{Key: k, Index: i, version: mm.version}, true
		}
	}
	return Iterator[K]{}, false
}

// RemoveAt removes the value it points at. Once a key has no values left
// the key is removed as well.
func (mm *MultiMap[K, V]) RemoveAt(it Iterator[K]) error {
	if it.version != mm.version {
		return errors.Wrapf(ErrStaleIterator, "key %v index %d", it.Key, it.Index)
	}
	vs, ok := mm.m.Get(it.Key)
	if !ok || it.Index < 0 || it.Index >= len(vs) {
		return errors.Wrapf(ErrStaleIterator, "key %v index %d", it.Key, it.Index)
	}
	mm.version++
	mm.total--
	if len(vs) == 1 {
		return mm.m.Remove(it.Key)
	}
	copy(vs[it.Index:], vs[it.Index+1:])
	var zero V
	vs[len(vs)-1] = zero
	mm.m.Set(it.Key, vs[:len(vs)-1])
	return nil
}

// RemoveKey drops k and every value under it, returning how many values
// were removed.
func (mm *MultiMap[K, V]) RemoveKey(k K) int {
	vs, ok := mm.m.Get(k)
	if !ok {
		return 0
	}
	if err := mm.m.Remove(k); err != nil {
		return 0
	}
	mm.version++
	mm.total -= len(vs)
	return len(vs)
}

// ForEach visits the values under k until fn returns false.
func (mm *MultiMap[K, V]) ForEach(k K, fn func(V) bool) {
	vs, _ := mm.m.Get(k)
	for _, v := range vs {
		if !fn(v) {
			return
		}
	}
}

// Each visits every value under k.
func (mm *MultiMap[K, V]) Each(k K, fn func(V)) {
	mm.ForEach(k, func(v V) bool {
		fn(v)
		return true
	})
}

// ForEachWith is ForEach passing a to every call of fn.
func ForEachWith[K comparable, V, A any](mm *MultiMap[K, V], k K, a A, fn func(V, A) bool) {
	mm.ForEach(k, func(v V) bool {
		return fn(v, a)
	})
}

// RemoveValue removes the first value under k equal to v.
func RemoveValue[K, V comparable](mm *MultiMap[K, V], k K, v V) bool {
	it, ok := mm.Select(k, func(x V) bool { return x == v })
	if !ok {
		return false
	}
	return mm.RemoveAt(it) == nil
}
