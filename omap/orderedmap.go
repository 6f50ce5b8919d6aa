// Package omap provides Map, a hash map whose entries also live in a dense
// slice so they can be addressed by slot as well as by key.
//
// Removal swaps the last entry into the vacated slot, so it stays O(1) but a
// slot number is only valid until the next removal. Re-resolve slots by key
// after calling Remove or RemoveAt.
//
// A Map is not safe for concurrent use.
package omap

import (
	"github.com/pkg/errors"
)

type Map[K comparable, V any] struct {
	indexOf  map[K]int
	values   []V
	keys     []K // keys[i] maps to i in indexOf
	alloc    Allocator
	released bool
}

type Option func(*options)

type options struct {
	alloc Allocator
}

// WithAllocator makes the map report its storage reservations to a.
func WithAllocator(a Allocator) Option {
	return func(o *options) {
		o.alloc = a
	}
}

func New[K comparable, V any](capacity int, opts ...Option) *Map[K, V] {
	o := options{alloc: heap{}}
	for _, opt := range opts {
		opt(&o)
	}
	if capacity < 0 {
		capacity = 0
	}
	m := &Map[K, V]{
		indexOf: make(map[K]int, capacity),
		values:  make([]V, 0, capacity),
		keys:    make([]K, 0, capacity),
		alloc:   o.alloc,
	}
	m.alloc.Reserve(capacity)
	return m
}

// Release drops all storage. The map must not be used afterwards: lookups
// report misses and error returning methods return ErrReleased.
func (m *Map[K, V]) Release() {
	if m.released {
		return
	}
	debugf("release: cap %d", cap(m.values))
	m.alloc.Free(cap(m.values))
	m.indexOf = nil
	m.values = nil
	m.keys = nil
	m.released = true
}

// Clear removes every entry but keeps the allocated capacity.
func (m *Map[K, V]) Clear() {
	if m.released {
		return
	}
	clear(m.indexOf)
	clear(m.values)
	clear(m.keys)
	m.values = m.values[:0]
	m.keys = m.keys[:0]
}

func (m *Map[K, V]) Len() int {
	return len(m.values)
}

func (m *Map[K, V]) checkSlot(slot int) error {
	if m.released {
		return ErrReleased
	}
	if slot < 0 || slot >= len(m.values) {
		return errors.Wrapf(ErrOutOfRange, "slot %d, length %d", slot, len(m.values))
	}
	return nil
}

// At returns the value stored at slot.
func (m *Map[K, V]) At(slot int) (V, error) {
	if err := m.checkSlot(slot); err != nil {
		var zero V
		return zero, err
	}
	return m.values[slot], nil
}

// SetAt overwrites the value at slot. The key stays the same.
func (m *Map[K, V]) SetAt(slot int, v V) error {
	if err := m.checkSlot(slot); err != nil {
		return err
	}
	m.values[slot] = v
	return nil
}

// KeyAt returns the key whose value is stored at slot.
func (m *Map[K, V]) KeyAt(slot int) (K, error) {
	if err := m.checkSlot(slot); err != nil {
		var zero K
		return zero, err
	}
	return m.keys[slot], nil
}

// SlotOf returns the current slot of k.
func (m *Map[K, V]) SlotOf(k K) (int, bool) {
	i, ok := m.indexOf[k] // nil map after Release reads as empty
	return i, ok
}

func (m *Map[K, V]) Has(k K) bool {
	_, ok := m.indexOf[k]
	return ok
}

func (m *Map[K, V]) Get(k K) (V, bool) {
	i, ok := m.indexOf[k]
	if ok {
		debugf("get %v: slot %d", k, i)
		return m.values[i], true
	}
	var zero V
	return zero, false
}

// Set overwrites the value for an existing key. It never inserts.
func (m *Map[K, V]) Set(k K, v V) bool {
	i, ok := m.indexOf[k]
	if !ok {
		return false
	}
	debugf("set %v: slot %d", k, i)
	m.values[i] = v
	return true
}

// Add appends k at slot Len() unless k is already present, in which case
// the existing value is left untouched and false is returned.
func (m *Map[K, V]) Add(k K, v V) bool {
	if m.released {
		return false
	}
	if _, ok := m.indexOf[k]; ok {
		return false
	}
	before := cap(m.values)
	m.indexOf[k] = len(m.values)
	m.values = append(m.values, v)
	m.keys = append(m.keys, k)
	if grown := cap(m.values) - before; grown > 0 {
		m.alloc.Reserve(grown)
	}
	debugf("add %v: slot %d", k, len(m.values)-1)
	return true
}

// ChangeKey moves the entry of oldKey to newKey without touching its value
// or slot. It fails if oldKey is absent or newKey belongs to another entry.
func (m *Map[K, V]) ChangeKey(oldKey, newKey K) bool {
	return m.ChangeKeyErr(oldKey, newKey) == nil
}

// ChangeKeyErr is ChangeKey reporting why the change was refused.
func (m *Map[K, V]) ChangeKeyErr(oldKey, newKey K) error {
	if m.released {
		return ErrReleased
	}
	i, ok := m.indexOf[oldKey]
	if !ok {
		return errors.Wrapf(ErrKeyNotFound, "key %v", oldKey)
	}
	if oldKey == newKey {
		return nil
	}
	if j, ok := m.indexOf[newKey]; ok {
		return errors.Wrapf(ErrKeyConflict, "key %v already at slot %d", newKey, j)
	}
	debugf("rekey %v -> %v: slot %d", oldKey, newKey, i)
	delete(m.indexOf, oldKey)
	m.indexOf[newKey] = i
	m.keys[i] = newKey
	return nil
}

// Remove deletes k. The entry at the last slot, if it is not k's, moves
// into k's slot.
func (m *Map[K, V]) Remove(k K) error {
	if m.released {
		return ErrReleased
	}
	i, ok := m.indexOf[k]
	if !ok {
		return errors.Wrapf(ErrKeyNotFound, "key %v", k)
	}
	m.removeSlot(i)
	return nil
}

// RemoveAt deletes the entry at slot, moving the last entry into its place.
func (m *Map[K, V]) RemoveAt(slot int) error {
	if err := m.checkSlot(slot); err != nil {
		return err
	}
	m.removeSlot(slot)
	return nil
}

func (m *Map[K, V]) removeSlot(r int) {
	last := len(m.values) - 1
	removed := m.keys[r]
	if r != last {
		moved := m.keys[last]
		debugf("remove %v: slot %d, moving %v from %d", removed, r, moved, last)
		m.values[r] = m.values[last]
		m.keys[r] = moved
		m.indexOf[moved] = r
	} else {
		debugf("remove %v: slot %d", removed, r)
	}
	delete(m.indexOf, removed)

	var zeroV V
	var zeroK K
	m.values[last] = zeroV
	m.keys[last] = zeroK
	m.values = m.values[:last]
	m.keys = m.keys[:last]
}

// Each calls fn for every entry in slot order until fn returns false.
// fn must not add or remove entries.
func (m *Map[K, V]) Each(fn func(slot int, k K, v V) bool) {
	for i, v := range m.values {
		if !fn(i, m.keys[i], v) {
			return
		}
	}
}

// Keys returns a copy of the keys in slot order.
func (m *Map[K, V]) Keys() []K {
	return append([]K(nil), m.keys...)
}

// Values returns a copy of the values in slot order.
func (m *Map[K, V]) Values() []V {
	return append([]V(nil), m.values...)
}

// Check verifies that the index, keys and values agree.
func (m *Map[K, V]) Check() error {
	if m.released {
		return ErrReleased
	}
	if len(m.keys) != len(m.values) {
		return errors.Wrapf(ErrCorrupt, "%d keys for %d values", len(m.keys), len(m.values))
	}
	if len(m.indexOf) != len(m.keys) {
		return errors.Wrapf(ErrCorrupt, "%d indexed keys for %d slots", len(m.indexOf), len(m.keys))
	}
	for i, k := range m.keys {
		j, ok := m.indexOf[k]
		if !ok {
			return errors.Wrapf(ErrCorrupt, "key %v at slot %d is not indexed", k, i)
		}
		if j != i {
			return errors.Wrapf(ErrCorrupt, "key %v at slot %d is indexed at %d", k, i, j)
		}
	}
	return nil
}
