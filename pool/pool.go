// Package pool keeps reusable values bucketed by their dynamic type, so a
// Pool[Shape] can hand back a *Circle or a *Square on request.
package pool

import (
	"reflect"

	"github.com/pkg/errors"

	"github.com/rgolang/hml/omap"
)

var (
	ErrNilItem       = errors.New("nil item")
	ErrAlreadyPooled = errors.New("item already pooled")
	ErrTypeFull      = errors.New("pool full for type")
)

type Pool[T any] struct {
	maxPerType int
	stacks     *omap.Map[reflect.Type, []T]
}

// New creates a pool expecting about capacity distinct types and holding at
// most maxPerType items of any one type.
func New[T any](capacity, maxPerType int) *Pool[T] {
	return &Pool[T]{
		maxPerType: maxPerType,
		stacks:     omap.New[reflect.Type, []T](capacity),
	}
}

// Count is the number of types that have had items pooled.
func (p *Pool[T]) Count() int {
	return p.stacks.Len()
}

// CountOf is the number of pooled items of type t.
func (p *Pool[T]) CountOf(t reflect.Type) int {
	s, _ := p.stacks.Get(t)
	return len(s)
}

// Put returns item to the pool. When its type is already at capacity the
// item is dropped and ErrTypeFull is returned.
func (p *Pool[T]) Put(item T) error {
	t, ok := typeOf(item)
	if !ok {
		return ErrNilItem
	}
	s, found := p.stacks.Get(t)
	if !found {
		p.stacks.Add(t, nil)
	}
	if indexOf(s, item) >= 0 {
		return errors.Wrapf(ErrAlreadyPooled, "%v", t)
	}
	if len(s) >= p.maxPerType {
		return errors.Wrapf(ErrTypeFull, "%v holds %d", t, len(s))
	}
	p.stacks.Set(t, append(s, item))
	return nil
}

// Get pops the most recently pooled item whose dynamic type is exactly R.
func Get[R, T any](p *Pool[T]) (R, bool) {
	var zero R
	item, ok := p.GetType(reflect.TypeOf((*R)(nil)).Elem())
	if !ok {
		return zero, false
	}
	r, ok := any(item).(R)
	return r, ok
}

// GetType pops the most recently pooled item of type t.
func (p *Pool[T]) GetType(t reflect.Type) (T, bool) {
	var zero T
	s, _ := p.stacks.Get(t)
	if len(s) == 0 {
		return zero, false
	}
	item := s[len(s)-1]
	s[len(s)-1] = zero
	p.stacks.Set(t, s[:len(s)-1])
	return item, true
}

func (p *Pool[T]) Contains(item T) bool {
	t, ok := typeOf(item)
	if !ok {
		return false
	}
	s, _ := p.stacks.Get(t)
	return indexOf(s, item) >= 0
}

// Remove takes item out of the pool without handing it out.
func (p *Pool[T]) Remove(item T) bool {
	t, ok := typeOf(item)
	if !ok {
		return false
	}
	s, _ := p.stacks.Get(t)
	i := indexOf(s, item)
	if i < 0 {
		return false
	}
	copy(s[i:], s[i+1:])
	var zero T
	s[len(s)-1] = zero
	p.stacks.Set(t, s[:len(s)-1])
	return true
}

func (p *Pool[T]) Clear() {
	p.stacks.Clear()
}

func typeOf(item any) (reflect.Type, bool) {
	if item == nil {
		return nil, false
	}
	v := reflect.ValueOf(item)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		if v.IsNil() {
			return nil, false
		}
	}
	return v.Type(), true
}

// indexOf compares by ==. Items that are not comparable, including structs
// whose interface fields hold slices, maps or funcs, never match.
func indexOf[T any](s []T, item T) int {
	if len(s) == 0 || !reflect.ValueOf(any(item)).Comparable() {
		return -1
	}
	for i, x := range s {
		if !reflect.ValueOf(any(x)).Comparable() {
			continue
		}
		if any(x) == any(item) {
			return i
		}
	}
	return -1
}
