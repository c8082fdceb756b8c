package status

import (
	"slices"
	"strings"
	"sync"
	"sync/atomic"
)

// Table maps metric keys to lazily created values of one kind
// Writers cache the pointer from Get once at construction
type Table[T any] struct {
	m   sync.Map // string -> *T
	len atomic.Int64
}

func NewTable[T any]() *Table[T] {
	return &Table[T]{}
}

// Get returns the value for key, creating a zero value on first use
func (t *Table[T]) Get(key string) *T {
	if v, ok := t.m.Load(key); ok {
		return v.(*T)
	}
	v, loaded := t.m.LoadOrStore(key, new(T))
	if !loaded {
		t.len.Add(1)
	}
	return v.(*T)
}

func (t *Table[T]) Has(key string) bool {
	_, ok := t.m.Load(key)
	return ok
}

func (t *Table[T]) Len() int {
	return int(t.len.Load())
}

// Each visits the keys with the given prefix in sorted order; an empty prefix visits all
func (t *Table[T]) Each(prefix string, fn func(key string, v *T)) {
	var keys []string
	t.m.Range(func(k, _ any) bool {
		if s := k.(string); strings.HasPrefix(s, prefix) {
			keys = append(keys, s)
		}
		return true
	})
	slices.Sort(keys)
	for _, k := range keys {
		v, _ := t.m.Load(k)
		fn(k, v.(*T))
	}
}
