// Package tpl provides generic containers shared across quill.
package tpl

import "sync"

// SafeMap is a typed wrapper around sync.Map.
type SafeMap[K comparable, V any] struct {
	data sync.Map
}

func (m *SafeMap[K, V]) Clear() {
	m.data = sync.Map{}
}

func (m *SafeMap[K, V]) Get(k K) (V, bool) {
	ret, ok := m.data.Load(k)
	if ret == nil {
		var tmp V
		return tmp, ok
	}
	return ret.(V), ok
}

func (m *SafeMap[K, V]) Set(k K, v V) {
	m.data.Store(k, v)
}

func (m *SafeMap[K, V]) Delete(k K) {
	m.data.Delete(k)
}

func (m *SafeMap[K, V]) Has(k K) bool {
	_, ok := m.data.Load(k)
	return ok
}

func (m *SafeMap[K, V]) Range(f func(k K, v V) bool) {
	m.data.Range(func(key, value any) bool {
		return f(key.(K), value.(V))
	})
}

func (m *SafeMap[K, V]) Len() int {
	ret := 0
	m.Range(func(K, V) bool {
		ret++
		return true
	})
	return ret
}

// Map returns a copied plain map.
func (m *SafeMap[K, V]) Map() map[K]V {
	ret := make(map[K]V)
	m.Range(func(k K, v V) bool {
		ret[k] = v
		return true
	})
	return ret
}
