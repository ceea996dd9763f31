package tpl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeMap(t *testing.T) {
	t.Run("Set Get", func(t *testing.T) {
		var m SafeMap[string, int]
		m.Set("a", 1)
		res, ok := m.Get("a")
		assert.Equal(t, 1, res)
		assert.True(t, ok)
		res, ok = m.Get("b")
		assert.Equal(t, 0, res)
		assert.False(t, ok)
		m.Set("a", 2)
		res, _ = m.Get("a")
		assert.Equal(t, 2, res)
	})

	t.Run("Has Delete", func(t *testing.T) {
		var m SafeMap[string, int]
		assert.False(t, m.Has("a"))
		m.Set("a", 1)
		assert.True(t, m.Has("a"))
		m.Delete("a")
		assert.False(t, m.Has("a"))
	})

	t.Run("Len Clear", func(t *testing.T) {
		var m SafeMap[string, int]
		assert.Equal(t, 0, m.Len())
		m.Set("a", 1)
		m.Set("b", 2)
		assert.Equal(t, 2, m.Len())
		m.Clear()
		assert.Equal(t, 0, m.Len())
	})

	t.Run("Map", func(t *testing.T) {
		var m SafeMap[string, int]
		m.Set("a", 1)
		m.Set("b", 2)
		assert.Equal(t, map[string]int{"a": 1, "b": 2}, m.Map())
	})
}
