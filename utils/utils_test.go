package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandString(t *testing.T) {
	a := RandString(8)
	b := RandString(8)
	assert.Len(t, a, 8)
	assert.Len(t, b, 8)
	assert.NotEqual(t, a, b)
	assert.Regexp(t, "^[a-zA-Z0-9]+$", a)
}

func TestMD5(t *testing.T) {
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", MD5(""))
	assert.Equal(t, "900150983cd24fb0d6963f7d28e17f72", MD5("abc"))
}

func TestSliceUnique(t *testing.T) {
	tests := []struct {
		name string
		in   []int
		want []int
	}{
		{"empty", nil, nil},
		{"unique", []int{1, 2, 3}, []int{1, 2, 3}},
		{"dup", []int{1, 2, 1, 3, 2}, []int{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SliceUnique(tt.in))
		})
	}
}

func TestMinMax(t *testing.T) {
	assert.Equal(t, 1, Min(1, 2))
	assert.Equal(t, 2, Max(1, 2))
	assert.Equal(t, "a", Min("a", "b"))
}

func TestMapHelpers(t *testing.T) {
	m := map[string]int{"a": 1, "b": 2}
	assert.ElementsMatch(t, []string{"a", "b"}, MapKeyToSlice(m))
	assert.True(t, MapContains(m, "a"))
	assert.False(t, MapContains(m, "c"))
}
