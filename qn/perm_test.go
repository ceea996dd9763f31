package qn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccessFull(t *testing.T) {
	var all AccessMask
	for _, v := range AccessFlags {
		m, ok := FlagMask(v)
		assert.True(t, ok)
		all |= m
	}
	assert.Equal(t, AccessFull, all)
}

func TestAccessCheck(t *testing.T) {
	tests := []struct {
		name   string
		mask   AccessMask
		access string
		want   bool
	}{
		{"full_full", AccessFull, "full", true},
		{"partial_full", AccessRead | AccessEdit, "full", false},
		{"zero_deny", AccessNone, "deny", true},
		{"nonzero_deny", AccessRead, "deny", false},
		{"zero_any", AccessNone, "any", false},
		{"nonzero_any", AccessDelete, "any", true},
		{"full_any", AccessFull, "any", true},
		{"flag_set", AccessRead | AccessCreate, "create", true},
		{"flag_unset", AccessRead | AccessCreate, "edit", false},
		{"full_flag", AccessFull, "read", true},
		{"unknown_access", AccessFull, "publish", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.mask.Check(tt.access))
		})
	}
}

func TestAccessLevel(t *testing.T) {
	tests := []struct {
		name   string
		mask   AccessMask
		want   string
		wantOk bool
	}{
		{"full", AccessFull, "full", true},
		{"zero", AccessNone, "", false},
		{"single", AccessDelete, "delete", true},
		// composite masks report only the lowest flag
		{"composite", AccessRead | AccessEdit, "read", true},
		{"composite_high", AccessEdit | AccessCreate, "edit", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, ok := tt.mask.Level()
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, level)
		})
	}
}

func TestAccessApply(t *testing.T) {
	assert.Equal(t, AccessFull, AccessNone.Apply("full"))
	assert.Equal(t, AccessNone, AccessFull.Apply("deny"))
	assert.Equal(t, AccessRead, AccessNone.Apply("read"))
	// single-flag grants accumulate, they never clear bits already set
	assert.Equal(t, AccessRead|AccessEdit, AccessRead.Apply("edit"))
	assert.Equal(t, AccessRead, AccessRead.Apply("publish"))
}

func TestNormalizeToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Manage   Users ", "manage_users"},
		{"manage_users", "manage_users"},
		{"Super User", "super_user"},
		{"own\tposts", "own_posts"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeToken(tt.in))
	}
}

func TestIdent(t *testing.T) {
	assert.True(t, ByID(3).IsID())
	assert.False(t, ByName("admin").IsID())
	// zero is not a valid id, it falls back to an empty-name lookup
	assert.False(t, ByID(0).IsID())
	assert.Equal(t, "3", ByID(3).String())
	assert.Equal(t, "admin", ByName("admin").String())
}
