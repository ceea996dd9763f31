package handler

import (
	"testing"

	"github.com/quillcms/quill/qn"

	"github.com/stretchr/testify/assert"
)

func Test_Token_New(t *testing.T) {
	token, err := Token.New("  Manage   Comments ", "comment admin")
	assert.NoError(t, err)
	assert.Equal(t, "manage_comments", token.Name)
	assert.Equal(t, "comment admin", token.Description)

	// the admin group is granted full access on creation
	admin, err := Group.Get(qn.ByName("admin"))
	assert.NoError(t, err)
	mask, found, err := Permission.ResolveGroup(qn.ByID(admin.ID), qn.ByID(token.ID))
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, qn.AccessFull, mask)

	_, err = Token.New("", "")
	assert.Error(t, err)
}

func Test_Token_NewDuplicate(t *testing.T) {
	_, err := Token.New("dup_check", "")
	assert.NoError(t, err)
	before, err := Token.Count(nil)
	assert.NoError(t, err)

	// normalization collides before uniqueness is checked
	_, err = Token.New("Dup   Check", "")
	assert.ErrorIs(t, err, qn.ErrAlreadyExists)
	after, err := Token.Count(nil)
	assert.NoError(t, err)
	assert.Equal(t, before, after)
}

func Test_Token_Destroy(t *testing.T) {
	token := mustToken("destroy_me")
	user := mustUser("destroy_holder")
	g := mustGroup("destroy_group")
	assert.NoError(t, Permission.GrantUser(user.ID, qn.ByID(token.ID), "read"))
	assert.NoError(t, Permission.GrantGroup(g.ID, qn.ByID(token.ID), "full"))

	assert.NoError(t, Token.Destroy(qn.ByName("destroy_me")))

	exist, err := Token.Exists(qn.ByID(token.ID))
	assert.NoError(t, err)
	assert.False(t, exist)
	rows, err := Permission.GetUser(user.ID)
	assert.NoError(t, err)
	assert.Empty(t, rows)
	grants, err := Permission.GetGroup(g.ID)
	assert.NoError(t, err)
	assert.NotContains(t, grants, token.ID)

	assert.ErrorIs(t, Token.Destroy(qn.ByID(token.ID)), qn.ErrNotFound)
}

func Test_Token_Hooks(t *testing.T) {
	qn.Quill.Hook.RegisterFilter(qn.HookTokenCreate, func(p qn.HookPoint, data any) bool {
		return data.(string) != "hook_vetoed"
	})
	_, err := Token.New("Hook   Vetoed", "")
	assert.ErrorIs(t, err, qn.ErrVetoed)
	exist, err := Token.Exists(qn.ByName("hook_vetoed"))
	assert.NoError(t, err)
	assert.False(t, exist)

	var acted *qn.Token
	qn.Quill.Hook.RegisterAct(qn.HookTokenCreate, func(p qn.HookPoint, data any) {
		acted = data.(*qn.Token)
	})
	token, err := Token.New("hook_passed", "")
	assert.NoError(t, err)
	assert.Equal(t, token.ID, acted.ID)
}

func Test_Token_Lookup(t *testing.T) {
	token := mustToken("lookup_token")

	id, err := Token.TokenID(qn.ByName("  LOOKUP   Token "))
	assert.NoError(t, err)
	assert.Equal(t, token.ID, id)

	// numeric idents pass through without existence check
	id, err = Token.TokenID(qn.ByID(99999))
	assert.NoError(t, err)
	assert.Equal(t, int64(99999), id)

	id, err = Token.TokenID(qn.ByName("lookup_unknown"))
	assert.NoError(t, err)
	assert.Equal(t, int64(0), id)

	name, err := Token.TokenName(qn.ByID(token.ID))
	assert.NoError(t, err)
	assert.Equal(t, "lookup_token", name)
	desc, err := Token.Description(qn.ByName("lookup_token"))
	assert.NoError(t, err)
	assert.Equal(t, token.Description, desc)
}
