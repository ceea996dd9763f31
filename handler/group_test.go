package handler

import (
	"testing"

	"github.com/quillcms/quill/qn"

	"github.com/stretchr/testify/assert"
)

func Test_Group_Editors(t *testing.T) {
	u1 := mustUser("editors_alice")
	u2 := mustUser("editors_bob")
	u3 := mustUser("editors_carol")
	token := mustToken("own_articles")

	g := Group.New("editors", "site editors")
	assert.NoError(t, g.Add(qn.ByID(u1.ID), qn.ByName("editors_bob"), qn.ByID(u3.ID)))
	assert.NoError(t, g.Grant("edit", qn.ByName("own_articles")))
	assert.NoError(t, Group.Insert(g))
	assert.NotZero(t, g.ID)

	loaded, err := Group.Load(qn.ByID(g.ID))
	assert.NoError(t, err)
	assert.Equal(t, "editors", loaded.Name)
	assert.Equal(t, []int64{u1.ID, u2.ID, u3.ID}, loaded.MemberIDs())
	assert.True(t, loaded.HasMember(u2.ID))

	// the entity check is label equality, not mask containment
	assert.True(t, loaded.Can(qn.ByID(token.ID), "edit"))
	assert.False(t, loaded.Can(qn.ByID(token.ID), "full"))

	// the ACL side answers the same grant with mask semantics
	can, err := Permission.UserCan(u2.ID, qn.ByID(token.ID), "edit")
	assert.NoError(t, err)
	assert.True(t, can)
	can, err = Permission.UserCan(u2.ID, qn.ByID(token.ID), "full")
	assert.NoError(t, err)
	assert.False(t, can)
}

func Test_Group_InsertDuplicate(t *testing.T) {
	mustGroup("dup_group")
	err := Group.Insert(Group.New("dup_group", ""))
	assert.ErrorIs(t, err, qn.ErrAlreadyExists)
}

func Test_Group_Update(t *testing.T) {
	u1 := mustUser("update_keep")
	u2 := mustUser("update_drop")
	g := mustGroup("update_group", u1, u2)

	assert.NoError(t, g.Remove(qn.ByID(u2.ID)))
	assert.NoError(t, Group.Update(g))

	// membership only flushes on save, the junction table is rebuilt
	members, err := Group.MemberIDs(g.ID)
	assert.NoError(t, err)
	assert.Equal(t, []int64{u1.ID}, members)

	gids, err := Group.GroupsOf(u2.ID)
	assert.NoError(t, err)
	assert.NotContains(t, gids, g.ID)

	err = Group.Update(Group.New("update_unsaved", ""))
	assert.ErrorIs(t, err, qn.ErrNotFound)
}

func Test_Group_GrantWriteThrough(t *testing.T) {
	g := mustGroup("writethrough")
	token := mustToken("writethrough_token")

	// grants on a persisted group hit the ACL without a save
	assert.NoError(t, g.Grant("read", qn.ByID(token.ID)))
	mask, found, err := Permission.ResolveGroup(qn.ByID(g.ID), qn.ByID(token.ID))
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, qn.AccessRead, mask)

	assert.NoError(t, g.Revoke(qn.ByID(token.ID)))
	_, found, err = Permission.ResolveGroup(qn.ByID(g.ID), qn.ByID(token.ID))
	assert.NoError(t, err)
	assert.False(t, found)
}

func Test_Group_Delete(t *testing.T) {
	user := mustUser("delete_member")
	g := mustGroup("delete_group", user)
	token := mustToken("delete_token")
	assert.NoError(t, g.Grant("full", qn.ByID(token.ID)))

	assert.NoError(t, Group.Delete(qn.ByName("delete_group")))

	row, err := Group.Get(qn.ByID(g.ID))
	assert.NoError(t, err)
	assert.Nil(t, row)
	gids, err := Group.GroupsOf(user.ID)
	assert.NoError(t, err)
	assert.Empty(t, gids)
	grants, err := Permission.GetGroup(g.ID)
	assert.NoError(t, err)
	assert.Empty(t, grants)

	assert.ErrorIs(t, Group.Delete(qn.ByID(g.ID)), qn.ErrNotFound)
}

func Test_Group_Hooks(t *testing.T) {
	qn.Quill.Hook.RegisterFilter(qn.HookGroupInsert, func(p qn.HookPoint, data any) bool {
		return data.(*qn.UserGroup).Name != "hook_blocked"
	})
	err := Group.Insert(Group.New("hook_blocked", ""))
	assert.ErrorIs(t, err, qn.ErrVetoed)
	row, err := Group.Get(qn.ByName("hook_blocked"))
	assert.NoError(t, err)
	assert.Nil(t, row)
}

func Test_Group_LoadLabels(t *testing.T) {
	g := mustGroup("label_group")
	full := mustToken("label_full")
	deny := mustToken("label_deny")
	assert.NoError(t, Permission.GrantGroup(g.ID, qn.ByID(full.ID), "full"))
	assert.NoError(t, Permission.DenyGroup(g.ID, qn.ByID(deny.ID)))

	loaded, err := Group.Load(qn.ByName("label_group"))
	assert.NoError(t, err)
	perms := loaded.Permissions()
	assert.Equal(t, "full", perms[full.ID])
	assert.Equal(t, "deny", perms[deny.ID])

	missing, err := Group.Load(qn.ByName("label_missing"))
	assert.NoError(t, err)
	assert.Nil(t, missing)
}
