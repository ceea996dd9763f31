package handler

import (
	"testing"

	"github.com/quillcms/quill/qn"

	"github.com/stretchr/testify/assert"
)

func Test_Permission_ResolveUser(t *testing.T) {
	direct := mustUser("resolve_direct")
	twoGroup := mustUser("resolve_twogroup")
	denied := mustUser("resolve_denied")
	token := mustToken("resolve_posts")
	other := mustToken("resolve_other")

	full := mustGroup("resolve_full", twoGroup, denied)
	partial := mustGroup("resolve_partial", twoGroup)
	deny := mustGroup("resolve_deny", denied)

	assert.NoError(t, Permission.GrantUser(direct.ID, qn.ByID(token.ID), "full"))
	assert.NoError(t, Permission.GrantGroup(full.ID, qn.ByID(token.ID), "full"))
	assert.NoError(t, Permission.GrantGroup(partial.ID, qn.ByID(other.ID), "read"))
	assert.NoError(t, Permission.GrantGroup(full.ID, qn.ByID(other.ID), "edit"))
	assert.NoError(t, Permission.DenyGroup(deny.ID, qn.ByID(token.ID)))

	tests := []struct {
		name  string
		uid   int64
		token qn.Ident
		want  qn.AccessMask
	}{
		{"direct_full", direct.ID, qn.ByID(token.ID), qn.AccessFull},
		{"group_full", twoGroup.ID, qn.ByID(token.ID), qn.AccessFull},
		{"group_union", twoGroup.ID, qn.ByID(other.ID), qn.AccessRead | qn.AccessEdit},
		// explicit zero on one membership path vetoes the full grant on the other
		{"deny_wins", denied.ID, qn.ByID(token.ID), qn.AccessNone},
		{"no_grant", direct.ID, qn.ByID(other.ID), qn.AccessNone},
		{"by_name", direct.ID, qn.ByName("Resolve   Posts"), qn.AccessFull},
		{"missing_token", direct.ID, qn.ByName("no_such_token"), qn.AccessNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Permission.ResolveUser(tt.uid, tt.token)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_Permission_SuperUser(t *testing.T) {
	super := mustUser("super_bypass")
	token := mustToken("super_target")
	assert.NoError(t, Permission.GrantUser(super.ID, qn.ByName(qn.TokenSuperUser), "full"))

	// bypass: no grant on the token at all, super_user "any" wins
	can, err := Permission.UserCan(super.ID, qn.ByID(token.ID), "full")
	assert.NoError(t, err)
	assert.True(t, can)

	// the asymmetry: UserCannot ignores the bypass, the unresolved mask is
	// still zero
	cannot, err := Permission.UserCannot(super.ID, qn.ByID(token.ID))
	assert.NoError(t, err)
	assert.True(t, cannot)

	plain := mustUser("super_plain")
	can, err = Permission.UserCan(plain.ID, qn.ByID(token.ID), "full")
	assert.NoError(t, err)
	assert.False(t, can)
}

func Test_Permission_RevokeVsDeny(t *testing.T) {
	g := mustGroup("revoke_group")
	token := mustToken("revoke_token")

	assert.NoError(t, Permission.GrantGroup(g.ID, qn.ByID(token.ID), "read"))
	_, found, err := Permission.ResolveGroup(qn.ByID(g.ID), qn.ByID(token.ID))
	assert.NoError(t, err)
	assert.True(t, found)

	// revoke removes the row: absence, not explicit deny
	assert.NoError(t, Permission.RevokeGroup(g.ID, qn.ByID(token.ID)))
	mask, found, err := Permission.ResolveGroup(qn.ByID(g.ID), qn.ByID(token.ID))
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, qn.AccessNone, mask)

	assert.NoError(t, Permission.DenyGroup(g.ID, qn.ByID(token.ID)))
	mask, found, err = Permission.ResolveGroup(qn.ByID(g.ID), qn.ByID(token.ID))
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, qn.AccessNone, mask)
}

func Test_Permission_GrantAccumulates(t *testing.T) {
	user := mustUser("accumulate")
	token := mustToken("accumulate_token")

	assert.NoError(t, Permission.GrantUser(user.ID, qn.ByID(token.ID), "read"))
	assert.NoError(t, Permission.GrantUser(user.ID, qn.ByID(token.ID), "edit"))
	mask, err := Permission.ResolveUser(user.ID, qn.ByID(token.ID))
	assert.NoError(t, err)
	assert.Equal(t, qn.AccessRead|qn.AccessEdit, mask)

	// a single row per (user, token): the grant overwrote, not duplicated
	rows, err := Permission.GetUser(user.ID)
	assert.NoError(t, err)
	assert.Len(t, rows, 1)

	assert.NoError(t, Permission.DenyUser(user.ID, qn.ByID(token.ID)))
	mask, err = Permission.ResolveUser(user.ID, qn.ByID(token.ID))
	assert.NoError(t, err)
	assert.Equal(t, qn.AccessNone, mask)
}

func Test_Permission_GroupCan(t *testing.T) {
	g := mustGroup("groupcan")
	token := mustToken("groupcan_token")

	can, err := Permission.GroupCan(qn.ByName("groupcan"), qn.ByID(token.ID), "any")
	assert.NoError(t, err)
	assert.False(t, can) // no grant row is false for every access kind

	assert.NoError(t, Permission.GrantGroup(g.ID, qn.ByID(token.ID), "full"))
	can, err = Permission.GroupCan(qn.ByName("groupcan"), qn.ByID(token.ID), "full")
	assert.NoError(t, err)
	assert.True(t, can)
	can, err = Permission.GroupCan(qn.ByID(g.ID), qn.ByID(token.ID), "read")
	assert.NoError(t, err)
	assert.True(t, can)
}

func Test_Permission_UserTokens(t *testing.T) {
	user := mustUser("listtokens")
	g := mustGroup("listtokens_group", user)
	t1 := mustToken("listtokens_a")
	t2 := mustToken("listtokens_b")
	t3 := mustToken("listtokens_c")

	// t1 has a direct read and a group edit; the listing keeps the highest
	assert.NoError(t, Permission.GrantUser(user.ID, qn.ByID(t1.ID), "read"))
	assert.NoError(t, Permission.GrantGroup(g.ID, qn.ByID(t1.ID), "edit"))
	assert.NoError(t, Permission.GrantGroup(g.ID, qn.ByID(t2.ID), "full"))
	assert.NoError(t, Permission.DenyUser(user.ID, qn.ByID(t3.ID)))

	got, err := Permission.UserTokens(user.ID, "any", false)
	assert.NoError(t, err)
	byTID := make(map[int64]*qn.PermEntry)
	for _, v := range got {
		byTID[v.TID] = v
	}
	assert.Contains(t, byTID, t1.ID)
	assert.Contains(t, byTID, t2.ID)
	assert.NotContains(t, byTID, t3.ID)
	assert.Equal(t, "listtokens_b", byTID[t2.ID].Name)

	// deny filter means exactly zero, not access_check fallthrough
	got, err = Permission.UserTokens(user.ID, "deny", false)
	assert.NoError(t, err)
	byTID = make(map[int64]*qn.PermEntry)
	for _, v := range got {
		byTID[v.TID] = v
	}
	assert.Contains(t, byTID, t3.ID)
	assert.NotContains(t, byTID, t1.ID)

	// posts_only keeps tokens attached to at least one post
	post := &qn.Post{UID: user.ID, Title: "hello", Slug: "listtokens-hello"}
	assert.NoError(t, qn.NewORM[qn.Post](nil).Create(post))
	assert.NoError(t, qn.NewORM[qn.PostToken](nil).Create(&qn.PostToken{
		PostID: post.ID,
		TID:    t2.ID,
	}))
	got, err = Permission.UserTokens(user.ID, "any", true)
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, t2.ID, got[0].TID)

	// a super user sees every registered token at full access
	superUser := mustUser("listtokens_super")
	assert.NoError(t, Permission.GrantUser(superUser.ID, qn.ByName(qn.TokenSuperUser), "read"))
	got, err = Permission.UserTokens(superUser.ID, "full", false)
	assert.NoError(t, err)
	total, err := Token.Count(nil)
	assert.NoError(t, err)
	assert.Len(t, got, int(total))
	for _, v := range got {
		assert.Equal(t, qn.AccessFull, v.Access)
	}

	// the access filter never narrows the super listing, deny included
	got, err = Permission.UserTokens(superUser.ID, "deny", false)
	assert.NoError(t, err)
	assert.Len(t, got, int(total))
}
