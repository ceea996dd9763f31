package qn

import (
	"sort"
)

// UserGroup is the group entity the admin layer works with: the group row
// plus an in-memory member set and permission map. Load populates both
// eagerly; Insert/Update rebuild the junction tables from them.
//
// Membership changes stay in memory until the group is saved. Permission
// changes write through the ACL immediately once the group has an id, so
// the two do not persist at the same time; callers must save the group to
// flush membership.
//
// A UserGroup instance exclusively owns its maps; instances are not safe
// for concurrent use.
type UserGroup struct {
	Group

	members map[int64]struct{}
	perms   map[int64]string // token id -> access label
}

// NewUserGroup returns an empty entity. Handlers use it to build loaded
// groups; callers normally go through GroupHandler.New or Load.
func NewUserGroup(row Group) *UserGroup {
	return &UserGroup{
		Group:   row,
		members: make(map[int64]struct{}),
		perms:   make(map[int64]string),
	}
}

// Add resolves each ident to a user id and adds it to the in-memory
// member set. Adding an existing member is a no-op; unknown users are
// skipped. Nothing is persisted until Insert/Update.
func (g *UserGroup) Add(users ...Ident) error {
	for _, v := range users {
		uid, err := Quill.User.UserID(v)
		if err != nil {
			return err
		}
		if uid == 0 {
			continue
		}
		g.members[uid] = struct{}{}
	}
	return nil
}

// Remove drops users from the in-memory member set.
func (g *UserGroup) Remove(users ...Ident) error {
	for _, v := range users {
		uid, err := Quill.User.UserID(v)
		if err != nil {
			return err
		}
		delete(g.members, uid)
	}
	return nil
}

// MemberIDs returns the member user ids in ascending order.
func (g *UserGroup) MemberIDs() []int64 {
	ret := make([]int64, 0, len(g.members))
	for v := range g.members {
		ret = append(ret, v)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i] < ret[j] })
	return ret
}

// HasMember reports in-memory membership of user id.
func (g *UserGroup) HasMember(uid int64) bool {
	_, ok := g.members[uid]
	return ok
}

// Grant records access for each token in the in-memory permission map and,
// when the group is persisted, writes through the ACL immediately.
func (g *UserGroup) Grant(access string, tokens ...Ident) error {
	for _, v := range tokens {
		tid, err := Quill.Token.TokenID(v)
		if err != nil {
			return err
		}
		if tid == 0 {
			continue
		}
		g.perms[tid] = access
		if g.ID != 0 {
			if err := Quill.Permission.GrantGroup(g.ID, ByID(tid), access); err != nil {
				return err
			}
		}
	}
	return nil
}

// Deny grants explicit deny for each token.
func (g *UserGroup) Deny(tokens ...Ident) error {
	return g.Grant("deny", tokens...)
}

// Revoke removes each token from the permission map and deletes the grant
// row when the group is persisted.
func (g *UserGroup) Revoke(tokens ...Ident) error {
	for _, v := range tokens {
		tid, err := Quill.Token.TokenID(v)
		if err != nil {
			return err
		}
		if tid == 0 {
			continue
		}
		delete(g.perms, tid)
		if g.ID != 0 {
			if err := Quill.Permission.RevokeGroup(g.ID, ByID(tid)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Can checks the in-memory permission map only: the stored access label
// must equal the requested one. Granting "full" then checking "read"
// returns false even though full implies read. Use the ACL's GroupCan
// for mask semantics; this check exists for the entity's own label map.
func (g *UserGroup) Can(token Ident, access string) bool {
	tid, err := Quill.Token.TokenID(token)
	if err != nil || tid == 0 {
		return false
	}
	return g.perms[tid] == access
}

// Permissions returns a copy of the token id to access label map.
func (g *UserGroup) Permissions() map[int64]string {
	ret := make(map[int64]string, len(g.perms))
	for k, v := range g.perms {
		ret[k] = v
	}
	return ret
}

// SetPermission sets a permission label without touching the store.
// Handlers use it when loading grant rows into the entity.
func (g *UserGroup) SetPermission(tid int64, access string) {
	g.perms[tid] = access
}
