package qn

import (
	"gorm.io/gorm"
)

type UserHandler interface {
	WithTx(tx *gorm.DB) UserHandler

	// New create new user. When password is empty a random one is
	// generated; the effective password is returned.
	New(username string, password string) (*User, string, error)

	// CheckPass check whether user and pass match.
	//
	// If error, return nil,-1,err.
	// If user not found, return nil,1,nil.
	// If pass not match, return nil,2,nil.
	// Return user,0,nil if all match.
	CheckPass(user string, pass string) (*User, int, error)

	// UserID resolves id to a numeric user id, 0 when not found.
	// Numeric idents are returned as-is.
	UserID(id Ident) (int64, error)

	// Get get user by id, nil when not found.
	Get(id Ident) (*User, error)

	GetAll(cond *Condition) ([]*User, error)
	Count(cond *Condition) (int64, error)

	// Kick deletes all sessions of user id.
	Kick(id int64) error

	// Reset resets user password by id, returns the new password.
	Reset(id int64) (string, error)

	// Update updates user fields by user.ID. A non-empty password is
	// hashed and the user kicked.
	Update(column []string, user *User) error

	// UpdateLogin records a successful sign in of user id from ip.
	UpdateLogin(id int64, ip string) error

	// Delete deletes the user, their group links and grants.
	Delete(id int64) error
}

type GroupHandler interface {
	WithTx(tx *gorm.DB) GroupHandler

	// New returns an empty unsaved group entity.
	New(name string, note string) *UserGroup

	// Load loads a group by id or name with members and permissions
	// eagerly populated. Returns nil when not found.
	Load(id Ident) (*UserGroup, error)

	// GroupID resolves id to a numeric group id, 0 when not found.
	GroupID(id Ident) (int64, error)

	Get(id Ident) (*Group, error)
	GetAll(cond *Condition) ([]*Group, error)
	Count(cond *Condition) (int64, error)

	// MemberIDs returns the user ids linked to group gid.
	MemberIDs(gid int64) ([]int64, error)

	// Members returns users linked to group gid by condition.
	Members(gid int64, cond *Condition) ([]*UserGroupLink, error)
	CountMembers(gid int64, cond *Condition) (int64, error)

	// GroupsOf returns the ids of every group user uid belongs to.
	GroupsOf(uid int64) ([]int64, error)

	// Insert persists a new group: the row plus both junction tables
	// rebuilt from the entity's in-memory sets.
	Insert(g *UserGroup) error

	// Update persists an existing group the same way (delete-and-reinsert
	// of both junction tables).
	Update(g *UserGroup) error

	// Delete cascades both junction tables before removing the group row.
	Delete(id Ident) error
}

type TokenHandler interface {
	WithTx(tx *gorm.DB) TokenHandler

	// New registers a token. The name is normalized first; ErrAlreadyExists
	// when taken, ErrVetoed when a filter hook aborts. On success the token
	// is granted full access to the group named "admin" when that group
	// exists.
	New(name string, description string) (*Token, error)

	// Destroy deletes all user and group grants of the token, then the
	// token row. ErrNotFound when the token does not exist.
	Destroy(id Ident) error

	// TokenID resolves id to a numeric token id, 0 when not found.
	// Numeric idents are returned as-is without registry validation.
	TokenID(id Ident) (int64, error)

	Exists(id Ident) (bool, error)
	TokenName(id Ident) (string, error)
	Description(id Ident) (string, error)
	Get(id Ident) (*Token, error)
	GetAll(cond *Condition) ([]*Token, error)
	Count(cond *Condition) (int64, error)
}

// PermEntry is one resolved token grant of UserTokens.
type PermEntry struct {
	TID    int64      `json:"tid"`
	Name   string     `json:"name"`
	Access AccessMask `json:"access"`
}

type PermissionHandler interface {
	WithTx(tx *gorm.DB) PermissionHandler

	// ResolveUser combines the user's direct grant with the grants of
	// every group the user belongs to. Any explicit zero row vetoes all
	// other grants; otherwise non-zero masks are ORed. A nonexistent token
	// yields the configured missing-token mask.
	ResolveUser(uid int64, token Ident) (AccessMask, error)

	// UserCan checks ResolveUser against access, falling back to "any"
	// access on the super_user token.
	UserCan(uid int64, token Ident, access string) (bool, error)

	// UserCannot reports whether the resolved mask is exactly zero. The
	// super_user bypass is intentionally not consulted, so a super user
	// with an explicit deny satisfies both UserCan and UserCannot.
	UserCannot(uid int64, token Ident) (bool, error)

	// ResolveGroup returns the single group grant row. found is false when
	// no row exists, which is different from an explicit zero mask.
	ResolveGroup(group Ident, token Ident) (mask AccessMask, found bool, err error)

	// GroupCan checks ResolveGroup against access; a missing grant row is
	// false for every access kind.
	GroupCan(group Ident, token Ident, access string) (bool, error)

	// UserTokens lists tokens the user satisfies access for. A super user
	// receives every registered token at full access. postsOnly restricts
	// to tokens attached to at least one post.
	UserTokens(uid int64, access string, postsOnly bool) ([]*PermEntry, error)

	// GrantUser merges access onto the user's existing grant mask
	// (defaulting to deny) and upserts the row.
	GrantUser(uid int64, token Ident, access string) error

	// GrantGroup behaves like GrantUser for a group and invalidates the
	// group's permission cache.
	GrantGroup(gid int64, token Ident, access string) error

	// DenyUser zeroes the user's grant mask.
	DenyUser(uid int64, token Ident) error
	DenyGroup(gid int64, token Ident) error

	// RevokeUser removes the grant row entirely: absence falls through
	// resolution instead of vetoing it.
	RevokeUser(uid int64, token Ident) error
	RevokeGroup(gid int64, token Ident) error

	// GetUser returns the user's direct grant rows.
	GetUser(uid int64) ([]*UserTokenPermission, error)

	// GetGroup returns the group's grant map (token id to mask), cached
	// per group until a grant mutation invalidates it.
	GetGroup(gid int64) (map[int64]AccessMask, error)

	// DeleteUser removes every grant row of user uid.
	DeleteUser(uid int64) (int64, error)

	// DeleteGroup removes every grant row of group gid.
	DeleteGroup(gid int64) (int64, error)
}

type EventHandler interface {
	WithTx(tx *gorm.DB) EventHandler
	New(level EventLevel, category string, source string, message string) error
	GetAll(cond *Condition) ([]*Event, error)
	Count(cond *Condition) (int64, error)
	DeleteAll() (int64, error)
}

type SettingHandler interface {
	WithTx(tx *gorm.DB) SettingHandler
	BuildCache() error

	// GetAll return all settings.
	//
	// Copies are returned, modification will not be saved.
	GetAll() map[string]string

	Get(name string) (string, bool)
	Set(name string, value string) error
	Delete(name string) (bool, error)
	DeleteAll() (int64, error)
}
