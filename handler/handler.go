// Package handler implements the qn handler interfaces against the
// relational store.
package handler

import (
	"github.com/quillcms/quill/qn"
	"github.com/quillcms/quill/utils/log"
)

// Init wires every handler into qn.Quill. The database must be connected
// first.
func Init() {
	User = User.WithTx(nil).(*UserImpl)
	Group = Group.WithTx(nil).(*GroupImpl)
	Token = Token.WithTx(nil).(*TokenImpl)
	Permission = Permission.WithTx(nil).(*PermissionImpl)
	Event = Event.WithTx(nil).(*EventImpl)
	Setting = Setting.WithTx(nil).(*SettingImpl)

	qn.Quill.User = User
	qn.Quill.Group = Group
	qn.Quill.Token = Token
	qn.Quill.Permission = Permission
	qn.Quill.Event = Event
	qn.Quill.Setting = Setting
	if err := qn.Quill.Setting.BuildCache(); err != nil {
		log.NewEntry(err).Fatal("Failed to build setting cache")
	}
}

// InitData seeds the admin group and the builtin tokens on first run.
// Token creation auto-grants each token to the admin group, so seeding
// order matters: the group comes first.
func InitData() error {
	admin, err := Group.Get(qn.ByName("admin"))
	if err != nil {
		return err
	}
	if admin == nil {
		g := Group.New("admin", "Administrators")
		if err := Group.Insert(g); err != nil {
			return err
		}
	}
	for _, v := range []struct {
		name string
		note string
	}{
		{qn.TokenSuperUser, "Bypass every permission check"},
		{"manage_users", "Manage user accounts"},
		{"manage_groups", "Manage user groups"},
		{"manage_tokens", "Manage permission tokens"},
		{"manage_posts", "Manage all posts"},
		{"own_posts", "Manage own posts"},
	} {
		ok, err := Token.Exists(qn.ByName(v.name))
		if err != nil {
			return err
		}
		if !ok {
			if _, err := Token.New(v.name, v.note); err != nil {
				return err
			}
		}
	}
	return nil
}
