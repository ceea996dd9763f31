// Package db opens the backing stores: the relational database, redis and
// the redis session store.
package db

import (
	"github.com/quillcms/quill/qn"

	"github.com/glebarez/sqlite"
	"github.com/ztrue/tracerr"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens the database and migrates every model. Only sqlite is
// supported for now, path is the file path or a sqlite DSN.
func NewDB(path string, dbtype string, verbose bool) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch dbtype {
	case "sqlite":
		dial = sqlite.Open(path)
	default:
		return nil, tracerr.Errorf("database type %v not supported", dbtype)
	}

	level := logger.Silent
	if verbose {
		level = logger.Info
	}
	ret, err := gorm.Open(dial, &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	if err := ret.AutoMigrate(&qn.User{}, &qn.Group{}, &qn.UserGroupLink{},
		&qn.Token{}, &qn.UserTokenPermission{}, &qn.GroupTokenPermission{},
		&qn.Post{}, &qn.PostToken{}, &qn.Tag{}, &qn.PostTag{},
		&qn.Event{}, &qn.Setting{}); err != nil {
		return nil, tracerr.Wrap(err)
	}
	return ret, nil
}
