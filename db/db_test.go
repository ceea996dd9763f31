package db

import (
	"testing"

	"github.com/quillcms/quill/qn"

	"github.com/stretchr/testify/assert"
)

// The handlers query the junction and grant tables with raw gid/tid
// clauses, so the migrated schema must expose exactly those column names.
func TestNewDBColumns(t *testing.T) {
	tx, err := NewDB("file:dbcolumns?mode=memory&cache=shared", "sqlite", false)
	assert.NoError(t, err)

	assert.NoError(t, tx.Create(&qn.UserGroupLink{UID: 1, GID: 2}).Error)
	assert.NoError(t, tx.Create(&qn.UserTokenPermission{UID: 1, TID: 3,
		Access: qn.AccessRead}).Error)
	assert.NoError(t, tx.Create(&qn.GroupTokenPermission{GID: 2, TID: 3,
		Access: qn.AccessFull}).Error)
	assert.NoError(t, tx.Create(&qn.PostToken{PostID: 4, TID: 3}).Error)

	var link qn.UserGroupLink
	assert.NoError(t, tx.Where("uid = ? AND gid = ?", 1, 2).First(&link).Error)
	var user qn.UserTokenPermission
	assert.NoError(t, tx.Where("uid = ? AND tid = ?", 1, 3).First(&user).Error)
	assert.Equal(t, qn.AccessRead, user.Access)
	var group qn.GroupTokenPermission
	assert.NoError(t, tx.Where("gid = ? AND tid = ?", 2, 3).First(&group).Error)
	assert.Equal(t, qn.AccessFull, group.Access)
	var post qn.PostToken
	assert.NoError(t, tx.Where("tid = ?", 3).First(&post).Error)
	assert.Equal(t, int64(4), post.PostID)
}

func TestNewDBUnknownType(t *testing.T) {
	_, err := NewDB("data.db", "oracle", false)
	assert.Error(t, err)
}
