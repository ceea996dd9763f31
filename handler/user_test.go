package handler

import (
	"testing"

	"github.com/quillcms/quill/qn"

	"github.com/stretchr/testify/assert"
)

func Test_User_New(t *testing.T) {
	user, newpass, err := User.New("newuser", "secret")
	assert.NoError(t, err)
	assert.Equal(t, "secret", newpass)
	assert.Equal(t, HashPass("secret"), user.Password)

	// empty password means a generated one
	_, generated, err := User.New("newuser_random", "")
	assert.NoError(t, err)
	assert.Len(t, generated, 8)

	_, _, err = User.New("newuser", "other")
	assert.ErrorIs(t, err, qn.ErrAlreadyExists)
}

func Test_User_CheckPass(t *testing.T) {
	user := mustUser("passcheck")
	_, newpass, err := User.New("passcheck2", "correct")
	assert.NoError(t, err)

	rec, code, err := User.CheckPass("passcheck2", newpass)
	assert.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "passcheck2", rec.Username)

	rec, code, err = User.CheckPass("no_such_user", "x")
	assert.NoError(t, err)
	assert.Equal(t, 1, code)
	assert.Nil(t, rec)

	rec, code, err = User.CheckPass(user.Username, "wrong")
	assert.NoError(t, err)
	assert.Equal(t, 2, code)
	assert.Nil(t, rec)
}

func Test_User_UserID(t *testing.T) {
	user := mustUser("idlookup")

	id, err := User.UserID(qn.ByName("idlookup"))
	assert.NoError(t, err)
	assert.Equal(t, user.ID, id)

	id, err = User.UserID(qn.ByID(12345))
	assert.NoError(t, err)
	assert.Equal(t, int64(12345), id)

	id, err = User.UserID(qn.ByName("idlookup_missing"))
	assert.NoError(t, err)
	assert.Equal(t, int64(0), id)
}

func Test_User_UpdateLogin(t *testing.T) {
	user := mustUser("loginstamp")
	assert.NoError(t, User.UpdateLogin(user.ID, "10.0.0.1"))

	rec, err := User.Get(qn.ByID(user.ID))
	assert.NoError(t, err)
	assert.Equal(t, "10.0.0.1", rec.LastIP)
	assert.NotZero(t, rec.LastLogin)
}
