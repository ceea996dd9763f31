package handler

import (
	"flag"
	"os"
	"testing"

	"github.com/quillcms/quill/db"
	"github.com/quillcms/quill/qn"

	_ "github.com/quillcms/quill/config"
)

func setup() {
	flag.Parse()
	verbose := flag.Lookup("test.v").Value.String() == "true"
	var err error
	qn.Quill.DB, err = db.NewDB("file::memory:?cache=shared", "sqlite", verbose)
	if err != nil {
		panic(err)
	}
	Init()
	if err := InitData(); err != nil {
		panic(err)
	}
}

func TestMain(m *testing.M) {
	setup()
	os.Exit(m.Run())
}

func mustUser(name string) *qn.User {
	user, _, err := User.New(name, "")
	if err != nil {
		panic(err)
	}
	return user
}

func mustGroup(name string, members ...*qn.User) *qn.UserGroup {
	g := Group.New(name, "")
	for _, v := range members {
		if err := g.Add(qn.ByID(v.ID)); err != nil {
			panic(err)
		}
	}
	if err := Group.Insert(g); err != nil {
		panic(err)
	}
	return g
}

func mustToken(name string) *qn.Token {
	token, err := Token.New(name, "test token")
	if err != nil {
		panic(err)
	}
	return token
}
