package handler

import (
	"fmt"

	"github.com/quillcms/quill/qn"

	"github.com/ztrue/tracerr"
	"gorm.io/gorm"
)

type TokenImpl struct {
	tx  *gorm.DB
	orm *qn.ORM[qn.Token]
}

var Token = &TokenImpl{}

func (t *TokenImpl) WithTx(tx *gorm.DB) qn.TokenHandler {
	if tx == nil {
		tx = qn.Quill.DB
	}
	return &TokenImpl{
		tx:  tx,
		orm: qn.NewORM[qn.Token](tx),
	}
}

// New registers a permission token. The normalized name must be unused.
// Every new token is granted full access to the group named "admin" when
// that group exists, so the admin group picks up new permissions
// retroactively.
func (t *TokenImpl) New(name string, description string) (*qn.Token, error) {
	name = qn.NormalizeToken(name)
	if name == "" {
		return nil, tracerr.New("token name is empty")
	}
	if !qn.Quill.Hook.Filter(qn.HookTokenCreate, name) {
		return nil, qn.ErrVetoed
	}
	exist, err := t.orm.Where("name = ?", name).Take()
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, qn.ErrAlreadyExists
	}

	token := &qn.Token{
		Name:        name,
		Description: description,
	}
	err = t.tx.Transaction(func(tx *gorm.DB) error {
		if err := qn.NewORM[qn.Token](tx).Create(token); err != nil {
			return err
		}
		admin, err := Group.WithTx(tx).Get(qn.ByName("admin"))
		if err != nil {
			return err
		}
		if admin == nil {
			return nil
		}
		return Permission.WithTx(tx).GrantGroup(admin.ID, qn.ByID(token.ID), "full")
	})
	if err != nil {
		return nil, err
	}

	qn.Quill.Hook.Act(qn.HookTokenCreate, token)
	if qn.Quill.Event != nil {
		if err := qn.Quill.Event.New(qn.EventInfo, "token", "acl",
			fmt.Sprintf("Token %v created", name)); err != nil {
			return nil, err
		}
	}
	return token, nil
}

// Destroy deletes every user and group grant referencing the token before
// removing the token row itself.
func (t *TokenImpl) Destroy(id qn.Ident) error {
	token, err := t.Get(id)
	if err != nil {
		return err
	}
	if token == nil {
		return qn.ErrNotFound
	}
	if !qn.Quill.Hook.Filter(qn.HookTokenDestroy, token) {
		return qn.ErrVetoed
	}

	err = t.tx.Transaction(func(tx *gorm.DB) error {
		if _, err := qn.NewORM[qn.UserTokenPermission](tx).
			Where("tid = ?", token.ID).Delete(); err != nil {
			return err
		}
		if _, err := qn.NewORM[qn.GroupTokenPermission](tx).
			Where("tid = ?", token.ID).Delete(); err != nil {
			return err
		}
		_, err := qn.NewORM[qn.Token](tx).Delete(token.ID)
		return err
	})
	if err != nil {
		return err
	}
	Permission.InvalidateAll()

	qn.Quill.Hook.Act(qn.HookTokenDestroy, token)
	if qn.Quill.Event != nil {
		if err := qn.Quill.Event.New(qn.EventNotice, "token", "acl",
			fmt.Sprintf("Token %v destroyed", token.Name)); err != nil {
			return err
		}
	}
	return nil
}

// TokenID resolves id to a numeric token id. Numeric idents are passed
// through as already resolved; names are normalized and looked up,
// returning 0 when unknown.
func (t *TokenImpl) TokenID(id qn.Ident) (int64, error) {
	if id.IsID() {
		return id.ID, nil
	}
	token, err := t.orm.Where("name = ?", qn.NormalizeToken(id.Name)).Take()
	if err != nil {
		return 0, err
	}
	if token == nil {
		return 0, nil
	}
	return token.ID, nil
}

func (t *TokenImpl) Get(id qn.Ident) (*qn.Token, error) {
	if id.IsID() {
		return t.orm.Take(id.ID)
	}
	return t.orm.Where("name = ?", qn.NormalizeToken(id.Name)).Take()
}

func (t *TokenImpl) Exists(id qn.Ident) (bool, error) {
	token, err := t.Get(id)
	if err != nil {
		return false, err
	}
	return token != nil, nil
}

func (t *TokenImpl) TokenName(id qn.Ident) (string, error) {
	token, err := t.Get(id)
	if err != nil {
		return "", err
	}
	if token == nil {
		return "", nil
	}
	return token.Name, nil
}

func (t *TokenImpl) Description(id qn.Ident) (string, error) {
	token, err := t.Get(id)
	if err != nil {
		return "", err
	}
	if token == nil {
		return "", nil
	}
	return token.Description, nil
}

func (t *TokenImpl) GetAll(cond *qn.Condition) ([]*qn.Token, error) {
	return t.orm.Cond(cond).Find()
}

func (t *TokenImpl) Count(cond *qn.Condition) (int64, error) {
	return t.orm.Count(cond)
}
