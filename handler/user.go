package handler

import (
	"time"

	"github.com/quillcms/quill/db"
	"github.com/quillcms/quill/qn"
	"github.com/quillcms/quill/utils"

	"github.com/spf13/viper"
	"gorm.io/gorm"
)

type UserImpl struct {
	tx  *gorm.DB
	orm *qn.ORM[qn.User]
}

var User = &UserImpl{}

func (u *UserImpl) WithTx(tx *gorm.DB) qn.UserHandler {
	if tx == nil {
		tx = qn.Quill.DB
	}
	return &UserImpl{
		tx:  tx,
		orm: qn.NewORM[qn.User](tx),
	}
}

// HashPass hashes pass with the configured salts.
func HashPass(pass string) string {
	return utils.MD5(viper.GetString("database.salt_prefix") + pass +
		viper.GetString("database.salt_suffix"))
}

func (u *UserImpl) New(username string, password string) (*qn.User, string, error) {
	exist, err := u.orm.Where("username = ?", username).Take()
	if err != nil {
		return nil, "", err
	}
	if exist != nil {
		return nil, "", qn.ErrAlreadyExists
	}
	newpass := password
	if newpass == "" {
		newpass = utils.RandString(8)
	}
	user := &qn.User{
		Username: username,
		Password: HashPass(newpass),
	}
	if err := u.orm.Create(user); err != nil {
		return nil, "", err
	}
	return user, newpass, nil
}

func (u *UserImpl) CheckPass(user string, pass string) (*qn.User, int, error) {
	rec, err := u.GetByName(user)
	if err != nil {
		return nil, -1, err
	}
	if rec == nil {
		return nil, 1, nil
	}
	if rec.Password != HashPass(pass) {
		return nil, 2, nil
	}
	return rec, 0, nil
}

func (u *UserImpl) UserID(id qn.Ident) (int64, error) {
	if id.IsID() {
		return id.ID, nil
	}
	user, err := u.GetByName(id.Name)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, nil
	}
	return user.ID, nil
}

func (u *UserImpl) Get(id qn.Ident) (*qn.User, error) {
	if id.IsID() {
		return u.orm.Take(id.ID)
	}
	return u.GetByName(id.Name)
}

func (u *UserImpl) GetByName(name string) (*qn.User, error) {
	return u.orm.Where("username = ?", name).Take()
}

func (u *UserImpl) GetAll(cond *qn.Condition) ([]*qn.User, error) {
	return u.orm.Cond(cond).Find()
}

func (u *UserImpl) Count(cond *qn.Condition) (int64, error) {
	return u.orm.Count(cond)
}

func (u *UserImpl) Kick(id int64) error {
	return db.DeleteSessions([]int64{id})
}

func (u *UserImpl) Reset(id int64) (string, error) {
	user, err := u.orm.Take(id)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", qn.ErrNotFound
	}
	// ensure security, kick first
	if err := u.Kick(id); err != nil {
		return "", err
	}
	newpass := utils.RandString(8)
	user.Password = HashPass(newpass)
	if err := u.orm.Save(user); err != nil {
		return "", err
	}
	return newpass, nil
}

func (u *UserImpl) Update(column []string, user *qn.User) error {
	kick := false
	for _, v := range column {
		if v == "password" {
			user.Password = HashPass(user.Password)
			kick = true
		}
	}
	if err := u.orm.ID(user.ID).Updates(column, user); err != nil {
		return err
	}
	if kick {
		return u.Kick(user.ID)
	}
	return nil
}

// UpdateLogin records a successful sign in.
func (u *UserImpl) UpdateLogin(id int64, ip string) error {
	return u.orm.ID(id).Updates([]string{"last_login", "last_ip"}, &qn.User{
		LastLogin: time.Now().UnixMilli(),
		LastIP:    ip,
	})
}

// Delete removes the user, their sessions, group links and grants.
func (u *UserImpl) Delete(id int64) error {
	if err := u.Kick(id); err != nil {
		return err
	}
	return u.tx.Transaction(func(tx *gorm.DB) error {
		if _, err := qn.NewORM[qn.UserGroupLink](tx).
			Where("uid = ?", id).Delete(); err != nil {
			return err
		}
		if _, err := Permission.WithTx(tx).DeleteUser(id); err != nil {
			return err
		}
		_, err := qn.NewORM[qn.User](tx).Delete(id)
		return err
	})
}
