package handler

import (
	"github.com/quillcms/quill/qn"
	"github.com/quillcms/quill/qn/tpl"

	"gorm.io/gorm"
)

// SettingImpl is a write-through cache over the settings table.
type SettingImpl struct {
	orm   *qn.ORM[qn.Setting]
	cache *tpl.SafeMap[string, string]
}

var Setting = &SettingImpl{
	cache: new(tpl.SafeMap[string, string]),
}

func (s *SettingImpl) WithTx(tx *gorm.DB) qn.SettingHandler {
	if tx == nil {
		tx = qn.Quill.DB
	}
	return &SettingImpl{
		orm:   qn.NewORM[qn.Setting](tx),
		cache: s.cache,
	}
}

func (s *SettingImpl) BuildCache() error {
	rec, err := s.orm.Find()
	if err != nil {
		return err
	}
	for _, v := range rec {
		s.cache.Set(v.Name, v.Value)
	}
	return nil
}

func (s *SettingImpl) GetAll() map[string]string {
	return s.cache.Map()
}

func (s *SettingImpl) Get(name string) (string, bool) {
	return s.cache.Get(name)
}

func (s *SettingImpl) Set(name string, value string) error {
	v, ok := s.cache.Get(name)
	if !ok {
		if err := s.orm.Create(&qn.Setting{
			Name:  name,
			Value: value,
		}); err != nil {
			return err
		}
		s.cache.Set(name, value)
		return nil
	}
	if v != value {
		if err := s.orm.Where("name = ?", name).Update("value", value); err != nil {
			return err
		}
		s.cache.Set(name, value)
	}
	return nil
}

func (s *SettingImpl) Delete(name string) (bool, error) {
	if s.cache.Has(name) {
		row, err := s.orm.Where("name = ?", name).Delete()
		if err != nil {
			return false, err
		}
		s.cache.Delete(name)
		return row == 1, nil
	}
	return false, nil
}

func (s *SettingImpl) DeleteAll() (int64, error) {
	row, err := s.orm.DeleteAll()
	if err != nil {
		return 0, err
	}
	s.cache.Clear()
	return row, nil
}
