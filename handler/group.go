package handler

import (
	"fmt"

	"github.com/quillcms/quill/qn"

	"gorm.io/gorm"
)

type GroupImpl struct {
	tx    *gorm.DB
	group *qn.ORM[qn.Group]
	link  *qn.ORM[qn.UserGroupLink]
}

var Group = &GroupImpl{}

func (g *GroupImpl) WithTx(tx *gorm.DB) qn.GroupHandler {
	if tx == nil {
		tx = qn.Quill.DB
	}
	return &GroupImpl{
		tx:    tx,
		group: qn.NewORM[qn.Group](tx),
		link:  qn.NewORM[qn.UserGroupLink](tx),
	}
}

// New returns an empty unsaved group entity.
func (g *GroupImpl) New(name string, note string) *qn.UserGroup {
	return qn.NewUserGroup(qn.Group{
		Name: name,
		Note: note,
	})
}

func (g *GroupImpl) GroupID(id qn.Ident) (int64, error) {
	if id.IsID() {
		return id.ID, nil
	}
	row, err := g.group.Where("name = ?", id.Name).Take()
	if err != nil {
		return 0, err
	}
	if row == nil {
		return 0, nil
	}
	return row.ID, nil
}

func (g *GroupImpl) Get(id qn.Ident) (*qn.Group, error) {
	if id.IsID() {
		return g.group.Take(id.ID)
	}
	return g.group.Where("name = ?", id.Name).Take()
}

// Load returns the group entity with members and permissions eagerly
// loaded. Permission labels come from the grant masks via Level, so a
// composite mask loads as its lowest flag.
func (g *GroupImpl) Load(id qn.Ident) (*qn.UserGroup, error) {
	row, err := g.Get(id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	ret := qn.NewUserGroup(*row)

	members, err := g.MemberIDs(row.ID)
	if err != nil {
		return nil, err
	}
	for _, v := range members {
		if err := ret.Add(qn.ByID(v)); err != nil {
			return nil, err
		}
	}
	perms, err := qn.Quill.Permission.GetGroup(row.ID)
	if err != nil {
		return nil, err
	}
	for tid, mask := range perms {
		if level, ok := mask.Level(); ok {
			ret.SetPermission(tid, level)
		} else {
			ret.SetPermission(tid, "deny")
		}
	}
	return ret, nil
}

func (g *GroupImpl) GetAll(cond *qn.Condition) ([]*qn.Group, error) {
	return g.group.Cond(cond).Find()
}

func (g *GroupImpl) Count(cond *qn.Condition) (int64, error) {
	return g.group.Count(cond)
}

func (g *GroupImpl) MemberIDs(gid int64) ([]int64, error) {
	links, err := g.link.Where("gid = ?", gid).Find()
	if err != nil {
		return nil, err
	}
	ret := make([]int64, 0, len(links))
	for _, v := range links {
		ret = append(ret, v.UID)
	}
	return ret, nil
}

func (g *GroupImpl) Members(gid int64, cond *qn.Condition) ([]*qn.UserGroupLink, error) {
	return g.link.Cond(cond).Where("users_groups.gid = ?", gid).Joins("User").Find()
}

func (g *GroupImpl) CountMembers(gid int64, cond *qn.Condition) (int64, error) {
	return g.link.Where("users_groups.gid = ?", gid).Joins("User").Count(cond)
}

func (g *GroupImpl) GroupsOf(uid int64) ([]int64, error) {
	links, err := g.link.Where("uid = ?", uid).Find()
	if err != nil {
		return nil, err
	}
	ret := make([]int64, 0, len(links))
	for _, v := range links {
		ret = append(ret, v.GID)
	}
	return ret, nil
}

// Insert persists a new group entity: the header row plus both junction
// tables rebuilt from the in-memory sets.
func (g *GroupImpl) Insert(ug *qn.UserGroup) error {
	if !qn.Quill.Hook.Filter(qn.HookGroupInsert, ug) {
		return qn.ErrVetoed
	}
	exist, err := g.Get(qn.ByName(ug.Name))
	if err != nil {
		return err
	}
	if exist != nil {
		return qn.ErrAlreadyExists
	}
	err = g.tx.Transaction(func(tx *gorm.DB) error {
		if err := qn.NewORM[qn.Group](tx).Create(&ug.Group); err != nil {
			return err
		}
		return g.setJunctions(tx, ug)
	})
	if err != nil {
		return err
	}
	qn.Quill.Hook.Act(qn.HookGroupInsert, ug)
	return g.logEvent(qn.EventInfo, fmt.Sprintf("Group %v created", ug.Name))
}

// Update persists an existing group entity the same way: the junction
// tables are deleted and reinserted from the in-memory sets.
func (g *GroupImpl) Update(ug *qn.UserGroup) error {
	if ug.ID == 0 {
		return qn.ErrNotFound
	}
	if !qn.Quill.Hook.Filter(qn.HookGroupUpdate, ug) {
		return qn.ErrVetoed
	}
	err := g.tx.Transaction(func(tx *gorm.DB) error {
		if err := qn.NewORM[qn.Group](tx).Save(&ug.Group); err != nil {
			return err
		}
		return g.setJunctions(tx, ug)
	})
	if err != nil {
		return err
	}
	qn.Quill.Hook.Act(qn.HookGroupUpdate, ug)
	return g.logEvent(qn.EventInfo, fmt.Sprintf("Group %v updated", ug.Name))
}

// setJunctions fully replaces membership and grants from the entity's
// in-memory sets.
func (g *GroupImpl) setJunctions(tx *gorm.DB, ug *qn.UserGroup) error {
	link := qn.NewORM[qn.UserGroupLink](tx)
	if _, err := link.Where("gid = ?", ug.ID).Delete(); err != nil {
		return err
	}
	var links []*qn.UserGroupLink
	for _, uid := range ug.MemberIDs() {
		links = append(links, &qn.UserGroupLink{
			UID: uid,
			GID: ug.ID,
		})
	}
	if len(links) != 0 {
		if err := link.Creates(links); err != nil {
			return err
		}
	}

	grant := qn.NewORM[qn.GroupTokenPermission](tx)
	if _, err := grant.Where("gid = ?", ug.ID).Delete(); err != nil {
		return err
	}
	var grants []*qn.GroupTokenPermission
	for tid, access := range ug.Permissions() {
		grants = append(grants, &qn.GroupTokenPermission{
			GID:    ug.ID,
			TID:    tid,
			Access: qn.AccessNone.Apply(access),
		})
	}
	if len(grants) != 0 {
		if err := grant.Creates(grants); err != nil {
			return err
		}
	}
	Permission.groupCache.Delete(ug.ID)
	return nil
}

// Delete cascades both junction tables before removing the group row.
func (g *GroupImpl) Delete(id qn.Ident) error {
	row, err := g.Get(id)
	if err != nil {
		return err
	}
	if row == nil {
		return qn.ErrNotFound
	}
	if !qn.Quill.Hook.Filter(qn.HookGroupDelete, row) {
		return qn.ErrVetoed
	}
	err = g.tx.Transaction(func(tx *gorm.DB) error {
		if _, err := qn.NewORM[qn.UserGroupLink](tx).
			Where("gid = ?", row.ID).Delete(); err != nil {
			return err
		}
		if _, err := Permission.WithTx(tx).DeleteGroup(row.ID); err != nil {
			return err
		}
		_, err := qn.NewORM[qn.Group](tx).Delete(row.ID)
		return err
	})
	if err != nil {
		return err
	}
	qn.Quill.Hook.Act(qn.HookGroupDelete, row)
	return g.logEvent(qn.EventNotice, fmt.Sprintf("Group %v deleted", row.Name))
}

func (g *GroupImpl) logEvent(level qn.EventLevel, msg string) error {
	if qn.Quill.Event == nil {
		return nil
	}
	return qn.Quill.Event.New(level, "group", "admin", msg)
}
