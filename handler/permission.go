package handler

import (
	"sort"

	"github.com/quillcms/quill/qn"
	"github.com/quillcms/quill/qn/tpl"

	"github.com/spf13/viper"
	"gorm.io/gorm"
)

// PermissionImpl is the ACL policy engine: token grants on users and
// groups, deny-wins resolution and the super-user bypass.
type PermissionImpl struct {
	tx    *gorm.DB
	user  *qn.ORM[qn.UserTokenPermission]
	group *qn.ORM[qn.GroupTokenPermission]

	// groupCache caches the grant map per group id. Mutating methods
	// invalidate the touched group; all instances share the cache.
	groupCache *tpl.SafeMap[int64, map[int64]qn.AccessMask]
}

var Permission = &PermissionImpl{
	groupCache: new(tpl.SafeMap[int64, map[int64]qn.AccessMask]),
}

func (p *PermissionImpl) WithTx(tx *gorm.DB) qn.PermissionHandler {
	if tx == nil {
		tx = qn.Quill.DB
	}
	return &PermissionImpl{
		tx:         tx,
		user:       qn.NewORM[qn.UserTokenPermission](tx),
		group:      qn.NewORM[qn.GroupTokenPermission](tx),
		groupCache: p.groupCache,
	}
}

// missingTokenAccess is the mask resolved for a nonexistent token. This is
// a policy knob, not an error: deployments may open or close unknown
// permissions globally.
func missingTokenAccess() qn.AccessMask {
	return qn.AccessMask(viper.GetInt32("acl.missing_token_access"))
}

// ResolveUser combines the user's direct grant with the grants of every
// group the user belongs to, ordered ascending by mask. An explicit zero
// row on any path vetoes every other grant; otherwise the masks are ORed.
func (p *PermissionImpl) ResolveUser(uid int64, token qn.Ident) (qn.AccessMask, error) {
	tid, err := qn.Quill.Token.TokenID(token)
	if err != nil {
		return qn.AccessNone, err
	}
	if tid == 0 {
		return missingTokenAccess(), nil
	}

	var masks []qn.AccessMask
	direct, err := p.user.Where("uid = ? AND tid = ?", uid, tid).Find()
	if err != nil {
		return qn.AccessNone, err
	}
	for _, v := range direct {
		masks = append(masks, v.Access)
	}
	gids, err := qn.Quill.Group.GroupsOf(uid)
	if err != nil {
		return qn.AccessNone, err
	}
	if len(gids) != 0 {
		rows, err := p.group.Where("tid = ? AND gid IN ?", tid, gids).Find()
		if err != nil {
			return qn.AccessNone, err
		}
		for _, v := range rows {
			masks = append(masks, v.Access)
		}
	}

	sort.Slice(masks, func(i, j int) bool { return masks[i] < masks[j] })
	ret := qn.AccessNone
	for _, v := range masks {
		if v == qn.AccessNone {
			// explicit deny on any membership path wins
			return qn.AccessNone, nil
		}
		ret |= v
	}
	return ret, nil
}

func (p *PermissionImpl) UserCan(uid int64, token qn.Ident, access string) (bool, error) {
	mask, err := p.ResolveUser(uid, token)
	if err != nil {
		return false, err
	}
	if mask.Check(access) {
		return true, nil
	}
	// super-user bypass: a fallback, never a veto
	super, err := p.ResolveUser(uid, qn.ByName(qn.TokenSuperUser))
	if err != nil {
		return false, err
	}
	return super.Check("any"), nil
}

// UserCannot does not consult the super-user bypass: a super user with an
// explicit deny satisfies both UserCan and UserCannot. Kept for
// compatibility with the stored semantics.
func (p *PermissionImpl) UserCannot(uid int64, token qn.Ident) (bool, error) {
	mask, err := p.ResolveUser(uid, token)
	if err != nil {
		return false, err
	}
	return mask.Check("deny"), nil
}

// ResolveGroup looks up the single group grant row; groups do not inherit
// from other groups. found distinguishes a missing row from explicit deny.
func (p *PermissionImpl) ResolveGroup(group qn.Ident, token qn.Ident) (qn.AccessMask, bool, error) {
	gid, err := qn.Quill.Group.GroupID(group)
	if err != nil {
		return qn.AccessNone, false, err
	}
	tid, err := qn.Quill.Token.TokenID(token)
	if err != nil {
		return qn.AccessNone, false, err
	}
	if gid == 0 || tid == 0 {
		return qn.AccessNone, false, nil
	}
	row, err := p.group.Where("gid = ? AND tid = ?", gid, tid).Take()
	if err != nil {
		return qn.AccessNone, false, err
	}
	if row == nil {
		return qn.AccessNone, false, nil
	}
	return row.Access, true, nil
}

func (p *PermissionImpl) GroupCan(group qn.Ident, token qn.Ident, access string) (bool, error) {
	mask, found, err := p.ResolveGroup(group, token)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	return mask.Check(access), nil
}

// UserTokens lists tokens the user satisfies access for. Super users see
// every registered token at full access regardless of individual grants;
// the access filter never applies to them, only postsOnly does.
func (p *PermissionImpl) UserTokens(uid int64, access string, postsOnly bool) ([]*qn.PermEntry, error) {
	tokens, err := qn.Quill.Token.GetAll(nil)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(tokens))
	for _, v := range tokens {
		names[v.ID] = v.Name
	}

	super, err := p.ResolveUser(uid, qn.ByName(qn.TokenSuperUser))
	if err != nil {
		return nil, err
	}

	ret := []*qn.PermEntry{}
	if super.Check("any") {
		for _, v := range tokens {
			ret = append(ret, &qn.PermEntry{
				TID:    v.ID,
				Name:   v.Name,
				Access: qn.AccessFull,
			})
		}
	} else {
		type row struct {
			tid  int64
			mask qn.AccessMask
		}
		var rows []row
		direct, err := p.user.Where("uid = ?", uid).Find()
		if err != nil {
			return nil, err
		}
		for _, v := range direct {
			rows = append(rows, row{v.TID, v.Access})
		}
		gids, err := qn.Quill.Group.GroupsOf(uid)
		if err != nil {
			return nil, err
		}
		if len(gids) != 0 {
			grouped, err := p.group.Where("gid IN ?", gids).Find()
			if err != nil {
				return nil, err
			}
			for _, v := range grouped {
				rows = append(rows, row{v.TID, v.Access})
			}
		}
		// ascending mask order, the last write per token wins
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].mask < rows[j].mask })
		merged := make(map[int64]qn.AccessMask)
		for _, v := range rows {
			merged[v.tid] = v.mask
		}

		for tid, mask := range merged {
			if access == "deny" {
				if mask != qn.AccessNone {
					continue
				}
			} else if !mask.Check(access) {
				continue
			}
			ret = append(ret, &qn.PermEntry{
				TID:    tid,
				Name:   names[tid],
				Access: mask,
			})
		}
	}
	if postsOnly {
		ret, err = p.filterPostTokens(ret)
		if err != nil {
			return nil, err
		}
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].TID < ret[j].TID })
	return ret, nil
}

// filterPostTokens keeps entries whose token is attached to at least one
// post.
func (p *PermissionImpl) filterPostTokens(in []*qn.PermEntry) ([]*qn.PermEntry, error) {
	if len(in) == 0 {
		return in, nil
	}
	var tids []int64
	for _, v := range in {
		tids = append(tids, v.TID)
	}
	attached, err := qn.NewORM[qn.PostToken](p.tx).Where("tid IN ?", tids).Find()
	if err != nil {
		return nil, err
	}
	used := make(map[int64]struct{}, len(attached))
	for _, v := range attached {
		used[v.TID] = struct{}{}
	}
	ret := []*qn.PermEntry{}
	for _, v := range in {
		if _, ok := used[v.TID]; ok {
			ret = append(ret, v)
		}
	}
	return ret, nil
}

// GrantUser merges access onto the existing grant mask (defaulting to
// deny when no row exists) and upserts the single (uid, tid) row.
func (p *PermissionImpl) GrantUser(uid int64, token qn.Ident, access string) error {
	tid, err := qn.Quill.Token.TokenID(token)
	if err != nil {
		return err
	}
	if tid == 0 {
		return qn.ErrNotFound
	}
	row, err := p.user.Where("uid = ? AND tid = ?", uid, tid).Take()
	if err != nil {
		return err
	}
	if row == nil {
		return p.user.Create(&qn.UserTokenPermission{
			UID:    uid,
			TID:    tid,
			Access: qn.AccessNone.Apply(access),
		})
	}
	return p.user.ID(row.ID).Update("access", row.Access.Apply(access))
}

func (p *PermissionImpl) GrantGroup(gid int64, token qn.Ident, access string) error {
	tid, err := qn.Quill.Token.TokenID(token)
	if err != nil {
		return err
	}
	if tid == 0 {
		return qn.ErrNotFound
	}
	row, err := p.group.Where("gid = ? AND tid = ?", gid, tid).Take()
	if err != nil {
		return err
	}
	if row == nil {
		err = p.group.Create(&qn.GroupTokenPermission{
			GID:    gid,
			TID:    tid,
			Access: qn.AccessNone.Apply(access),
		})
	} else {
		err = p.group.ID(row.ID).Update("access", row.Access.Apply(access))
	}
	if err != nil {
		return err
	}
	p.groupCache.Delete(gid)
	return nil
}

func (p *PermissionImpl) DenyUser(uid int64, token qn.Ident) error {
	return p.GrantUser(uid, token, "deny")
}

func (p *PermissionImpl) DenyGroup(gid int64, token qn.Ident) error {
	return p.GrantGroup(gid, token, "deny")
}

// RevokeUser deletes the grant row entirely. Absence falls through
// resolution while an explicit zero mask vetoes it.
func (p *PermissionImpl) RevokeUser(uid int64, token qn.Ident) error {
	tid, err := qn.Quill.Token.TokenID(token)
	if err != nil {
		return err
	}
	if tid == 0 {
		return qn.ErrNotFound
	}
	_, err = p.user.Where("uid = ? AND tid = ?", uid, tid).Delete()
	return err
}

func (p *PermissionImpl) RevokeGroup(gid int64, token qn.Ident) error {
	tid, err := qn.Quill.Token.TokenID(token)
	if err != nil {
		return err
	}
	if tid == 0 {
		return qn.ErrNotFound
	}
	if _, err := p.group.Where("gid = ? AND tid = ?", gid, tid).Delete(); err != nil {
		return err
	}
	p.groupCache.Delete(gid)
	return nil
}

func (p *PermissionImpl) GetUser(uid int64) ([]*qn.UserTokenPermission, error) {
	return p.user.Where("uid = ?", uid).Find()
}

// GetGroup returns the token id to mask map of a group, cached until a
// grant mutation on that group invalidates it.
func (p *PermissionImpl) GetGroup(gid int64) (map[int64]qn.AccessMask, error) {
	cached, ok := p.groupCache.Get(gid)
	if !ok {
		rows, err := p.group.Where("gid = ?", gid).Find()
		if err != nil {
			return nil, err
		}
		cached = make(map[int64]qn.AccessMask, len(rows))
		for _, v := range rows {
			cached[v.TID] = v.Access
		}
		p.groupCache.Set(gid, cached)
	}
	ret := make(map[int64]qn.AccessMask, len(cached))
	for k, v := range cached {
		ret[k] = v
	}
	return ret, nil
}

func (p *PermissionImpl) DeleteUser(uid int64) (int64, error) {
	return p.user.Where("uid = ?", uid).Delete()
}

func (p *PermissionImpl) DeleteGroup(gid int64) (int64, error) {
	row, err := p.group.Where("gid = ?", gid).Delete()
	if err != nil {
		return 0, err
	}
	p.groupCache.Delete(gid)
	return row, nil
}

// InvalidateAll drops the whole group grant cache. Token destroy uses it
// since the cascade touches an unknown set of groups.
func (p *PermissionImpl) InvalidateAll() {
	p.groupCache.Clear()
}
