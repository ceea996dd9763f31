package api

import (
	"errors"

	"github.com/quillcms/quill/qn"
	"github.com/quillcms/quill/utils/log"

	"github.com/gin-gonic/gin"
)

func groupWrapper(req *Request) (*qn.Group, *Response, error) {
	var uriParam idURI
	if err := req.ShouldBindUri(&uriParam); err != nil {
		return nil, ResponseParamInvalid, nil
	}
	group, err := qn.Quill.Group.Get(qn.ByID(uriParam.ID))
	if err != nil {
		return nil, nil, err
	}
	if group == nil {
		return nil, &Response{Code: CodeGroupNotExist}, nil
	}
	return group, nil, nil
}

func APIGetGroups(req *Request) (*Response, error) {
	type Param struct {
		Text string `form:"text"`
		PaginationParam
	}
	var param Param
	if err := req.ShouldBindQuery(&param); err != nil {
		return ResponseParamInvalid, nil
	}

	cond := new(qn.Condition)
	cond.AndLike("name LIKE ? OR note LIKE ?", param.Text)
	count, err := qn.Quill.Group.Count(cond)
	if err != nil {
		return nil, err
	}
	cond.MergeAnd(param.PaginationParam.ToCondition())
	cond.Order = []any{"id ASC"}
	groups, err := qn.Quill.Group.GetAll(cond)
	if err != nil {
		return nil, err
	}
	type Rsp struct {
		*qn.Group
		Members int64 `json:"members"`
	}
	data := []*Rsp{}
	for _, v := range groups {
		members, err := qn.Quill.Group.CountMembers(v.ID, nil)
		if err != nil {
			return nil, err
		}
		data = append(data, &Rsp{Group: v, Members: members})
	}
	return &Response{Data: data, Total: count}, nil
}

func APIAddGroup(req *Request) (*Response, error) {
	type Param struct {
		Name    string  `json:"name" binding:"required,max=32"`
		Note    string  `json:"note" binding:"max=256"`
		Members []int64 `json:"members"`
	}
	var param Param
	if err := req.ShouldBindJSON(&param); err != nil {
		return ResponseParamInvalid, nil
	}

	group := qn.Quill.Group.New(param.Name, param.Note)
	for _, v := range param.Members {
		if err := group.Add(qn.ByID(v)); err != nil {
			return nil, err
		}
	}
	if err := qn.Quill.Group.Insert(group); err != nil {
		if errors.Is(err, qn.ErrAlreadyExists) {
			return &Response{Code: CodeGroupExist}, nil
		}
		if errors.Is(err, qn.ErrVetoed) {
			return &Response{Code: CodeOperationVetoed}, nil
		}
		return nil, err
	}
	log.New().WithFields(log.F{
		"gid":      group.ID,
		"name":     group.Name,
		"operator": req.Username,
	}).Info("Group created")
	return &Response{Data: gin.H{"id": group.ID}}, nil
}

func APIGetGroup(req *Request) (*Response, error) {
	row, rsp, err := groupWrapper(req)
	if rsp != nil || err != nil {
		return rsp, err
	}
	group, err := qn.Quill.Group.Load(qn.ByID(row.ID))
	if err != nil {
		return nil, err
	}
	return &Response{Data: gin.H{
		"id":         group.ID,
		"name":       group.Name,
		"note":       group.Note,
		"created_at": group.CreatedAt,
		"updated_at": group.UpdatedAt,
		"members":    group.MemberIDs(),
		"permission": group.Permissions(),
	}}, nil
}

func APIPutGroup(req *Request) (*Response, error) {
	type Param struct {
		Name string `json:"name" binding:"omitempty,max=32"`
		Note string `json:"note" binding:"max=256"`
	}
	row, rsp, err := groupWrapper(req)
	if rsp != nil || err != nil {
		return rsp, err
	}
	var param Param
	if err := req.ShouldBindJSON(&param); err != nil {
		return ResponseParamInvalid, nil
	}

	group, err := qn.Quill.Group.Load(qn.ByID(row.ID))
	if err != nil {
		return nil, err
	}
	if param.Name != "" && param.Name != group.Name {
		exist, err := qn.Quill.Group.Get(qn.ByName(param.Name))
		if err != nil {
			return nil, err
		}
		if exist != nil {
			return &Response{Code: CodeGroupExist}, nil
		}
		group.Name = param.Name
	}
	group.Note = param.Note
	if err := qn.Quill.Group.Update(group); err != nil {
		if errors.Is(err, qn.ErrVetoed) {
			return &Response{Code: CodeOperationVetoed}, nil
		}
		return nil, err
	}
	log.New().WithFields(log.F{
		"gid":      group.ID,
		"operator": req.Username,
	}).Info("Group updated")
	return ResponseOK, nil
}

func APIDeleteGroup(req *Request) (*Response, error) {
	row, rsp, err := groupWrapper(req)
	if rsp != nil || err != nil {
		return rsp, err
	}
	if err := qn.Quill.Group.Delete(qn.ByID(row.ID)); err != nil {
		if errors.Is(err, qn.ErrVetoed) {
			return &Response{Code: CodeOperationVetoed}, nil
		}
		return nil, err
	}
	log.New().WithFields(log.F{
		"gid":      row.ID,
		"name":     row.Name,
		"operator": req.Username,
	}).Info("Group deleted")
	return ResponseOK, nil
}

func APIGetGroupUsers(req *Request) (*Response, error) {
	row, rsp, err := groupWrapper(req)
	if rsp != nil || err != nil {
		return rsp, err
	}
	links, err := qn.Quill.Group.Members(row.ID, nil)
	if err != nil {
		return nil, err
	}
	type Rsp struct {
		UID       int64  `json:"uid"`
		Username  string `json:"username"`
		LastLogin int64  `json:"last_login"`
	}
	data := []*Rsp{}
	for _, v := range links {
		if v.User == nil {
			continue
		}
		data = append(data, &Rsp{
			UID:       v.UID,
			Username:  v.User.Username,
			LastLogin: v.User.LastLogin,
		})
	}
	return &Response{Data: data}, nil
}

// APIPutGroupUsers replaces the whole membership of the group.
func APIPutGroupUsers(req *Request) (*Response, error) {
	type Param struct {
		Members []int64 `json:"members"`
	}
	row, rsp, err := groupWrapper(req)
	if rsp != nil || err != nil {
		return rsp, err
	}
	var param Param
	if err := req.ShouldBindJSON(&param); err != nil {
		return ResponseParamInvalid, nil
	}

	group, err := qn.Quill.Group.Load(qn.ByID(row.ID))
	if err != nil {
		return nil, err
	}
	for _, v := range group.MemberIDs() {
		if err := group.Remove(qn.ByID(v)); err != nil {
			return nil, err
		}
	}
	for _, v := range param.Members {
		if err := group.Add(qn.ByID(v)); err != nil {
			return nil, err
		}
	}
	if err := qn.Quill.Group.Update(group); err != nil {
		if errors.Is(err, qn.ErrVetoed) {
			return &Response{Code: CodeOperationVetoed}, nil
		}
		return nil, err
	}
	log.New().WithFields(log.F{
		"gid":      group.ID,
		"operator": req.Username,
	}).Info("Group member updated")
	return ResponseOK, nil
}

func APIGetGroupPermission(req *Request) (*Response, error) {
	row, rsp, err := groupWrapper(req)
	if rsp != nil || err != nil {
		return rsp, err
	}
	grants, err := qn.Quill.Permission.GetGroup(row.ID)
	if err != nil {
		return nil, err
	}
	type Rsp struct {
		TID    int64         `json:"tid"`
		Name   string        `json:"name"`
		Access qn.AccessMask `json:"access"`
	}
	data := []*Rsp{}
	for tid, mask := range grants {
		name, err := qn.Quill.Token.TokenName(qn.ByID(tid))
		if err != nil {
			return nil, err
		}
		data = append(data, &Rsp{
			TID:    tid,
			Name:   name,
			Access: mask,
		})
	}
	return &Response{Data: data}, nil
}

// APIPutGroupPermission replaces every grant of the group with the posted
// list.
func APIPutGroupPermission(req *Request) (*Response, error) {
	row, rsp, err := groupWrapper(req)
	if rsp != nil || err != nil {
		return rsp, err
	}
	var param []*permParam
	if err := req.ShouldBindJSON(&param); err != nil {
		return ResponseParamInvalid, nil
	}
	for _, v := range param {
		exist, err := qn.Quill.Token.Exists(qn.ByID(v.TID))
		if err != nil {
			return nil, err
		}
		if !exist {
			return &Response{Code: CodeTokenNotExist}, nil
		}
	}

	if _, err := qn.Quill.Permission.DeleteGroup(row.ID); err != nil {
		return nil, err
	}
	for _, v := range param {
		if err := qn.Quill.Permission.GrantGroup(row.ID,
			qn.ByID(v.TID), v.Access); err != nil {
			return nil, err
		}
	}
	log.New().WithFields(log.F{
		"gid":      row.ID,
		"operator": req.Username,
	}).Info("Group permission updated")
	return ResponseOK, nil
}
