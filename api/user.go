package api

import (
	"errors"

	"github.com/quillcms/quill/qn"
	"github.com/quillcms/quill/utils/log"

	"github.com/gin-gonic/gin"
)

type idURI struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

func userWrapper(req *Request) (*qn.User, *Response, error) {
	var uriParam idURI
	if err := req.ShouldBindUri(&uriParam); err != nil {
		return nil, ResponseParamInvalid, nil
	}
	user, err := qn.Quill.User.Get(qn.ByID(uriParam.ID))
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, &Response{Code: CodeUserNotExist}, nil
	}
	return user, nil, nil
}

func APIGetUsers(req *Request) (*Response, error) {
	type Param struct {
		Text string `form:"text"`
		PaginationParam
	}
	var param Param
	if err := req.ShouldBindQuery(&param); err != nil {
		return ResponseParamInvalid, nil
	}

	cond := new(qn.Condition)
	cond.AndLike("username LIKE ?", param.Text)
	count, err := qn.Quill.User.Count(cond)
	if err != nil {
		return nil, err
	}
	cond.MergeAnd(param.PaginationParam.ToCondition())
	cond.Order = []any{"id ASC"}
	users, err := qn.Quill.User.GetAll(cond)
	if err != nil {
		return nil, err
	}
	for _, v := range users {
		v.Password = ""
	}
	return &Response{Data: users, Total: count}, nil
}

func APIAddUser(req *Request) (*Response, error) {
	type Param struct {
		Username string `form:"username" binding:"required,max=32"`
		Password string `form:"password"`
	}
	var param Param
	if err := req.ShouldBind(&param); err != nil {
		return ResponseParamInvalid, nil
	}

	user, newpass, err := qn.Quill.User.New(param.Username, param.Password)
	if err != nil {
		if errors.Is(err, qn.ErrAlreadyExists) {
			return &Response{Code: CodeUserExist}, nil
		}
		return nil, err
	}
	log.New().WithFields(log.F{
		"uid":      user.ID,
		"username": user.Username,
		"operator": req.Username,
	}).Info("User created")
	return &Response{Data: gin.H{
		"id":       user.ID,
		"password": newpass,
	}}, nil
}

func APIGetUser(req *Request) (*Response, error) {
	user, rsp, err := userWrapper(req)
	if rsp != nil || err != nil {
		return rsp, err
	}
	user.Password = ""
	return &Response{Data: user}, nil
}

func APIPutUser(req *Request) (*Response, error) {
	type Param struct {
		Username string `form:"username" binding:"omitempty,max=32"`
		Password string `form:"password"`
	}
	user, rsp, err := userWrapper(req)
	if rsp != nil || err != nil {
		return rsp, err
	}
	var param Param
	if err := req.ShouldBind(&param); err != nil {
		return ResponseParamInvalid, nil
	}

	var columns []string
	if param.Username != "" && param.Username != user.Username {
		exist, err := qn.Quill.User.Get(qn.ByName(param.Username))
		if err != nil {
			return nil, err
		}
		if exist != nil {
			return &Response{Code: CodeUserExist}, nil
		}
		user.Username = param.Username
		columns = append(columns, "username")
	}
	if param.Password != "" {
		user.Password = param.Password
		columns = append(columns, "password")
	}
	if len(columns) == 0 {
		return ResponseOK, nil
	}
	if err := qn.Quill.User.Update(columns, user); err != nil {
		return nil, err
	}
	log.New().WithFields(log.F{
		"uid":      user.ID,
		"operator": req.Username,
	}).Info("User updated")
	return ResponseOK, nil
}

func APIDeleteUser(req *Request) (*Response, error) {
	user, rsp, err := userWrapper(req)
	if rsp != nil || err != nil {
		return rsp, err
	}
	if err := qn.Quill.User.Delete(user.ID); err != nil {
		return nil, err
	}
	log.New().WithFields(log.F{
		"uid":      user.ID,
		"username": user.Username,
		"operator": req.Username,
	}).Info("User deleted")
	return ResponseOK, nil
}

func APIKickUser(req *Request) (*Response, error) {
	user, rsp, err := userWrapper(req)
	if rsp != nil || err != nil {
		return rsp, err
	}
	if err := qn.Quill.User.Kick(user.ID); err != nil {
		return nil, err
	}
	return ResponseOK, nil
}

func APIGetUserPermission(req *Request) (*Response, error) {
	user, rsp, err := userWrapper(req)
	if rsp != nil || err != nil {
		return rsp, err
	}
	rows, err := qn.Quill.Permission.GetUser(user.ID)
	if err != nil {
		return nil, err
	}
	type Rsp struct {
		TID    int64         `json:"tid"`
		Name   string        `json:"name"`
		Access qn.AccessMask `json:"access"`
	}
	data := []*Rsp{}
	for _, v := range rows {
		name, err := qn.Quill.Token.TokenName(qn.ByID(v.TID))
		if err != nil {
			return nil, err
		}
		data = append(data, &Rsp{
			TID:    v.TID,
			Name:   name,
			Access: v.Access,
		})
	}
	return &Response{Data: data}, nil
}

type permParam struct {
	TID    int64  `form:"tid" json:"tid" binding:"required,min=1"`
	Access string `form:"access" json:"access" binding:"required,oneof=full deny read edit delete create"`
}

// APIPutUserPermission replaces every direct grant of the user with the
// posted list. Group grants are untouched.
func APIPutUserPermission(req *Request) (*Response, error) {
	user, rsp, err := userWrapper(req)
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

	if _, err := qn.Quill.Permission.DeleteUser(user.ID); err != nil {
		return nil, err
	}
	for _, v := range param {
		if err := qn.Quill.Permission.GrantUser(user.ID,
			qn.ByID(v.TID), v.Access); err != nil {
			return nil, err
		}
	}
	log.New().WithFields(log.F{
		"uid":      user.ID,
		"operator": req.Username,
	}).Info("User permission updated")
	return ResponseOK, nil
}
