package api

import (
	"errors"

	"github.com/quillcms/quill/qn"
	"github.com/quillcms/quill/utils/log"

	"github.com/gin-gonic/gin"
)

func tokenWrapper(req *Request) (*qn.Token, *Response, error) {
	var uriParam idURI
	if err := req.ShouldBindUri(&uriParam); err != nil {
		return nil, ResponseParamInvalid, nil
	}
	token, err := qn.Quill.Token.Get(qn.ByID(uriParam.ID))
	if err != nil {
		return nil, nil, err
	}
	if token == nil {
		return nil, &Response{Code: CodeTokenNotExist}, nil
	}
	return token, nil, nil
}

func APIGetTokens(req *Request) (*Response, error) {
	type Param struct {
		Text string `form:"text"`
		PaginationParam
	}
	var param Param
	if err := req.ShouldBindQuery(&param); err != nil {
		return ResponseParamInvalid, nil
	}

	cond := new(qn.Condition)
	cond.AndLike("name LIKE ? OR description LIKE ?", param.Text)
	count, err := qn.Quill.Token.Count(cond)
	if err != nil {
		return nil, err
	}
	cond.MergeAnd(param.PaginationParam.ToCondition())
	cond.Order = []any{"name ASC"}
	tokens, err := qn.Quill.Token.GetAll(cond)
	if err != nil {
		return nil, err
	}
	return &Response{Data: tokens, Total: count}, nil
}

func APIAddToken(req *Request) (*Response, error) {
	type Param struct {
		Name        string `form:"name" binding:"required,max=64"`
		Description string `form:"description" binding:"max=256"`
	}
	var param Param
	if err := req.ShouldBind(&param); err != nil {
		return ResponseParamInvalid, nil
	}

	token, err := qn.Quill.Token.New(param.Name, param.Description)
	if err != nil {
		if errors.Is(err, qn.ErrAlreadyExists) {
			return &Response{Code: CodeTokenExist}, nil
		}
		if errors.Is(err, qn.ErrVetoed) {
			return &Response{Code: CodeOperationVetoed}, nil
		}
		return nil, err
	}
	log.New().WithFields(log.F{
		"tid":      token.ID,
		"name":     token.Name,
		"operator": req.Username,
	}).Info("Token created")
	return &Response{Data: gin.H{
		"id":   token.ID,
		"name": token.Name,
	}}, nil
}

func APIGetToken(req *Request) (*Response, error) {
	token, rsp, err := tokenWrapper(req)
	if rsp != nil || err != nil {
		return rsp, err
	}
	return &Response{Data: token}, nil
}

func APIDeleteToken(req *Request) (*Response, error) {
	token, rsp, err := tokenWrapper(req)
	if rsp != nil || err != nil {
		return rsp, err
	}
	if err := qn.Quill.Token.Destroy(qn.ByID(token.ID)); err != nil {
		if errors.Is(err, qn.ErrVetoed) {
			return &Response{Code: CodeOperationVetoed}, nil
		}
		return nil, err
	}
	log.New().WithFields(log.F{
		"tid":      token.ID,
		"name":     token.Name,
		"operator": req.Username,
	}).Info("Token destroyed")
	return ResponseOK, nil
}
