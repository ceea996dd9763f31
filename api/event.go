package api

import (
	"github.com/quillcms/quill/qn"
)

func APIGetEvents(req *Request) (*Response, error) {
	type Param struct {
		Category string `form:"category"`
		Level    int32  `form:"level,default=-1" binding:"min=-1,max=4"`
		PaginationParam
	}
	var param Param
	if err := req.ShouldBindQuery(&param); err != nil {
		return ResponseParamInvalid, nil
	}

	cond := new(qn.Condition)
	if param.Category != "" {
		cond.And("category = ?", param.Category)
	}
	if param.Level >= 0 {
		cond.And("level = ?", param.Level)
	}
	count, err := qn.Quill.Event.Count(cond)
	if err != nil {
		return nil, err
	}
	cond.MergeAnd(param.PaginationParam.ToCondition())
	cond.Order = []any{"id DESC"}
	events, err := qn.Quill.Event.GetAll(cond)
	if err != nil {
		return nil, err
	}
	return &Response{Data: events, Total: count}, nil
}
