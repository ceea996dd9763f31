package api

import (
	"sort"
	"time"

	"github.com/quillcms/quill/qn"
)

// APIGetPosts backs the dashboard live search: free text over title and
// content, optional status filter, newest first.
func APIGetPosts(req *Request) (*Response, error) {
	type Param struct {
		Text   string `form:"text"`
		Status int32  `form:"status,default=-1" binding:"min=-1,max=2"`
		PaginationParam
	}
	var param Param
	if err := req.ShouldBindQuery(&param); err != nil {
		return ResponseParamInvalid, nil
	}

	orm := qn.NewORM[qn.Post](nil)
	cond := new(qn.Condition)
	cond.AndLike("title LIKE ? OR content LIKE ?", param.Text)
	if param.Status >= 0 {
		cond.And("status = ?", param.Status)
	}
	count, err := orm.Count(cond)
	if err != nil {
		return nil, err
	}
	cond.MergeAnd(param.PaginationParam.ToCondition())
	cond.Order = []any{"pubdate DESC", "id DESC"}
	posts, err := orm.Cond(cond).Find()
	if err != nil {
		return nil, err
	}
	type Rsp struct {
		*qn.Post
		Content string `json:"content,omitempty"`
	}
	// the list view never needs the body
	data := []*Rsp{}
	for _, v := range posts {
		data = append(data, &Rsp{Post: v})
	}
	return &Response{Data: data, Total: count}, nil
}

// APIGetPostTimeline buckets published posts per month for the archive
// widget, newest month first.
func APIGetPostTimeline(req *Request) (*Response, error) {
	posts, err := qn.NewORM[qn.Post](nil).
		Where("status = ?", qn.PostPublished).Find()
	if err != nil {
		return nil, err
	}
	type Bucket struct {
		Month string `json:"month"` // 2006-01
		Count int64  `json:"count"`
	}
	counts := make(map[string]int64)
	for _, v := range posts {
		month := time.UnixMilli(v.Pubdate).UTC().Format("2006-01")
		counts[month]++
	}
	data := make([]*Bucket, 0, len(counts))
	for month, count := range counts {
		data = append(data, &Bucket{Month: month, Count: count})
	}
	sort.Slice(data, func(i, j int) bool { return data[i].Month > data[j].Month })
	return &Response{Data: data}, nil
}

// APIGetPostTags lists tags with their usage counts, most used first.
func APIGetPostTags(req *Request) (*Response, error) {
	tags, err := qn.NewORM[qn.Tag](nil).Find()
	if err != nil {
		return nil, err
	}
	links, err := qn.NewORM[qn.PostTag](nil).Find()
	if err != nil {
		return nil, err
	}
	counts := make(map[int64]int64, len(tags))
	for _, v := range links {
		counts[v.TagID]++
	}
	type Rsp struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Count int64  `json:"count"`
	}
	data := make([]*Rsp, 0, len(tags))
	for _, v := range tags {
		data = append(data, &Rsp{
			ID:    v.ID,
			Name:  v.Name,
			Count: counts[v.ID],
		})
	}
	sort.Slice(data, func(i, j int) bool {
		if data[i].Count != data[j].Count {
			return data[i].Count > data[j].Count
		}
		return data[i].Name < data[j].Name
	})
	return &Response{Data: data}, nil
}
