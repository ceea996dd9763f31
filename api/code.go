package api

import (
	"github.com/quillcms/quill/translator"

	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
)

type RspCode int32

const (
	CodeOK RspCode = iota
	CodeParamInvalid
	CodeNeedSignIn
	CodePermissionDenied
	CodeInvalidUserOrPass
	CodeInvalidRecaptcha
	CodeUserExist
	CodeUserNotExist
	CodeGroupExist
	CodeGroupNotExist
	CodeTokenExist
	CodeTokenNotExist
	CodeOperationVetoed

	CodeMax
)

var RspMsg = [CodeMax]string{
	"response.success",
	"response.param.invalid",
	"response.signin.need",
	"response.permission.denied",
	"response.user.invalid",
	"response.recaptcha.invalid",
	"response.user.exist",
	"response.user.notexist",
	"response.group.exist",
	"response.group.notexist",
	"response.token.exist",
	"response.token.notexist",
	"response.operation.vetoed",
}

func (d RspCode) String(t *i18n.Localizer) string {
	return translator.TranslateString(t, RspMsg[d])
}

// Response is the uniform API answer: code plus optional payload. Msg is
// filled from the localized code message when empty.
type Response struct {
	Code  RspCode
	Msg   string
	Data  any
	Total int64
}

var (
	ResponseOK           = &Response{Code: CodeOK}
	ResponseParamInvalid = &Response{Code: CodeParamInvalid}
)

func (r *Response) write(c *gin.Context, t *i18n.Localizer) {
	msg := r.Msg
	if msg == "" {
		msg = r.Code.String(t)
	}
	body := gin.H{"code": r.Code, "msg": msg}
	if r.Data != nil {
		body["data"] = r.Data
	}
	if r.Total != 0 {
		body["total"] = r.Total
	}
	c.JSON(200, body)
}
