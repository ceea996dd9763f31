package api

import (
	"github.com/quillcms/quill/qn"
	"github.com/quillcms/quill/translator"
	"github.com/quillcms/quill/utils/log"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/spf13/viper"
)

// Request is the decorated gin context API handlers receive. UID and
// Username are zero for guest routes.
type Request struct {
	*gin.Context
	Translator *i18n.Localizer
	UID        int64
	Username   string
}

type APIFunc func(req *Request) (*Response, error)

type APIMethod int32

const (
	APIGet APIMethod = iota
	APIPost
	APIPut
	APIPatch
	APIDelete
)

// APIItem is one route. An empty Token leaves the route open to guests
// unless SignIn demands a session; otherwise the signed-in user must pass
// UserCan(Token, Access), super users included.
type APIItem struct {
	Path   string
	Method APIMethod
	Token  string
	Access string
	SignIn bool
	Func   APIFunc
}

// PaginationParam is the shared paging query fragment.
type PaginationParam struct {
	Page int `form:"page,default=1" binding:"min=1"`
	Size int `form:"size,default=20" binding:"min=1,max=100"`
}

func (p *PaginationParam) ToCondition() *qn.Condition {
	return &qn.Condition{
		Limit:  p.Size,
		Offset: (p.Page - 1) * p.Size,
	}
}

func getCTXSession(c *gin.Context) (*sessions.Session, error) {
	return qn.Quill.Session.Get(c.Request, viper.GetString("session.cookie"))
}

func saveCTXSession(c *gin.Context) error {
	return sessions.Save(c.Request, c.Writer)
}

func wrap(v *APIItem) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := &Request{
			Context:    c,
			Translator: translator.NewLocalizer(c.GetHeader("Accept-Language"), "en"),
		}

		if v.Token != "" || v.SignIn {
			session, err := getCTXSession(c)
			if err != nil {
				log.NewEntry(err).Error("Failed to get session")
				c.AbortWithStatus(500)
				return
			}
			data, err := qn.LoadSession(session)
			if err != nil {
				c.JSON(403, gin.H{"code": CodeNeedSignIn,
					"msg": CodeNeedSignIn.String(req.Translator)})
				return
			}
			user, err := qn.Quill.User.Get(qn.ByID(data.UID))
			if err != nil {
				log.NewEntry(err).Error("Failed to get session user")
				c.AbortWithStatus(500)
				return
			}
			if user == nil {
				// kicked or deleted since the cookie was issued
				session.Options.MaxAge = -1
				if err := saveCTXSession(c); err != nil {
					log.NewEntry(err).Error("Failed to destroy session")
				}
				c.JSON(403, gin.H{"code": CodeNeedSignIn,
					"msg": CodeNeedSignIn.String(req.Translator)})
				return
			}
			req.UID = user.ID
			req.Username = user.Username

			if v.Token != "" {
				ok, err := qn.Quill.Permission.UserCan(user.ID,
					qn.ByName(v.Token), v.Access)
				if err != nil {
					log.NewEntry(err).Error("Failed to check permission")
					c.AbortWithStatus(500)
					return
				}
				if !ok {
					c.JSON(403, gin.H{"code": CodePermissionDenied,
						"msg": CodePermissionDenied.String(req.Translator)})
					return
				}
			}
		}

		rsp, err := v.Func(req)
		if err != nil {
			log.NewEntry(err).WithFields(log.F{
				"path": v.Path,
				"uid":  req.UID,
			}).Error("API handler error")
			c.AbortWithStatus(500)
			return
		}
		if rsp != nil {
			rsp.write(c, req.Translator)
		}
	}
}

// Init mounts the route table on r.
func Init(r *gin.RouterGroup) {
	for _, v := range initAPI() {
		fun := wrap(v)
		switch v.Method {
		case APIGet:
			r.GET(v.Path, fun)
		case APIPost:
			r.POST(v.Path, fun)
		case APIPut:
			r.PUT(v.Path, fun)
		case APIPatch:
			r.PATCH(v.Path, fun)
		case APIDelete:
			r.DELETE(v.Path, fun)
		}
	}
}
