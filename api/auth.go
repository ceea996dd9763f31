package api

import (
	"time"

	"github.com/quillcms/quill/qn"
	"github.com/quillcms/quill/recaptcha"
	"github.com/quillcms/quill/security"
	"github.com/quillcms/quill/utils/log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

func APIPing(req *Request) (*Response, error) {
	return ResponseOK, nil
}

type signInParam struct {
	Username  string `form:"username" binding:"required,max=32"`
	Password  string `form:"password" binding:"required"`
	Remember  bool   `form:"remember"`
	Recaptcha string `form:"g-recaptcha-response"`
}

func APISignIn(req *Request) (*Response, error) {
	var param signInParam
	if err := req.ShouldBind(&param); err != nil {
		return ResponseParamInvalid, nil
	}
	logf := log.New().WithFields(log.F{
		"ip":       req.ClientIP(),
		"username": param.Username,
	})

	if viper.GetBool("recaptcha.enable") {
		if err := recaptcha.ReCAPTCHA.VerifyCAPTCHA(param.Recaptcha,
			req.ClientIP()); err != nil {
			logf.Warn("Invalid reCAPTCHA")
			return &Response{Code: CodeInvalidRecaptcha}, nil
		}
	}

	user, res, err := qn.Quill.User.CheckPass(param.Username, param.Password)
	if err != nil {
		return nil, err
	}
	if res != 0 {
		logf.Warn("Invalid username or password")
		return &Response{Code: CodeInvalidUserOrPass}, nil
	}

	if err := qn.Quill.User.UpdateLogin(user.ID, req.ClientIP()); err != nil {
		return nil, err
	}
	session, err := getCTXSession(req.Context)
	if err != nil {
		return nil, err
	}
	data := qn.SessionData{
		UID:  user.ID,
		Time: time.Now().Unix(),
	}
	data.SaveSession(session)
	if param.Remember {
		session.Options.MaxAge = viper.GetInt("session.remember")
	} else {
		session.Options.MaxAge = viper.GetInt("session.expire")
	}
	if err := saveCTXSession(req.Context); err != nil {
		return nil, err
	}
	logf.Info("Sign in success")
	return ResponseOK, nil
}

func APISignOut(req *Request) (*Response, error) {
	session, err := getCTXSession(req.Context)
	if err != nil {
		return nil, err
	}
	session.Options.MaxAge = -1
	if err := saveCTXSession(req.Context); err != nil {
		return nil, err
	}
	log.New().WithFields(log.F{
		"ip":  req.ClientIP(),
		"uid": req.UID,
	}).Info("Sign out success")
	return ResponseOK, nil
}

func APIGetCSRFToken(req *Request) (*Response, error) {
	token, err := security.NewCSRFToken()
	if err != nil {
		return nil, err
	}
	maxage := viper.GetInt("csrf.expire") * 60
	req.SetCookie(security.CSRF_COOKIE, token, maxage, "/", "",
		viper.GetBool("listen.ssl"), false)
	return &Response{Data: token}, nil
}

// APIGetAccess lists the signed-in user's satisfied tokens with their
// resolved masks.
func APIGetAccess(req *Request) (*Response, error) {
	perm, err := qn.Quill.Permission.UserTokens(req.UID, "any", false)
	if err != nil {
		return nil, err
	}
	return &Response{Data: gin.H{
		"uid":        req.UID,
		"username":   req.Username,
		"permission": perm,
	}}, nil
}
