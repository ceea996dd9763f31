package cmd

import (
	"net/http"
	"os"

	"github.com/quillcms/quill/api"
	"github.com/quillcms/quill/config"
	"github.com/quillcms/quill/handler"
	"github.com/quillcms/quill/qn"
	"github.com/quillcms/quill/recaptcha"
	"github.com/quillcms/quill/security"
	"github.com/quillcms/quill/translator"
	"github.com/quillcms/quill/utils/log"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ztrue/tracerr"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run quill server",
	Run:   run,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func initLogger() *os.File {
	if viper.GetBool("log.json") {
		log.SetJSONFormat()
	} else {
		log.SetTextFormat()
	}
	if viper.GetBool("log.stack") {
		log.ShowStack()
	}
	var logFile *os.File
	if path := viper.GetString("log.file"); path != "" {
		var err error
		logFile, err = os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0755)
		if err != nil {
			log.NewEntry(tracerr.Wrap(err)).Fatal("Failed to open log file")
		}
		if viper.GetBool("log.console") {
			logrus.AddHook(&log.Hook{
				Writer:    logFile,
				LogLevels: logrus.AllLevels,
			})
		} else {
			log.SetOutput(logFile)
		}
	}
	return logFile
}

func run(cmd *cobra.Command, args []string) {
	logFile := initLogger()
	if logFile != nil {
		defer logFile.Close()
	}
	defer log.New().Info("========== Quill server end ==========")
	log.New().Info("========== Quill server start ==========")
	log.New().Infof("config file: %v", conf)

	translator.New()
	config.CheckSetting()

	connectRedis()
	log.New().WithFields(log.F{
		"addr": viper.GetString("redis.address"),
	}).Info("Redis connected")
	connectSession()
	load(cmd, args)
	log.New().WithFields(log.F{
		"path": viper.GetString("database.path"),
	}).Info("Database connected")

	logrus.AddHook(handler.EventHook{})

	if viper.GetBool("recaptcha.enable") {
		recaptcha.Init()
	}

	r := gin.New()
	qn.Quill.Engine = r
	r.Use(log.GinMiddleware())
	r.Use(gin.Recovery())
	r.Use(security.SecureMiddleware())
	r.Use(security.CSRFMiddleware())
	r.ForwardedByClientIP = viper.GetBool("proxy.enable")
	if r.ForwardedByClientIP {
		r.RemoteIPHeaders = []string{viper.GetString("proxy.header")}
	}

	qn.Quill.Session.Options(sessions.Options{
		Path:     "/",
		MaxAge:   viper.GetInt("session.expire"),
		Secure:   viper.GetBool("listen.ssl"),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	api.Init(r.Group("/api"))

	addr := viper.GetString("listen.address")
	log.New().Infof("Listening on %v", addr)
	var err error
	if viper.GetBool("listen.ssl") {
		err = r.RunTLS(addr, viper.GetString("listen.ssl_cert"),
			viper.GetString("listen.ssl_key"))
	} else {
		err = r.Run(addr)
	}
	if err != nil {
		log.NewEntry(tracerr.Wrap(err)).Fatal("Server stopped")
	}
}
