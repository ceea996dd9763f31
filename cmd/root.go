package cmd

import (
	"context"
	"time"

	"github.com/quillcms/quill/config"
	"github.com/quillcms/quill/db"
	"github.com/quillcms/quill/handler"
	"github.com/quillcms/quill/qn"
	"github.com/quillcms/quill/utils/log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "Blog platform administrative core",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := config.Load(conf, verbose); err != nil {
			log.NewEntry(err).Fatal("Failed to load config")
		}
	},
}

var conf string
var verbose bool

func init() {
	rootCmd.PersistentFlags().StringVarP(&conf, "conf", "c", "conf.yml", "config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show verbose")
}

// load connects the database and wires the handlers, for subcommands that
// work offline without redis.
func load(cmd *cobra.Command, args []string) {
	var err error
	qn.Quill.DB, err = db.NewDB(viper.GetString("database.path"),
		viper.GetString("database.type"), verbose)
	if err != nil {
		log.NewEntry(err).Fatal("Failed to connect database")
	}
	handler.Init()
	if err := handler.InitData(); err != nil {
		log.NewEntry(err).Fatal("Failed to init data")
	}
}

func connectRedis() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	var err error
	qn.Quill.Redis, err = db.NewRedis(ctx, &db.RedisConfig{
		Address:  viper.GetString("redis.address"),
		Password: viper.GetString("redis.password"),
		DB:       viper.GetInt("redis.db"),
	})
	if err != nil {
		log.NewEntry(err).Fatal("Failed to connect redis")
	}
}

func connectSession() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	var err error
	qn.Quill.Session, err = db.NewSession(ctx, &db.SessionConfig{
		RedisClient: qn.Quill.Redis,
		Prefix:      viper.GetString("session.prefix"),
	})
	if err != nil {
		log.NewEntry(err).Fatal("Failed to create session store")
	}
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}
