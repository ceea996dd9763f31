package cmd

import (
	"github.com/quillcms/quill/qn"
	"github.com/quillcms/quill/utils/log"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage quill user",
}

var (
	adminPerm  bool
	userAddCmd = &cobra.Command{
		Use:    "add $user",
		Short:  "Add quill user",
		Args:   cobra.ExactArgs(1),
		PreRun: load,
		Run: func(cmd *cobra.Command, args []string) {
			var newpass string
			var err error
			if adminPerm {
				err = qn.Quill.DB.Transaction(func(tx *gorm.DB) error {
					user, pass, err := qn.Quill.User.WithTx(tx).New(args[0], "")
					if err != nil {
						return err
					}
					newpass = pass
					admin, err := qn.Quill.Group.WithTx(tx).Load(qn.ByName("admin"))
					if err != nil {
						return err
					}
					if admin == nil {
						return qn.ErrNotFound
					}
					if err := admin.Add(qn.ByID(user.ID)); err != nil {
						return err
					}
					return qn.Quill.Group.WithTx(tx).Update(admin)
				})
			} else {
				_, newpass, err = qn.Quill.User.New(args[0], "")
				log.New().Warn("By default the user has no permission, use --admin to add to admin group")
			}
			if err != nil {
				log.NewEntry(err).Fatal("Failed to create user")
			}
			log.New().Info("New pass: ", newpass)
			log.New().Info("Add user success")
		},
	}
)

var userResetCmd = &cobra.Command{
	Use:    "reset $user",
	Short:  "Reset quill user password",
	Args:   cobra.ExactArgs(1),
	PreRun: load,
	Run: func(cmd *cobra.Command, args []string) {
		connectRedis()
		connectSession()
		user, err := qn.Quill.User.Get(qn.ByName(args[0]))
		if err != nil {
			log.NewEntry(err).Fatal("Failed to get user")
		}
		if user == nil {
			log.New().Fatalf("User %v not found", args[0])
		}
		newpass, err := qn.Quill.User.Reset(user.ID)
		if err != nil {
			log.NewEntry(err).Fatal("Failed to reset password")
		}
		log.New().Info("New pass: ", newpass)
		log.New().Info("Reset user success")
	},
}

func init() {
	userAddCmd.Flags().BoolVar(&adminPerm, "admin", false, "add user to admin group")

	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userResetCmd)
	rootCmd.AddCommand(userCmd)
}
