package cmd

import (
	"fmt"

	"github.com/quillcms/quill/qn"
	"github.com/quillcms/quill/utils/log"

	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage quill permission token",
}

var (
	tokenDesc   string
	tokenAddCmd = &cobra.Command{
		Use:    "add $name",
		Short:  "Register permission token",
		Args:   cobra.ExactArgs(1),
		PreRun: load,
		Run: func(cmd *cobra.Command, args []string) {
			token, err := qn.Quill.Token.New(args[0], tokenDesc)
			if err != nil {
				log.NewEntry(err).Fatal("Failed to create token")
			}
			log.New().Infof("Token %v created", token.Name)
		},
	}
)

var tokenRmCmd = &cobra.Command{
	Use:    "rm $name",
	Short:  "Destroy permission token and every grant on it",
	Args:   cobra.ExactArgs(1),
	PreRun: load,
	Run: func(cmd *cobra.Command, args []string) {
		if err := qn.Quill.Token.Destroy(qn.ByName(args[0])); err != nil {
			log.NewEntry(err).Fatal("Failed to destroy token")
		}
		log.New().Info("Destroy token success")
	},
}

var tokenListCmd = &cobra.Command{
	Use:    "list",
	Short:  "List permission tokens",
	PreRun: load,
	Run: func(cmd *cobra.Command, args []string) {
		tokens, err := qn.Quill.Token.GetAll(&qn.Condition{
			Order: []any{"name ASC"},
		})
		if err != nil {
			log.NewEntry(err).Fatal("Failed to list tokens")
		}
		for _, v := range tokens {
			fmt.Printf("%v\t%v\t%v\n", v.ID, v.Name, v.Description)
		}
	},
}

func init() {
	tokenAddCmd.Flags().StringVarP(&tokenDesc, "description", "d", "", "token description")

	tokenCmd.AddCommand(tokenAddCmd)
	tokenCmd.AddCommand(tokenRmCmd)
	tokenCmd.AddCommand(tokenListCmd)
	rootCmd.AddCommand(tokenCmd)
}
