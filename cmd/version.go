package cmd

import (
	"fmt"

	"github.com/quillcms/quill/qn"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show quill version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("quill version %v\n", qn.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
