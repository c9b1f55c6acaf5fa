package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/madbrain/mdbook-codetags/internal/preprocess"
)

var supportsCmd = &cobra.Command{
	Use:   "supports <renderer>",
	Short: "Check whether a renderer is supported by this preprocessor",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// mdbook reads the answer from the exit code.
		if !preprocess.SupportsRenderer(args[0]) {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(supportsCmd)
}
