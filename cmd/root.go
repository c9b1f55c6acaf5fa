package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/madbrain/mdbook-codetags/internal/book"
	"github.com/madbrain/mdbook-codetags/internal/config"
	"github.com/madbrain/mdbook-codetags/internal/preprocess"
)

var rootCmd = &cobra.Command{
	Use:   "mdbook-codetags",
	Short: "mdbook preprocessor rendering tagged source regions into chapters",
	Long: `mdbook-codetags replaces ^code references in book chapters with
diff-style excerpts extracted from an annotated source tree, each followed
by a breadcrumb describing where the excerpt belongs in the code.

mdbook invokes it with the [context, book] JSON array on stdin and reads
the processed book back from stdout.`,
	SilenceUsage: true,
	RunE:         runPreprocess,
}

// Execute runs the root command; errors exit non-zero.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	viper.SetEnvPrefix("MDBOOK_CODETAGS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	config.SetDefaults()
}

func runPreprocess(cmd *cobra.Command, args []string) error {
	ctx, b, err := book.ParseInput(os.Stdin)
	if err != nil {
		return err
	}

	warnVersionMismatch(ctx.MdbookVersion)

	cfg := config.FromContext(ctx)
	if err := preprocess.New(cfg).Run(ctx, b); err != nil {
		return err
	}

	return book.WriteOutput(os.Stdout, b)
}

// warnVersionMismatch mirrors mdbook's own compatibility warning: the run
// continues either way.
func warnVersionMismatch(version string) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return
	}
	constraint, err := semver.NewConstraint("^" + book.MdbookVersion)
	if err != nil {
		return
	}
	if !constraint.Check(v) {
		log.Printf("Warning: the %s plugin was built against mdbook %s, but is being called from %s",
			preprocess.Name, book.MdbookVersion, version)
	}
}
