package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hdlcore/vcore/internal/diagctx"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	verbose bool
	noColor bool
	cfgFile string
	cfg     *Config
)

var rootCmd = &cobra.Command{
	Use:   "vcore",
	Short: "Bounds checker and constant folder for a VHDL-family design tree",
	Long: `vcore drives the bounds checker and constant folder over YAML
design-tree fixtures.

It does not lex or parse VHDL source: fixtures describe an
already-decorated design tree the way a real front end's sema pass would
hand it to this core. Use it to explore bounds diagnostics and constant
folding, and as a smoke test in CI.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newContext builds a diagnostic context for a subcommand, honoring
// .vcore.yaml's "trace: true" by enabling fold-trace recording even for
// commands other than "trace".
func newContext(source, file string) *diagctx.Context {
	ctx := diagctx.New(source, file)
	if cfg != nil && cfg.Trace {
		ctx.EnableTrace()
	}
	return ctx
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colorized diagnostic output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to .vcore.yaml (default: ./.vcore.yaml)")
}
