// Package cmd wires the collect-code command line onto the collect pipeline.
package cmd

import (
	"os"

	"collectcode/pkg/config"
	"collectcode/pkg/logging"
	"collectcode/pkg/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	flagTree      = "tree"
	flagGitIgnore = "gitignore"
	flagClipboard = "clipboard"
	flagVerbose   = "verbose"
)

// NewRootCommand builds the collect-code command. Surplus positionals are
// ignored; run it through executeArgs so unknown flags are dropped too.
func NewRootCommand(logger *zap.Logger) *cobra.Command {
	if logger == nil {
		logger = zap.NewNop()
	}

	rootCmd := &cobra.Command{
		Use:   "collect-code [directory] [outputFile]",
		Short: "Collect project source files into a single text file",
		Long: `collect-code walks a project directory, selects source files by extension,
skips excluded directories, excluded files, oversized files and binaries,
and writes every selected file into one text artifact headed by a summary.

Configuration is layered: built-in defaults, then a JSON config file
(--config, or ./` + config.DefaultConfigFile + ` when present), then flags.`,
		Example: `  collect-code
  collect-code ./src bundle.txt --extensions .go,.mod
  collect-code . out.txt --exclude-dirs vendor,testdata --max-size 2.5 --tree`,
		Args:               cobra.ArbitraryArgs,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		SilenceUsage:       true,
		SilenceErrors:      true,
		Version:            version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool(flagVerbose)
			logging.SetDebug(verbose)
			if logging.DebugEnabled() {
				logger.Debug("Debug logging enabled", zap.String("build", version.Get().String()))
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollect(cmd, args, logger)
		},
	}

	flags := rootCmd.Flags()
	config.RegisterFlags(flags)
	flags.Bool(flagTree, false, "Append a tree of the collected files to the summary")
	flags.Bool(flagGitIgnore, false, "Also honor <directory>/.gitignore")
	flags.Bool(flagClipboard, false, "Copy the finished output to the system clipboard")
	flags.BoolP(flagVerbose, "v", false, "Enable debug logging")

	rootCmd.SetVersionTemplate(version.Get().String() + "\n")
	// Registered now rather than at Execute so stripUnknownFlags sees them.
	rootCmd.InitDefaultHelpFlag()
	rootCmd.InitDefaultVersionFlag()
	return rootCmd
}

// Execute runs the root command against the process arguments.
func Execute(logger *zap.Logger) error {
	return executeArgs(NewRootCommand(logger), os.Args[1:])
}

// executeArgs runs rootCmd with args after removing flags it does not define.
func executeArgs(rootCmd *cobra.Command, args []string) error {
	rootCmd.SetArgs(stripUnknownFlags(rootCmd.Flags(), args))
	return rootCmd.Execute()
}
