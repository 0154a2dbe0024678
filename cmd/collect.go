package cmd

import (
	"collectcode/pkg/collect"
	"collectcode/pkg/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runCollect maps positionals and flags onto collect.Options.
func runCollect(cmd *cobra.Command, args []string, logger *zap.Logger) error {
	opts := collect.Options{
		Directory: config.DefaultDirectory,
		Output:    config.DefaultOutputFile,
		Stdout:    cmd.OutOrStdout(),
	}
	if len(args) > 0 && args[0] != "" {
		opts.Directory = args[0]
	}
	if len(args) > 1 && args[1] != "" {
		opts.Output = args[1]
	}
	if len(args) > 2 {
		logger.Debug("Ignoring extra arguments", zap.Strings("args", args[2:]))
	}

	flags := cmd.Flags()
	opts.Config = config.Resolve(flags, logger)
	opts.Tree, _ = flags.GetBool(flagTree)
	opts.GitIgnore, _ = flags.GetBool(flagGitIgnore)
	opts.Clipboard, _ = flags.GetBool(flagClipboard)

	logger.Debug("Starting collection",
		zap.String("directory", opts.Directory),
		zap.String("output", opts.Output),
		zap.Bool("tree", opts.Tree),
		zap.Bool("gitignore", opts.GitIgnore))

	return collect.Run(opts, logger)
}
