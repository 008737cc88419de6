package cli

import (
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	output     string
	encoding   string
	strict     bool
	language   string
	git        bool
	cached     bool
	untracked  bool
	copy       bool
	preview    bool
	verbose    bool
}

func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "diff2md [file] [encoding]",
		Short: "Convert a unified diff into Markdown",
		Long: `diff2md reads a unified diff (as printed by "git diff") from a file or
standard input and prints a Markdown report with one section per file.

With --git the diff is taken from the current repository and positional
arguments are treated as pathspecs instead.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts, args)
		},
	}

	flags := root.Flags()
	flags.StringVarP(&opts.output, "output", "o", "", "Write Markdown to this file instead of stdout")
	flags.StringVarP(&opts.encoding, "encoding", "e", "", "Input encoding label (default from config, utf-8)")
	flags.BoolVar(&opts.strict, "strict", false, "Reject headers whose paths differ without a rename")
	flags.StringVar(&opts.language, "language", "", `Fence language for new files: "extension" or "lexer"`)
	flags.BoolVar(&opts.git, "git", false, "Read the diff from git in the current repository")
	flags.BoolVar(&opts.cached, "cached", false, "With --git, use staged changes")
	flags.BoolVar(&opts.untracked, "untracked", false, "With --git, include untracked files as new files")
	flags.BoolVar(&opts.copy, "copy", false, "Copy the Markdown to the clipboard")
	flags.BoolVar(&opts.preview, "preview", false, "Open an interactive preview")

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Override config path")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newConfigCmd(opts))

	return root
}
