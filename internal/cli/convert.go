package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"diff2md/internal/clipboard"
	"diff2md/internal/config"
	"diff2md/internal/diffmd"
	"diff2md/internal/git"
	"diff2md/internal/input"
	"diff2md/internal/lang"
	"diff2md/internal/logging"
	"diff2md/internal/preview"
)

// Swapped in tests.
var (
	copyText   = clipboard.CopyText
	runPreview = preview.Run
)

func runConvert(cmd *cobra.Command, opts *options, args []string) error {
	cfg, _, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, opts, &cfg); err != nil {
		return err
	}
	if !opts.git && len(args) > 2 {
		return fmt.Errorf("accepts at most 2 arg(s), received %d", len(args))
	}
	if !opts.git && len(args) == 2 && !cmd.Flags().Changed("encoding") {
		cfg.Encoding = args[1]
	}
	if (opts.cached || opts.untracked) && !opts.git {
		return errors.New("--cached and --untracked require --git")
	}

	logger, closeLog := newLogger(cmd, opts.verbose)
	defer func() { _ = closeLog() }()

	raw, err := readDiff(cmd.Context(), cmd, opts, cfg, args)
	if err != nil {
		return err
	}

	doc, err := diffmd.Parse(raw, diffmd.WithStrict(cfg.Strict), diffmd.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("parse diff: %w", err)
	}
	markdown := diffmd.Render(doc, diffmd.RenderOptions{
		Language:     lang.Func(cfg.Language),
		DiffLanguage: cfg.DiffLanguage,
	})
	logger.Debug("rendered diff", "files", doc.Len(), "blocks", doc.BlockCount(), "bytes", len(markdown))

	if err := writeOutput(cmd, opts, markdown); err != nil {
		return err
	}
	if opts.copy {
		if err := copyText(markdown); err != nil {
			return err
		}
		logger.Info("copied markdown to clipboard")
	}
	if opts.preview {
		return runPreview(raw, markdown, cfg.PreviewStyle)
	}
	return nil
}

func applyFlags(cmd *cobra.Command, opts *options, cfg *config.AppConfig) error {
	flags := cmd.Flags()
	if flags.Changed("strict") {
		cfg.Strict = opts.strict
	}
	if flags.Changed("encoding") {
		cfg.Encoding = opts.encoding
	}
	if flags.Changed("language") {
		switch opts.language {
		case config.LanguageExtension, config.LanguageLexer:
			cfg.Language = opts.language
		default:
			return fmt.Errorf("invalid --language %q: want %q or %q", opts.language, config.LanguageExtension, config.LanguageLexer)
		}
	}
	return nil
}

func newLogger(cmd *cobra.Command, verbose bool) (*slog.Logger, func() error) {
	return logging.New(cmd.ErrOrStderr(), verbose)
}

func readDiff(ctx context.Context, cmd *cobra.Command, opts *options, cfg config.AppConfig, args []string) (string, error) {
	if opts.git {
		return readGitDiff(ctx, opts, args)
	}

	src := input.Source{Encoding: cfg.Encoding, MaxPipeBytes: cfg.MaxPipeBytes}
	if len(args) > 0 {
		src.Path = args[0]
	}
	return readerFor(cmd).Read(ctx, src)
}

func readerFor(cmd *cobra.Command) *input.Reader {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && f == os.Stdin {
		return input.NewReader()
	}
	return &input.Reader{Stdin: in}
}

func readGitDiff(ctx context.Context, opts *options, pathspecs []string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	root, err := git.DiscoverRepoRoot(ctx, cwd)
	if err != nil {
		return "", err
	}

	// git status reports paths relative to the root, so pathspecs are too.
	paths := make([]string, 0, len(pathspecs))
	for _, p := range pathspecs {
		if !filepath.IsAbs(p) {
			p = filepath.Join(cwd, p)
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return "", err
		}
		paths = append(paths, filepath.ToSlash(rel))
	}

	return git.NewDiffService().Diff(ctx, root, git.DiffOptions{
		Cached:    opts.cached,
		Untracked: opts.untracked,
		Paths:     paths,
	})
}

func writeOutput(cmd *cobra.Command, opts *options, markdown string) error {
	if markdown != "" {
		markdown += "\n"
	}
	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(markdown), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}
	// The preview owns the terminal.
	if opts.preview {
		return nil
	}
	_, err := fmt.Fprint(cmd.OutOrStdout(), markdown)
	return err
}
