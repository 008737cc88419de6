package git

import (
	"context"
	"path/filepath"
	"strings"

	"diff2md/internal/util"
)

// DiffOptions selects which changes Diff reports.
type DiffOptions struct {
	// Cached reports staged changes instead of the work tree against HEAD.
	Cached bool
	// Untracked appends untracked files as new-file diffs.
	Untracked bool
	// Paths limits the diff to these pathspecs.
	Paths []string
}

type DiffService interface {
	Diff(ctx context.Context, cwd string, opts DiffOptions) (string, error)
}

type diffService struct {
	status StatusService
}

func NewDiffService() DiffService {
	return diffService{status: NewStatusService()}
}

// prefixArgs pins a/ and b/ so user settings such as diff.noprefix do not
// change the header shape.
var prefixArgs = []string{"--no-color", "--no-ext-diff", "--src-prefix=a/", "--dst-prefix=b/"}

func (s diffService) Diff(ctx context.Context, cwd string, opts DiffOptions) (string, error) {
	args := append([]string{"diff"}, prefixArgs...)
	if opts.Cached {
		args = append(args, "--cached")
	} else {
		args = append(args, "HEAD")
	}
	args = append(args, "--")
	args = append(args, opts.Paths...)

	out, err := util.Run(ctx, cwd, "git", args...)
	if err != nil {
		return "", err
	}
	if !opts.Untracked {
		return out, nil
	}

	items, err := s.status.ListChangedFiles(ctx, cwd)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString(out)
	for _, item := range items {
		if item.Kind != KindUntracked || !matchesPaths(item.Path, opts.Paths) {
			continue
		}
		d, err := untrackedDiff(ctx, cwd, item.Path)
		if err != nil {
			return "", err
		}
		if sb.Len() > 0 && !strings.HasSuffix(sb.String(), "\n") {
			sb.WriteString("\n")
		}
		sb.WriteString(d)
	}
	return sb.String(), nil
}

// untrackedDiff renders an untracked file as a new file; --no-index exits 1
// when the inputs differ.
func untrackedDiff(ctx context.Context, cwd, path string) (string, error) {
	args := append([]string{"diff", "--no-index"}, prefixArgs...)
	args = append(args, "--", "/dev/null", path)
	return util.Command{Dir: cwd, Name: "git", Args: args, OKExitCodes: []int{1}}.Run(ctx)
}

func matchesPaths(path string, specs []string) bool {
	if len(specs) == 0 {
		return true
	}
	for _, spec := range specs {
		spec = filepath.ToSlash(filepath.Clean(spec))
		if spec == "." || path == spec || strings.HasPrefix(path, strings.TrimSuffix(spec, "/")+"/") {
			return true
		}
		if ok, err := filepath.Match(spec, path); err == nil && ok {
			return true
		}
	}
	return false
}
