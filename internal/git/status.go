package git

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"diff2md/internal/util"
)

type ItemKind int

const (
	KindTracked ItemKind = iota
	KindRenamed
	KindUnmerged
	KindUntracked
)

// FileItem is one changed file from git status.
type FileItem struct {
	Path string
	// OrigPath is the source path of a rename or copy.
	OrigPath string
	Kind     ItemKind
	// XY is the two-letter porcelain status, "??" for untracked files.
	XY string
}

type StatusService interface {
	ListChangedFiles(ctx context.Context, cwd string) ([]FileItem, error)
}

type statusService struct{}

func NewStatusService() StatusService {
	return statusService{}
}

func (statusService) ListChangedFiles(ctx context.Context, cwd string) ([]FileItem, error) {
	out, err := util.Run(ctx, cwd, "git", "status", "--porcelain=v2", "--untracked-files=all", "-z")
	if err != nil {
		return nil, err
	}

	items, err := parsePorcelainV2Z([]byte(out))
	if err != nil {
		return nil, err
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Path < items[j].Path
	})

	return items, nil
}

func parsePorcelainV2Z(data []byte) ([]FileItem, error) {
	records := bytes.Split(data, []byte{0})
	items := make([]FileItem, 0, len(records))

	for i := 0; i < len(records); i++ {
		rec := string(records[i])
		if rec == "" {
			continue
		}

		switch rec[0] {
		case '1':
			// 1 XY sub mH mI mW hH hI path
			fields := strings.SplitN(rec, " ", 9)
			if len(fields) < 9 {
				return nil, fmt.Errorf("unexpected porcelain record: %q", rec)
			}
			items = append(items, FileItem{Path: fields[8], Kind: KindTracked, XY: fields[1]})

		case '2':
			// 2 XY sub mH mI mW hH hI Xscore path, then the original path record
			fields := strings.SplitN(rec, " ", 10)
			if len(fields) < 10 || i+1 >= len(records) {
				return nil, fmt.Errorf("unexpected rename/copy record: %q", rec)
			}
			i++
			items = append(items, FileItem{Path: fields[9], OrigPath: string(records[i]), Kind: KindRenamed, XY: fields[1]})

		case 'u':
			// u XY sub m1 m2 m3 mW h1 h2 h3 path
			fields := strings.SplitN(rec, " ", 11)
			if len(fields) < 11 {
				return nil, fmt.Errorf("unexpected unmerged record: %q", rec)
			}
			items = append(items, FileItem{Path: fields[10], Kind: KindUnmerged, XY: fields[1]})

		case '?':
			items = append(items, FileItem{Path: strings.TrimPrefix(rec, "? "), Kind: KindUntracked, XY: "??"})

		case '!', '#':
			continue

		default:
			return nil, fmt.Errorf("unknown porcelain record: %q", rec)
		}
	}

	return items, nil
}
