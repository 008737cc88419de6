package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"diff2md/internal/diffmd"
	"diff2md/internal/util"
)

func initRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	ctx := context.Background()
	run := func(args ...string) {
		t.Helper()
		full := append([]string{"-c", "user.name=test", "-c", "user.email=test@example.com", "-c", "commit.gpgsign=false"}, args...)
		if _, err := util.Run(ctx, dir, "git", full...); err != nil {
			t.Fatalf("git %v: %v", args, err)
		}
	}
	run("init", "-q")
	if err := os.WriteFile(filepath.Join(dir, "app.js"), []byte("one\ntwo\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	run("add", "app.js")
	run("commit", "-q", "-m", "init")
	return dir
}

func TestDiffWorkTreeWithUntracked(t *testing.T) {
	dir := initRepo(t)
	if err := os.WriteFile(filepath.Join(dir, "app.js"), []byte("one\n2\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "new.md"), []byte("hello\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	svc := NewDiffService()
	out, err := svc.Diff(context.Background(), dir, DiffOptions{})
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}
	doc, err := diffmd.Parse(out)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.Len() != 1 {
		t.Fatalf("tracked-only Len() = %d, want 1", doc.Len())
	}

	out, err = svc.Diff(context.Background(), dir, DiffOptions{Untracked: true})
	if err != nil {
		t.Fatalf("Diff(Untracked) error = %v", err)
	}
	doc, err = diffmd.Parse(out)
	if err != nil {
		t.Fatalf("Parse() error = %v\n%s", err, out)
	}
	files := doc.Files()
	if len(files) != 2 {
		t.Fatalf("Len() = %d, want 2\n%s", len(files), out)
	}
	if files[1].Path != "new.md" || !files[1].IsNew {
		t.Fatalf("files[1] = %+v, want new file new.md", files[1])
	}
}

func TestDiffCached(t *testing.T) {
	dir := initRepo(t)
	if err := os.WriteFile(filepath.Join(dir, "app.js"), []byte("zero\none\ntwo\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	svc := NewDiffService()
	out, err := svc.Diff(context.Background(), dir, DiffOptions{Cached: true})
	if err != nil {
		t.Fatalf("Diff(Cached) error = %v", err)
	}
	if out != "" {
		t.Fatalf("Diff(Cached) = %q, want empty before staging", out)
	}

	if _, err := util.Run(context.Background(), dir, "git", "add", "app.js"); err != nil {
		t.Fatalf("git add: %v", err)
	}
	out, err = svc.Diff(context.Background(), dir, DiffOptions{Cached: true})
	if err != nil {
		t.Fatalf("Diff(Cached) error = %v", err)
	}
	doc, err := diffmd.Parse(out)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.BlockCount() != 1 {
		t.Fatalf("BlockCount() = %d, want 1", doc.BlockCount())
	}
}

func TestDiscoverRepoRoot(t *testing.T) {
	dir := initRepo(t)
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("Mkdir() error = %v", err)
	}
	got, err := DiscoverRepoRoot(context.Background(), sub)
	if err != nil {
		t.Fatalf("DiscoverRepoRoot() error = %v", err)
	}
	want, _ := filepath.EvalSymlinks(dir)
	if gotEval, _ := filepath.EvalSymlinks(got); gotEval != want {
		t.Fatalf("DiscoverRepoRoot() = %q, want %q", got, want)
	}
}
