package diffmd

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

const twoFileDiff = `diff --git a/x.js b/x.js
index 1111111..2222222 100644
--- a/x.js
+++ b/x.js
@@ -1,2 +1,2 @@
-old line
+new line
diff --git a/y.js b/y.js
new file mode 100644
index 0000000..3333333
--- /dev/null
+++ b/y.js
@@ -0,0 +1,1 @@
+hello
`

func TestParseBuildsFilesAndBlocksInOrder(t *testing.T) {
	doc, err := Parse(twoFileDiff)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	files := doc.Files()
	if len(files) != 2 {
		t.Fatalf("len(files) = %d, want 2", len(files))
	}

	x := files[0]
	if x.Path != "x.js" || x.IsNew || x.IsDeleted {
		t.Fatalf("files[0] = %+v", x)
	}
	if x.PreviousHash != "1111111" || x.CurrentHash != "2222222" {
		t.Fatalf("files[0] hashes = (%q,%q)", x.PreviousHash, x.CurrentHash)
	}
	if len(x.Blocks) != 1 {
		t.Fatalf("len(files[0].Blocks) = %d, want 1", len(x.Blocks))
	}
	if got, want := x.Blocks[0].Body, "-old line\n+new line"; got != want {
		t.Fatalf("files[0].Blocks[0].Body = %q, want %q", got, want)
	}

	y := files[1]
	if y.Path != "y.js" || !y.IsNew {
		t.Fatalf("files[1] = %+v", y)
	}
	if y.CurrentHash != "3333333" {
		t.Fatalf("files[1].CurrentHash = %q", y.CurrentHash)
	}
	if got, want := y.Blocks[0].Body, "+hello"; got != want {
		t.Fatalf("files[1].Blocks[0].Body = %q, want %q", got, want)
	}
	if got := y.Extension(); got != "js" {
		t.Fatalf("files[1].Extension() = %q, want js", got)
	}
}

func TestParseSplitsMultipleHunks(t *testing.T) {
	raw := `diff --git a/main.go b/main.go
index 1234567..89abcde 100644
--- a/main.go
+++ b/main.go
@@ -1,3 +1,3 @@ package main
 import "fmt"
-var a = 1
+var a = 2
@@ -20,2 +20,3 @@ func main() {
 	fmt.Println(a)
+	fmt.Println("done")
 }
`
	doc, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	blocks := doc.Files()[0].Blocks
	if len(blocks) != 2 {
		t.Fatalf("len(blocks) = %d, want 2", len(blocks))
	}
	if blocks[0].Context != "package main" || blocks[1].Context != "func main() {" {
		t.Fatalf("contexts = %q, %q", blocks[0].Context, blocks[1].Context)
	}
	if got, want := blocks[1].Body, " \tfmt.Println(a)\n+\tfmt.Println(\"done\")\n }"; got != want {
		t.Fatalf("blocks[1].Body = %q, want %q", got, want)
	}
	if doc.BlockCount() != 2 {
		t.Fatalf("BlockCount() = %d, want 2", doc.BlockCount())
	}
}

func TestParseMarksDeletedFile(t *testing.T) {
	raw := `diff --git a/gone.txt b/gone.txt
deleted file mode 100644
index 4444444..0000000
--- a/gone.txt
+++ /dev/null
@@ -1,1 +0,0 @@
-bye
`
	doc, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	f := doc.Files()[0]
	if !f.IsDeleted || f.IsNew {
		t.Fatalf("file = %+v, want deleted", f)
	}
}

func TestParseRenameKeepsHeaderPath(t *testing.T) {
	raw := `diff --git a/old.go b/new.go
similarity index 100%
rename from old.go
rename to new.go
`
	doc, err := Parse(raw, WithStrict(true))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	f := doc.Files()[0]
	if f.Path != "old.go and new.go" {
		t.Fatalf("Path = %q, want %q", f.Path, "old.go and new.go")
	}
	if !f.IsRenamed {
		t.Fatalf("expected IsRenamed")
	}
	if len(f.Blocks) != 0 {
		t.Fatalf("len(Blocks) = %d, want 0", len(f.Blocks))
	}
	if got := f.Extension(); got != "go" {
		t.Fatalf("Extension() = %q, want go", got)
	}
}

func TestParseStrictRejectsMismatchedHeaderWithoutRename(t *testing.T) {
	raw := "diff --git a/one.txt b/two.txt\nindex 1111111..2222222 100644\n"

	if _, err := Parse(raw); err != nil {
		t.Fatalf("Parse() non-strict error = %v", err)
	}

	_, err := Parse(raw, WithStrict(true))
	var mismatch *HeaderMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Parse() error = %v, want HeaderMismatchError", err)
	}
	if mismatch.LineNo != 1 || mismatch.PathA != "one.txt" || mismatch.PathB != "two.txt" {
		t.Fatalf("mismatch = %+v", mismatch)
	}
}

func TestParseRejectsBodyLineBeforeHunkMarker(t *testing.T) {
	raw := "diff --git a/x.js b/x.js\n+foo\n"

	_, err := Parse(raw)
	var structural *StructuralError
	if !errors.As(err, &structural) {
		t.Fatalf("Parse() error = %v, want StructuralError", err)
	}
	if structural.LineNo != 2 || structural.Line != "+foo" {
		t.Fatalf("structural = %+v", structural)
	}
}

func TestParseRejectsMarkerBeforeHeader(t *testing.T) {
	for _, raw := range []string{
		"index 1111111..2222222 100644\n",
		"new file mode 100644\n",
		"@@ -1,1 +1,1 @@\n",
		"+orphan\n",
	} {
		_, err := Parse(raw)
		var structural *StructuralError
		if !errors.As(err, &structural) {
			t.Fatalf("Parse(%q) error = %v, want StructuralError", raw, err)
		}
		if structural.LineNo != 1 {
			t.Fatalf("Parse(%q) LineNo = %d, want 1", raw, structural.LineNo)
		}
	}
}

func TestParseReportsMalformedMarkerLineNumber(t *testing.T) {
	raw := "diff --git a/x.js b/x.js\nindex nothex..alsobad\n"

	_, err := Parse(raw)
	var malformed *MalformedMarkerError
	if !errors.As(err, &malformed) {
		t.Fatalf("Parse() error = %v, want MalformedMarkerError", err)
	}
	if malformed.LineNo != 2 {
		t.Fatalf("LineNo = %d, want 2", malformed.LineNo)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("Error() = %q, want line number", err.Error())
	}
}

func TestParseIgnoresPreambleText(t *testing.T) {
	raw := `commit 0123456789abcdef
Author: someone
Subject: tweak mode

diff --git a/run.sh b/run.sh
old mode 100644
new mode 100755
`
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	doc, err := Parse(raw, WithLogger(logger))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", doc.Len())
	}
	if !strings.Contains(logs.String(), "ignoring preamble line") {
		t.Fatalf("expected debug log for preamble, got %q", logs.String())
	}
}

func TestParseIndentedPreambleBeforeHeaderIsStructural(t *testing.T) {
	// A leading space looks like hunk context, which needs an open block.
	_, err := Parse("    indented message\ndiff --git a/x b/x\n")
	var structural *StructuralError
	if !errors.As(err, &structural) {
		t.Fatalf("Parse() error = %v, want StructuralError", err)
	}
}

func TestParseMarksBinaryFile(t *testing.T) {
	raw := `diff --git a/logo.png b/logo.png
index 5555555..6666666 100644
Binary files a/logo.png and b/logo.png differ
`
	doc, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if f := doc.Files()[0]; !f.IsBinary || len(f.Blocks) != 0 {
		t.Fatalf("file = %+v, want binary with no blocks", f)
	}
}

func TestParseNormalizesCRLF(t *testing.T) {
	raw := strings.ReplaceAll(twoFileDiff, "\n", "\r\n")
	doc, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := doc.Files()[0].Blocks[0].Body; got != "-old line\n+new line" {
		t.Fatalf("Body = %q", got)
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, raw := range []string{"", "\n", "\n\n\n"} {
		doc, err := Parse(raw)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", raw, err)
		}
		if doc.Len() != 0 {
			t.Fatalf("Parse(%q).Len() = %d, want 0", raw, doc.Len())
		}
	}
}

func TestDocumentFilesReturnsCopy(t *testing.T) {
	doc, err := Parse(twoFileDiff)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	before := Render(doc, RenderOptions{})

	files := doc.Files()
	files[0].Path = "mutated"
	files[0].Blocks[0].Body = "MUTATED"
	files[0].Blocks = append(files[0].Blocks[:0], Block{Body: "extra"})

	got := doc.Files()
	if got[0].Path != "x.js" {
		t.Fatalf("Files()[0].Path = %q, want x.js", got[0].Path)
	}
	if got[0].Blocks[0].Body != "-old line\n+new line" {
		t.Fatalf("Files()[0].Blocks[0].Body = %q, want original hunk", got[0].Blocks[0].Body)
	}
	if after := Render(doc, RenderOptions{}); after != before {
		t.Fatalf("Render() changed after mutating Files():\n%s", after)
	}
}
