package diffmd

import (
	"strings"
)

const defaultDiffLanguage = "diff"

// RenderOptions controls the fence tags of rendered code blocks.
type RenderOptions struct {
	// Language returns the fence tag for blocks of a new file.
	// Nil means File.Extension.
	Language func(File) string
	// DiffLanguage tags blocks of modified files. Empty means "diff".
	DiffLanguage string
}

// Render serializes doc to Markdown. The result has no leading or trailing
// whitespace.
func Render(doc Document, opts RenderOptions) string {
	if opts.Language == nil {
		opts.Language = File.Extension
	}
	if opts.DiffLanguage == "" {
		opts.DiffLanguage = defaultDiffLanguage
	}

	var sb strings.Builder
	for _, f := range doc.files {
		renderFile(&sb, f, opts)
	}
	return strings.TrimSpace(sb.String())
}

func renderFile(sb *strings.Builder, f File, opts RenderOptions) {
	sb.WriteString("## " + f.Path + "\n\n")

	if f.HasHash() {
		sb.WriteString("### hash\n\n")
		if !f.IsNew {
			sb.WriteString("- `-" + f.PreviousHash + "`\n")
		}
		sb.WriteString("- `+" + f.CurrentHash + "`\n\n")
	}
	if f.IsBinary {
		sb.WriteString("_binary file_\n\n")
	}

	if f.IsNew {
		lang := opts.Language(f)
		for _, b := range f.Blocks {
			writeFence(sb, lang, stripAddPrefix(b.Body))
		}
		return
	}

	for _, b := range f.Blocks {
		sb.WriteString("### row\n\n")
		sb.WriteString("- `-" + b.PreviousRange.String() + "`\n")
		sb.WriteString("- `+" + b.CurrentRange.String() + "`\n\n")
		if b.Context != "" {
			sb.WriteString("### " + b.Context + "\n\n")
		}
		writeFence(sb, opts.DiffLanguage, b.Body)
	}
}

// writeFence emits a fenced code block, lengthening the fence when the body
// itself contains a backtick fence.
func writeFence(sb *strings.Builder, lang, body string) {
	fence := "```"
	for strings.Contains(body, fence) {
		fence += "`"
	}
	sb.WriteString(fence + lang + "\n")
	sb.WriteString(body)
	sb.WriteString("\n" + fence + "\n\n")
}

// stripAddPrefix removes one leading "+" from every line.
func stripAddPrefix(body string) string {
	body = strings.TrimPrefix(body, "+")
	return strings.ReplaceAll(body, "\n+", "\n")
}
