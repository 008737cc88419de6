package diffmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Option configures Parse.
type Option func(*parseOptions)

type parseOptions struct {
	strict bool
	logger *slog.Logger
}

// WithStrict rejects headers whose two paths differ unless the file carries a
// rename marker.
func WithStrict(strict bool) Option {
	return func(o *parseOptions) { o.strict = strict }
}

// WithLogger sets the logger used to report ignored preamble lines.
func WithLogger(logger *slog.Logger) Option {
	return func(o *parseOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Parse builds a Document from unified diff text. Lines are processed strictly
// in order; the first malformed or misplaced line aborts the parse.
func Parse(raw string, opts ...Option) (Document, error) {
	o := parseOptions{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}

	b := &builder{opts: o}
	for i, text := range splitLines(raw) {
		lineNo := i + 1
		line, err := Classify(text)
		if err != nil {
			var malformed *MalformedMarkerError
			if errors.As(err, &malformed) {
				malformed.LineNo = lineNo
			}
			return Document{}, err
		}
		if err := b.step(lineNo, line); err != nil {
			return Document{}, err
		}
	}
	if err := b.commitFile(); err != nil {
		return Document{}, err
	}
	return Document{files: b.files}, nil
}

// builder is the fold state: committed files plus the file and block still
// being filled. block is only non-nil while file is non-nil.
type builder struct {
	opts parseOptions

	files []File

	file       *File
	fileLineNo int
	fileHeader string

	block *Block
	body  []string
}

func (b *builder) step(lineNo int, line Line) error {
	switch line.Kind {
	case KindEmpty, KindFilePathMarker, KindSimilarityMarker:
		return nil

	case KindRenameMarker:
		if b.file != nil {
			b.file.IsRenamed = true
		}
		return nil

	case KindNewFileIndicator, KindNewFileMode:
		f, err := b.requireFile(lineNo, line)
		if err != nil {
			return err
		}
		f.IsNew = true
		return nil

	case KindDeletedFileIndicator, KindDeletedFileMode:
		f, err := b.requireFile(lineNo, line)
		if err != nil {
			return err
		}
		f.IsDeleted = true
		return nil

	case KindBinaryMarker:
		f, err := b.requireFile(lineNo, line)
		if err != nil {
			return err
		}
		f.IsBinary = true
		return nil

	case KindHeader:
		if err := b.commitFile(); err != nil {
			return err
		}
		path := line.PathA
		if line.PathA != line.PathB {
			path = line.PathA + " and " + line.PathB
		}
		b.file = &File{Path: path, PathA: line.PathA, PathB: line.PathB}
		b.fileLineNo = lineNo
		b.fileHeader = line.Text
		return nil

	case KindHashMarker:
		f, err := b.requireFile(lineNo, line)
		if err != nil {
			return err
		}
		f.PreviousHash = line.PreviousHash
		f.CurrentHash = line.CurrentHash
		return nil

	case KindHunkMarker:
		if _, err := b.requireFile(lineNo, line); err != nil {
			return err
		}
		b.commitBlock()
		b.block = &Block{
			PreviousRange: line.PreviousRange,
			CurrentRange:  line.CurrentRange,
			Context:       line.Context,
		}
		return nil

	case KindSentence:
		return b.appendBody(lineNo, line.Text)
	}
	return fmt.Errorf("line %d: unhandled line kind %v", lineNo, line.Kind)
}

func (b *builder) appendBody(lineNo int, text string) error {
	if b.block != nil {
		b.body = append(b.body, text)
		return nil
	}
	if isHunkBody(text) {
		reason := "hunk line before any @@ marker"
		if b.file == nil {
			reason = "hunk line before any diff header"
		}
		return &StructuralError{LineNo: lineNo, Line: text, Reason: reason}
	}
	// Unindented preamble such as "old mode 100644" or a mail subject line.
	// Indented commit message bodies look like hunk lines and fail above.
	b.opts.logger.Debug("ignoring preamble line", "line", lineNo, "text", text)
	return nil
}

func (b *builder) requireFile(lineNo int, line Line) (*File, error) {
	if b.file == nil {
		return nil, &StructuralError{
			LineNo: lineNo,
			Line:   line.Text,
			Reason: line.Kind.String() + " before any diff header",
		}
	}
	return b.file, nil
}

func (b *builder) commitBlock() {
	if b.block == nil {
		return
	}
	b.block.Body = strings.Join(b.body, "\n")
	b.file.Blocks = append(b.file.Blocks, *b.block)
	b.block = nil
	b.body = nil
}

func (b *builder) commitFile() error {
	if b.file == nil {
		return nil
	}
	b.commitBlock()
	f := b.file
	if b.opts.strict && f.PathA != f.PathB && !f.IsRenamed {
		return &HeaderMismatchError{LineNo: b.fileLineNo, Line: b.fileHeader, PathA: f.PathA, PathB: f.PathB}
	}
	b.files = append(b.files, *f)
	b.file = nil
	return nil
}

func isHunkBody(text string) bool {
	switch text[0] {
	case '+', '-', ' ', '\\':
		return true
	}
	return false
}

func splitLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	lines := strings.Split(raw, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
