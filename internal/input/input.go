// Package input reads raw diff text from a file or standard input and decodes
// it to UTF-8.
package input

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

var (
	ErrNoInput  = errors.New("no input: pass a file or pipe a diff on stdin")
	ErrTooLarge = errors.New("input too large")
)

// ReadError wraps a failure to read the source.
type ReadError struct {
	Source string
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Source, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// DecodeError wraps an unknown encoding label or undecodable input.
type DecodeError struct {
	Encoding string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Encoding, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Source describes where the diff text comes from.
type Source struct {
	// Path is the file to read. Empty or "-" reads standard input.
	Path string
	// Encoding is a WHATWG encoding label such as "utf-8" or "shift_jis".
	Encoding string
	// MaxPipeBytes limits standard input. Zero disables the limit.
	MaxPipeBytes int64
}

func (s Source) isStdin() bool {
	return s.Path == "" || s.Path == "-"
}

func (s Source) name() string {
	if s.isStdin() {
		return "stdin"
	}
	return s.Path
}

// Reader reads Sources. The zero value is not usable; use NewReader.
type Reader struct {
	Stdin           io.Reader
	StdinIsTerminal func() bool
}

// NewReader returns a Reader bound to the process's standard input.
func NewReader() *Reader {
	return &Reader{
		Stdin: os.Stdin,
		StdinIsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
}

// Read loads and decodes src. Cancelling ctx abandons a pending read.
func (r *Reader) Read(ctx context.Context, src Source) (string, error) {
	dec, label, err := lookupDecoder(src.Encoding)
	if err != nil {
		return "", err
	}

	raw, err := r.readRaw(ctx, src)
	if err != nil {
		return "", err
	}

	out, _, err := transform.Bytes(dec, raw)
	if err != nil {
		return "", &DecodeError{Encoding: label, Err: err}
	}
	return string(out), nil
}

func (r *Reader) readRaw(ctx context.Context, src Source) ([]byte, error) {
	if !src.isStdin() {
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return nil, &ReadError{Source: src.name(), Err: err}
		}
		return data, nil
	}

	if r.StdinIsTerminal != nil && r.StdinIsTerminal() {
		return nil, ErrNoInput
	}

	var rd io.Reader = r.Stdin
	if src.MaxPipeBytes > 0 {
		rd = io.LimitReader(rd, src.MaxPipeBytes+1)
	}

	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		data, err := io.ReadAll(rd)
		done <- result{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, &ReadError{Source: src.name(), Err: ctx.Err()}
	case res := <-done:
		if res.err != nil {
			return nil, &ReadError{Source: src.name(), Err: res.err}
		}
		if src.MaxPipeBytes > 0 && int64(len(res.data)) > src.MaxPipeBytes {
			return nil, fmt.Errorf("%w: stdin exceeds %d bytes, pass the diff as a file instead", ErrTooLarge, src.MaxPipeBytes)
		}
		return res.data, nil
	}
}

func lookupDecoder(label string) (transform.Transformer, string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		label = "utf-8"
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, label, &DecodeError{Encoding: label, Err: err}
	}
	return enc.NewDecoder(), label, nil
}
