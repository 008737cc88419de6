// Package lang picks fence language tags for new-file code blocks.
package lang

import (
	"path"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"

	"diff2md/internal/config"
	"diff2md/internal/diffmd"
)

// FromLexer returns the primary chroma alias for the file's name, falling back
// to the file extension when no lexer claims it.
func FromLexer(f diffmd.File) string {
	name := f.PathB
	if name == "" {
		name = f.Path
	}
	if lexer := lexers.Match(path.Base(name)); lexer != nil {
		cfg := lexer.Config()
		if len(cfg.Aliases) > 0 {
			return cfg.Aliases[0]
		}
		return strings.ToLower(strings.ReplaceAll(cfg.Name, " ", ""))
	}
	return f.Extension()
}

// Func returns the language function for a config mode ("extension" or "lexer").
func Func(mode string) func(diffmd.File) string {
	if mode == config.LanguageLexer {
		return FromLexer
	}
	return diffmd.File.Extension
}
