package parser

import (
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// normalizeLanguage maps a fence info string to the primary alias of the
// matching lexer, so "golang" and "go" both become "go". Unknown languages
// pass through lowercased.
func normalizeLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return ""
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		return lang
	}
	cfg := lexer.Config()
	if len(cfg.Aliases) > 0 {
		return strings.ToLower(cfg.Aliases[0])
	}
	return strings.ToLower(cfg.Name)
}
