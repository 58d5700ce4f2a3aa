package tmdb

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/cases"
)

// QueryRewriter maps what a user typed to what is sent to TMDB.
type QueryRewriter interface {
	Rewrite(query string) string
}

// Identity leaves queries untouched.
type Identity struct{}

func (Identity) Rewrite(query string) string { return query }

//go:embed keywords.toml
var defaultKeywords []byte

type keywordFile struct {
	Keywords map[string]string `toml:"keywords"`
}

// KeywordRewriter replaces whole queries found in a table.  Lookups ignore
// case and surrounding whitespace; anything not in the table passes
// through unchanged.
type KeywordRewriter struct {
	table map[string]string
}

// NewKeywordRewriter builds a rewriter from a keyword -> title table.
func NewKeywordRewriter(table map[string]string) *KeywordRewriter {
	r := &KeywordRewriter{table: make(map[string]string, len(table))}
	for k, v := range table {
		if key := r.normalize(k); key != "" && strings.TrimSpace(v) != "" {
			r.table[key] = strings.TrimSpace(v)
		}
	}
	return r
}

// LoadKeywordRewriter reads the table from the TOML file at path, or the
// built-in table when path is empty.
func LoadKeywordRewriter(path string) (*KeywordRewriter, error) {
	data := defaultKeywords
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("read keywords: %w", err)
		}
	}
	var f keywordFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse keywords: %w", err)
	}
	return NewKeywordRewriter(f.Keywords), nil
}

// normalize folds case.  A Caser is stateful, so each call gets its own.
func (r *KeywordRewriter) normalize(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// Rewrite returns the mapped title for query, or query itself.
func (r *KeywordRewriter) Rewrite(query string) string {
	if title, ok := r.table[r.normalize(query)]; ok {
		return title
	}
	return query
}

// Len is the number of entries in the table.
func (r *KeywordRewriter) Len() int { return len(r.table) }
