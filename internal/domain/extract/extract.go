// Package extract finds feature-flag evaluation calls in changed source
// files. Four languages get a dedicated syntax-aware extractor; everything
// else, and any file the syntax pass cannot handle, goes through the regex
// fallback. Extraction is deliberately broad (every string argument of a
// matching call is a candidate) because the registry intersection
// downstream discards anything that is not a real flag identifier.
package extract

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/flaggate/flaggate/internal/domain"
)

// ErrUnreadable marks a file whose content cannot be analyzed at all
// (binary or undecodable). Callers skip the file and record a warning.
var ErrUnreadable = errors.New("unreadable file")

// Extractor scans one file's text and returns candidate flag identifiers.
// A non-nil error, or an empty result from a syntax extractor, signals the
// per-file fallback to the regex extractor.
type Extractor interface {
	Extract(content string) ([]string, error)
}

// extractors is the dispatch table from file extension to syntax extractor.
// Dispatch is a pure function of extension; no state survives between files.
var extractors = map[string]Extractor{
	".js":   JavaScript{},
	".jsx":  JavaScript{},
	".java": Java{},
	".py":   Python{},
	".cs":   CSharp{},
}

// ForExtension returns the syntax extractor registered for an extension.
func ForExtension(ext string) (Extractor, bool) {
	e, ok := extractors[strings.ToLower(ext)]
	return e, ok
}

// File extracts candidates from one changed file, applying the dispatch
// table and the syntax-then-regex fallback policy. The fallback is
// mandatory fail-soft behavior: a file the syntax pass cannot handle is
// never fatal to the run.
func File(f domain.ChangedFile) ([]domain.CandidateUsage, error) {
	if strings.ContainsRune(f.Content, 0) || !utf8.ValidString(f.Content) {
		return nil, fmt.Errorf("%w: %s", ErrUnreadable, f.Path)
	}

	method := domain.MethodSyntax
	var values []string
	if ex, ok := ForExtension(f.Extension); ok {
		if v, err := ex.Extract(f.Content); err == nil && len(v) > 0 {
			values = v
		}
	}
	if values == nil {
		values, _ = Regex{}.Extract(f.Content)
		method = domain.MethodRegex
	}

	usages := make([]domain.CandidateUsage, 0, len(values))
	for _, v := range values {
		usages = append(usages, domain.CandidateUsage{Value: v, File: f.Path, Method: method})
	}
	return usages, nil
}
