package extract

import (
	"fmt"
	"strings"
)

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokString
	tokPunct
)

// token is one lexical unit. For strings, text holds the unquoted value.
type token struct {
	kind tokenKind
	text string
}

// quote describes one string-literal form of a language. Openers are
// matched in declaration order, so longer openers (triple quotes, verbatim
// prefixes) must come first.
type quote struct {
	open   string
	close  string
	escape bool
}

// syntax captures the lexical surface of a language: just enough to walk
// past comments and recognize string literals reliably.
type syntax struct {
	lineComments  []string
	blockComments [][2]string
	quotes        []quote
}

// tokenize splits source text into identifier, string, and punctuation
// tokens. A lexical form it cannot terminate (an open string or comment)
// is an error; the caller treats that as a signal to fall back, never as a
// fatal condition for the run.
func tokenize(src string, syn syntax) ([]token, error) {
	var toks []token
	i, n := 0, len(src)

scan:
	for i < n {
		c := src[i]

		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			i++
			continue
		}

		for _, lc := range syn.lineComments {
			if strings.HasPrefix(src[i:], lc) {
				nl := strings.IndexByte(src[i:], '\n')
				if nl < 0 {
					break scan
				}
				i += nl + 1
				continue scan
			}
		}

		for _, bc := range syn.blockComments {
			if strings.HasPrefix(src[i:], bc[0]) {
				end := strings.Index(src[i+len(bc[0]):], bc[1])
				if end < 0 {
					return nil, fmt.Errorf("unterminated comment at offset %d", i)
				}
				i += len(bc[0]) + end + len(bc[1])
				continue scan
			}
		}

		for _, q := range syn.quotes {
			if strings.HasPrefix(src[i:], q.open) {
				value, width, err := scanString(src[i+len(q.open):], q)
				if err != nil {
					return nil, fmt.Errorf("at offset %d: %w", i, err)
				}
				toks = append(toks, token{tokString, value})
				i += len(q.open) + width
				continue scan
			}
		}

		if isIdentStart(c) {
			j := i + 1
			for j < n && isIdentPart(src[j]) {
				j++
			}
			toks = append(toks, token{tokIdent, src[i:j]})
			i = j
			continue
		}

		// Operator characters coalesce into one token so that `==` can
		// never be mistaken for an assignment.
		if isOperator(c) {
			j := i + 1
			for j < n && isOperator(src[j]) {
				j++
			}
			toks = append(toks, token{tokPunct, src[i:j]})
			i = j
			continue
		}

		toks = append(toks, token{tokPunct, string(c)})
		i++
	}

	return toks, nil
}

// scanString reads until the closing delimiter and returns the raw value
// and the number of bytes consumed past the opener (including the closer).
func scanString(rest string, q quote) (string, int, error) {
	i := 0
	for i < len(rest) {
		if q.escape && rest[i] == '\\' {
			i += 2
			continue
		}
		if strings.HasPrefix(rest[i:], q.close) {
			return rest[:i], i + len(q.close), nil
		}
		i++
	}
	return "", 0, fmt.Errorf("unterminated string literal")
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isOperator(c byte) bool {
	switch c {
	case '=', '!', '<', '>', '+', '-', '*', '%', '&', '|', '^':
		return true
	}
	return false
}
