package extract

import (
	"strings"

	"github.com/fatih/camelcase"
)

// Evaluation method names as canonical word sequences. Covers single-flag
// and multi-flag variants, with and without config. An async suffix is
// accepted on any of them.
var methodWordSeqs = [][]string{
	{"treatment"},
	{"treatments"},
	{"get", "treatment"},
	{"get", "treatments"},
	{"get", "treatment", "with", "config"},
	{"get", "treatments", "with", "config"},
}

// isEvaluationMethod reports whether an identifier names a flag-evaluation
// call in any capitalization convention: getTreatment, get_treatment,
// GetTreatmentsWithConfigAsync all normalize to the same word sequence.
func isEvaluationMethod(name string) bool {
	words := splitIdentifierWords(name)
	if len(words) > 1 && words[len(words)-1] == "async" {
		words = words[:len(words)-1]
	}
	for _, seq := range methodWordSeqs {
		if equalWords(words, seq) {
			return true
		}
	}
	return false
}

func splitIdentifierWords(name string) []string {
	var words []string
	for _, part := range strings.Split(name, "_") {
		for _, w := range camelcase.Split(part) {
			if w = strings.ToLower(w); w != "" {
				words = append(words, w)
			}
		}
	}
	return words
}

func equalWords(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
