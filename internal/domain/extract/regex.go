package extract

import "regexp"

// Regex is the universal fallback extractor: plain text pattern matching
// against the evaluation-method shapes of every supported language, with no
// syntax awareness and no variable resolution. It serves unsupported extensions and files the syntax
// extractors cannot handle, and it never fails.
type Regex struct{}

// Call-site patterns: the argument span of an evaluation call containing at
// least one string literal, across snake_case, camelCase, and PascalCase
// conventions. Every literal in the captured span becomes a candidate.
var callPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)(?:^|[^a-zA-Z])(?:get_?)?[Tt]reatments?(?:_?[Ww]ith_?[Cc]onfig(?:_?[Aa]sync)?)?\s*\(([^)]*?["'][^"']+["'][^)]*?)\)`),
	regexp.MustCompile(`(?s)(?:^|[^a-zA-Z])GetTreatments?(?:WithConfig(?:Async)?)?\s*\(([^)]*?["'][^"']+["'][^)]*?)\)`),
}

// Collection patterns around flag lists in each language's notation. The
// bracket pattern is deliberately loose: any literal the registry does not
// know is discarded downstream.
var listPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)\[([^\]]*?["'][^"']+["'][^\]]*?)\]`),
	regexp.MustCompile(`(?s)Arrays\.asList\s*\(([^)]*?["'][^"']+["'][^)]*?)\)`),
	regexp.MustCompile(`(?s)new\s+String\[\]\s*\{([^}]*?["'][^"']+["'][^}]*?)\}`),
	regexp.MustCompile(`(?s)GetTreatments?(?:WithConfig)?(?:Async)?\s*\([^)]*new\s+List<string>\s*\{([^}]*?["'][^"']+["'][^}]*?)\}`),
	regexp.MustCompile(`(?s)List<string>\s+\w+\s*=\s*new\s+List<string>\s*\{([^}]*?["'][^"']+["'][^}]*?)\}`),
	regexp.MustCompile(`(?s)var\s+\w+\s*=\s*new\s+List<string>\s*\{([^}]*?["'][^"']+["'][^}]*?)\}`),
}

var stringLiteral = regexp.MustCompile(`["']([^"']+)["']`)

func (Regex) Extract(content string) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})
	add := func(v string) {
		if v == "" {
			return
		}
		if _, dup := seen[v]; !dup {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}

	for _, p := range callPatterns {
		for _, m := range p.FindAllStringSubmatch(content, -1) {
			for _, lit := range stringLiteral.FindAllStringSubmatch(m[1], -1) {
				add(lit[1])
			}
		}
	}

	for _, p := range listPatterns {
		for _, m := range p.FindAllStringSubmatch(content, -1) {
			for _, lit := range stringLiteral.FindAllStringSubmatch(m[1], -1) {
				add(lit[1])
			}
		}
	}

	return out, nil
}
