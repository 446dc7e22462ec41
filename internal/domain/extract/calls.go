package extract

import "strings"

// listForms selects which literal-collection notations a language's scanner
// recognizes, both as variable initializers and as call arguments.
type listForms struct {
	bracket      bool // [ "a", "b" ]           (JavaScript, Python)
	arraysAsList bool // Arrays.asList("a","b") (Java)
	newBrace     bool // new String[]{...}, new List<string>{...} (Java, C#)
}

// binding is the resolved value of a simple same-file assignment: either a
// single string literal or an ordered list of string literals.
type binding struct {
	value string
	list  []string
}

// scanCalls walks the token stream in a single pass, tracking simple
// variable bindings at the point of use and collecting candidate strings
// from evaluation-method calls. Bindings live only for this file and this
// pass; the most recent assignment before a use wins, and an identifier
// with no binding yields nothing: unresolved names are dropped, never
// guessed.
func scanCalls(toks []token, forms listForms) []string {
	vars := make(map[string]binding)
	var out []string
	seen := make(map[string]struct{})
	add := func(v string) {
		// Brace characters mark interpolation or construction syntax,
		// never a flag identifier.
		if v == "" || strings.ContainsAny(v, "{}") {
			return
		}
		if _, dup := seen[v]; !dup {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}

	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if t.kind != tokIdent {
			continue
		}

		// Assignment: name = <string literal> or name = <literal list>.
		if i+2 < len(toks) && toks[i+1].kind == tokPunct && toks[i+1].text == "=" {
			if b, next, ok := scanInitializer(toks, i+2, forms); ok {
				vars[t.text] = b
				i = next - 1
				continue
			}
		}

		// Evaluation call: every string argument is a candidate,
		// regardless of position.
		if isEvaluationMethod(t.text) && i+1 < len(toks) && toks[i+1].kind == tokPunct && toks[i+1].text == "(" {
			end := collectCallSpan(toks, i+1, vars, add)
			i = end
		}
	}

	return out
}

// scanInitializer reads the right-hand side of an assignment. It returns
// the binding, the index just past the initializer, and whether a
// supported literal form was found.
func scanInitializer(toks []token, i int, forms listForms) (binding, int, bool) {
	t := toks[i]

	if t.kind == tokString {
		return binding{value: t.text}, i + 1, true
	}

	if forms.bracket && t.kind == tokPunct && t.text == "[" {
		if list, next, ok := collectDelimited(toks, i+1, "[", "]"); ok && len(list) > 0 {
			return binding{list: list}, next, true
		}
		return binding{}, 0, false
	}

	if forms.arraysAsList && t.kind == tokIdent && t.text == "Arrays" {
		if list, next, ok := scanArraysAsList(toks, i); ok {
			return binding{list: list}, next, true
		}
		return binding{}, 0, false
	}

	if forms.newBrace && t.kind == tokIdent && t.text == "new" {
		if list, next, ok := scanNewBraceList(toks, i); ok {
			return binding{list: list}, next, true
		}
		return binding{}, 0, false
	}

	return binding{}, 0, false
}

// collectCallSpan scans a balanced-paren call argument span starting at the
// opening paren, feeding every string literal and every resolvable bound
// identifier to add. Returns the index of the closing paren (or the last
// token when unbalanced).
func collectCallSpan(toks []token, open int, vars map[string]binding, add func(string)) int {
	depth := 0
	i := open
	for ; i < len(toks); i++ {
		t := toks[i]
		switch {
		case t.kind == tokPunct && t.text == "(":
			depth++
		case t.kind == tokPunct && t.text == ")":
			depth--
			if depth == 0 {
				return i
			}
		case t.kind == tokString:
			add(t.text)
		case t.kind == tokIdent:
			// Skip member-access and nested-call names; resolve the rest.
			if i > 0 && toks[i-1].kind == tokPunct && toks[i-1].text == "." {
				continue
			}
			if i+1 < len(toks) && toks[i+1].kind == tokPunct && toks[i+1].text == "(" {
				continue
			}
			if b, ok := vars[t.text]; ok {
				if b.value != "" {
					add(b.value)
				}
				for _, v := range b.list {
					add(v)
				}
			}
		}
	}
	return i - 1
}

// collectDelimited gathers string literals between open and close tokens,
// honoring nesting of the same delimiter pair.
func collectDelimited(toks []token, i int, open, close string) ([]string, int, bool) {
	var list []string
	depth := 1
	for ; i < len(toks); i++ {
		t := toks[i]
		switch {
		case t.kind == tokPunct && t.text == open:
			depth++
		case t.kind == tokPunct && t.text == close:
			depth--
			if depth == 0 {
				return list, i + 1, true
			}
		case t.kind == tokString:
			list = append(list, t.text)
		}
	}
	return nil, 0, false
}

// scanArraysAsList matches Arrays.asList("a", "b", ...) starting at the
// Arrays identifier.
func scanArraysAsList(toks []token, i int) ([]string, int, bool) {
	if i+3 >= len(toks) ||
		toks[i+1].text != "." || toks[i+2].kind != tokIdent || toks[i+2].text != "asList" ||
		toks[i+3].kind != tokPunct || toks[i+3].text != "(" {
		return nil, 0, false
	}
	return collectDelimited(toks, i+4, "(", ")")
}

// scanNewBraceList matches new String[]{...} and new List<string>{...}
// starting at the new keyword: it skips the type expression and collects
// the brace-initializer elements.
func scanNewBraceList(toks []token, i int) ([]string, int, bool) {
	j := i + 1
	// Skip type tokens up to the opening brace; bail out if none appears
	// within a plausible type expression.
	for limit := j + 8; j < len(toks) && j < limit; j++ {
		if toks[j].kind == tokPunct && toks[j].text == "{" {
			return collectDelimited(toks, j+1, "{", "}")
		}
		if toks[j].kind == tokPunct && (toks[j].text == ";" || toks[j].text == ")") {
			break
		}
	}
	return nil, 0, false
}
