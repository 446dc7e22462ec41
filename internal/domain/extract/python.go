package extract

// Python extracts flag usage from .py sources. Triple-quoted strings are
// matched before their single-character forms so docstrings tokenize as one
// literal.
type Python struct{}

var pySyntax = syntax{
	lineComments: []string{"#"},
	quotes: []quote{
		{open: `"""`, close: `"""`, escape: true},
		{open: "'''", close: "'''", escape: true},
		{open: `"`, close: `"`, escape: true},
		{open: "'", close: "'", escape: true},
	},
}

func (Python) Extract(content string) ([]string, error) {
	toks, err := tokenize(content, pySyntax)
	if err != nil {
		return nil, err
	}
	return scanCalls(toks, listForms{bracket: true}), nil
}
