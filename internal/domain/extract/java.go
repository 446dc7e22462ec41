package extract

// Java extracts flag usage from .java sources, including Arrays.asList and
// new String[]{...} collection arguments.
type Java struct{}

var javaSyntax = syntax{
	lineComments:  []string{"//"},
	blockComments: [][2]string{{"/*", "*/"}},
	quotes: []quote{
		{open: `"""`, close: `"""`, escape: true}, // text blocks
		{open: `"`, close: `"`, escape: true},
		{open: "'", close: "'", escape: true},
	},
}

func (Java) Extract(content string) ([]string, error) {
	toks, err := tokenize(content, javaSyntax)
	if err != nil {
		return nil, err
	}
	return scanCalls(toks, listForms{arraysAsList: true, newBrace: true}), nil
}
