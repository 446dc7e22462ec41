package extract

// CSharp extracts flag usage from .cs sources, including new List<string>
// brace initializers. Verbatim strings (@"...") do not process escapes.
type CSharp struct{}

var csSyntax = syntax{
	lineComments:  []string{"//"},
	blockComments: [][2]string{{"/*", "*/"}},
	quotes: []quote{
		{open: `@"`, close: `"`, escape: false},
		{open: `"`, close: `"`, escape: true},
		{open: "'", close: "'", escape: true},
	},
}

func (CSharp) Extract(content string) ([]string, error) {
	toks, err := tokenize(content, csSyntax)
	if err != nil {
		return nil, err
	}
	return scanCalls(toks, listForms{newBrace: true}), nil
}
