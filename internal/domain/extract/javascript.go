package extract

// JavaScript extracts flag usage from .js/.jsx sources. Template literals
// are recognized so interpolated values never leak into candidates; names
// built at runtime are not resolved.
type JavaScript struct{}

var jsSyntax = syntax{
	lineComments:  []string{"//"},
	blockComments: [][2]string{{"/*", "*/"}},
	quotes: []quote{
		{open: "`", close: "`", escape: true},
		{open: `"`, close: `"`, escape: true},
		{open: "'", close: "'", escape: true},
	},
}

func (JavaScript) Extract(content string) ([]string, error) {
	toks, err := tokenize(content, jsSyntax)
	if err != nil {
		return nil, err
	}
	return scanCalls(toks, listForms{bracket: true}), nil
}
