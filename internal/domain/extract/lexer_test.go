package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize_OperatorRunsCoalesce(t *testing.T) {
	toks, err := tokenize(`a == "x"`, jsSyntax)
	assert.NoError(t, err)
	assert.Equal(t, []token{
		{tokIdent, "a"},
		{tokPunct, "=="},
		{tokString, "x"},
	}, toks)
}

func TestTokenize_SkipsComments(t *testing.T) {
	src := "// line one\n/* block\nspanning */ name"
	toks, err := tokenize(src, jsSyntax)
	assert.NoError(t, err)
	assert.Equal(t, []token{{tokIdent, "name"}}, toks)
}

func TestTokenize_TrailingLineComment(t *testing.T) {
	toks, err := tokenize("x // no newline after this", jsSyntax)
	assert.NoError(t, err)
	assert.Equal(t, []token{{tokIdent, "x"}}, toks)
}

func TestTokenize_EscapedQuoteInsideString(t *testing.T) {
	toks, err := tokenize(`"a\"b"`, jsSyntax)
	assert.NoError(t, err)
	assert.Equal(t, []token{{tokString, `a\"b`}}, toks)
}

func TestTokenize_UnterminatedString(t *testing.T) {
	_, err := tokenize(`"never closed`, jsSyntax)
	assert.Error(t, err)
}

func TestTokenize_UnterminatedBlockComment(t *testing.T) {
	_, err := tokenize("/* never closed", jsSyntax)
	assert.Error(t, err)
}

func TestTokenize_VerbatimStringNoEscape(t *testing.T) {
	// C# verbatim strings treat backslashes literally.
	toks, err := tokenize(`@"C:\temp"`, csSyntax)
	assert.NoError(t, err)
	assert.Equal(t, []token{{tokString, `C:\temp`}}, toks)
}

func TestTokenize_PythonTripleQuote(t *testing.T) {
	toks, err := tokenize(`"""docstring with "quotes" inside"""`, pySyntax)
	assert.NoError(t, err)
	assert.Len(t, toks, 1)
	assert.Equal(t, tokString, toks[0].kind)
	assert.Equal(t, `docstring with "quotes" inside`, toks[0].text)
}
