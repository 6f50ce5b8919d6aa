package lex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func scanAll(input string) []*Token {
	s := New(strings.NewReader(input), "")
	var toks []*Token
	for {
		tok := s.NextToken()
		toks = append(toks, tok)
		if tok.Type == TokenEnd {
			return toks
		}
	}
}

func types(toks []*Token) []TokenType {
	out := make([]TokenType, len(toks))
	for i, tok := range toks {
		out[i] = tok.Type
	}
	return out
}

func TestNextTokenInt(t *testing.T) {
	hasDebug = true
	defer func() { hasDebug = false }()

	for _, tc := range []struct {
		name   string
		input  string
		line   int
		column int
		offset int
	}{
		{
			name:  "no surrounding whitespace",
			input: `1234`,
		},
		{
			name:   "with surrounding whitespace",
			line:   2,
			column: 3,
			offset: 5,
			input: `

			1234

			`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := New(strings.NewReader(tc.input), "")
			tok := s.NextToken()
			require.Equal(t, TokenInt, tok.Type)
			require.Equal(t, "1234", tok.Value)
			require.Equal(t, tc.line, tok.Pos.Line)
			require.Equal(t, tc.column, tok.Pos.Column)
			require.Equal(t, tc.offset, tok.Pos.ByteOffset)
			require.Equal(t, TokenEnd, s.NextToken().Type)
		})
	}
}

func TestCommandLine(t *testing.T) {
	toks := scanAll(`add key_1 "a b"` + "\n" + `removeat -1`)
	require.Equal(t, []TokenType{
		TokenIdentifier, TokenIdentifier, TokenString, TokenNewline,
		TokenIdentifier, TokenInt, TokenEnd,
	}, types(toks))
	require.Equal(t, "add", toks[0].Value)
	require.Equal(t, "key_1", toks[1].Value)
	require.Equal(t, "a b", toks[2].Value)
	require.Equal(t, "-1", toks[5].Value)

	require.Equal(t, 0, toks[2].Pos.Line)
	require.Equal(t, 10, toks[2].Pos.Column)
	require.Equal(t, 1, toks[4].Pos.Line)
	require.Equal(t, 0, toks[4].Pos.Column)
}

func TestComments(t *testing.T) {
	toks := scanAll("// header\n\nlen // trailing\r\n\r\n// only comment\ndump\n")
	require.Equal(t, []TokenType{
		TokenNewline, TokenIdentifier, TokenNewline, TokenNewline, TokenIdentifier, TokenEnd,
	}, types(toks))
	require.Equal(t, "len", toks[1].Value)
	require.Equal(t, "dump", toks[4].Value)
}

func TestStringEscapes(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input string
		want  string
	}{
		{name: "newline", input: `"hi\n"`, want: "hi\n"},
		{name: "tab", input: `"a\tb"`, want: "a\tb"},
		{name: "quote", input: `"say \"x\""`, want: `say "x"`},
		{name: "single quotes", input: `'it\'s'`, want: "it's"},
		{name: "unknown escape", input: `"\q"`, want: `\q`},
		{name: "unicode", input: `"Hëllo"`, want: "Hëllo"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			toks := scanAll(tc.input)
			require.Equal(t, TokenString, toks[0].Type)
			require.Equal(t, tc.want, toks[0].Value)
			require.Equal(t, TokenEnd, toks[1].Type)
		})
	}
}

func TestUnterminatedString(t *testing.T) {
	toks := scanAll("add k \"oops\nlen")
	require.Equal(t, TokenError, toks[2].Type)
	require.Equal(t, "missing closing quote", toks[2].Value)
	require.Equal(t, TokenNewline, toks[3].Type)
	require.Equal(t, "len", toks[4].Value)

	toks = scanAll(`"abc`)
	require.Equal(t, TokenError, toks[0].Type)
}

func TestUnknown(t *testing.T) {
	toks := scanAll("get @ / -")
	require.Equal(t, []TokenType{
		TokenIdentifier, TokenUnknown, TokenUnknown, TokenUnknown, TokenEnd,
	}, types(toks))
	require.Equal(t, "@", toks[1].Value)
}

func TestEmpty(t *testing.T) {
	require.Equal(t, []TokenType{TokenEnd}, types(scanAll("")))
	require.Equal(t, []TokenType{TokenEnd}, types(scanAll("  \n\n // nothing\n")))
}
