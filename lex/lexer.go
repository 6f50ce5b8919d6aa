package lex

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/rgolang/hml/reader"
)

type TokenType int

const (
	TokenEnd TokenType = iota
	TokenNewline
	TokenIdentifier
	TokenInt
	TokenString
	TokenError // Value holds the message
	TokenUnknown
)

func (t TokenType) String() string {
	switch t {
	case TokenEnd:
		return "end of input"
	case TokenNewline:
		return "newline"
	case TokenIdentifier:
		return "identifier"
	case TokenInt:
		return "integer"
	case TokenString:
		return "string"
	case TokenError:
		return "error"
	}
	return "unknown"
}

type Token struct {
	Type  TokenType
	Value string
	Pos   reader.Info // where the token starts
}

func newToken(pos reader.Info, typ TokenType, value string) *Token {
	return &Token{Pos: pos, Type: typ, Value: value}
}

var hasDebug bool

type Scanner struct {
	Token  *Token
	Reader *reader.Reader
}

func New(r io.Reader, file string) *Scanner {
	rdr := reader.New(r, file)
	return &Scanner{
		Token:  firstToken(rdr),
		Reader: rdr,
	}
}

// NextToken returns the current token and advances to the next one.
func (s *Scanner) NextToken() *Token {
	token := s.Token
	if token.Type != TokenEnd {
		s.Token = nextToken(s.Reader)
	}
	return token
}

func print(s string, args ...any) {
	if hasDebug {
		props := make([]any, len(args))
		for i, a := range args {
			switch v := a.(type) {
			case rune:
				switch v {
				case '\r':
					props[i] = "\\r"
				case '\n':
					props[i] = "\\n"
				case '\t':
					props[i] = "\\t"
				case ' ':
					props[i] = "\\s"
				case reader.EOF:
					props[i] = "\\EOF"
				default:
					props[i] = string(v)
				}
			default:
				props[i] = a
			}
		}
		fmt.Printf(s+"\n", props...)
	}
}

func isBreak(c rune) bool {
	return c == '\n' || c == '\r'
}

func firstToken(r *reader.Reader) *Token {
	lastChar := r.Next()
	for unicode.IsSpace(lastChar) {
		print("read: %s - leading whitespace", lastChar)
		lastChar = r.Next()
	}
	r.Back()
	return nextToken(r)
}

func nextToken(r *reader.Reader) *Token {
	lastChar := r.Next()
	for unicode.IsSpace(lastChar) && !isBreak(lastChar) {
		lastChar = r.Next()
		print("read: %s - space", lastChar)
	}
	start := r.PrevInfo

	if lastChar == reader.EOF {
		return newToken(start, TokenEnd, "")
	}

	// Comments run to the end of the line; the break is the next token.
	if lastChar == '/' {
		lastChar = r.Next()
		if lastChar != '/' {
			r.Back()
			return newToken(start, TokenUnknown, "/")
		}
		for !isBreak(lastChar) && lastChar != reader.EOF {
			lastChar = r.Next()
			print("read: %s - comment", lastChar)
		}
		r.Back()
		return nextToken(r)
	}

	// Collapse runs of blank lines into one newline token.
	if isBreak(lastChar) {
		for unicode.IsSpace(lastChar) {
			lastChar = r.Next()
			print("read: %s - newline", lastChar)
		}
		if lastChar == reader.EOF {
			return newToken(start, TokenEnd, "")
		}
		r.Back()
		return newToken(start, TokenNewline, "\n")
	}

	if unicode.IsLetter(lastChar) || lastChar == '_' {
		var idStr strings.Builder
		for unicode.IsLetter(lastChar) || unicode.IsDigit(lastChar) || lastChar == '_' {
			idStr.WriteRune(lastChar)
			lastChar = r.Next()
		}
		r.Back()
		return newToken(start, TokenIdentifier, idStr.String())
	}

	if unicode.IsDigit(lastChar) || lastChar == '-' {
		var numStr strings.Builder
		numStr.WriteRune(lastChar)
		lastChar = r.Next()
		for unicode.IsDigit(lastChar) {
			numStr.WriteRune(lastChar)
			lastChar = r.Next()
		}
		r.Back()
		if numStr.String() == "-" {
			return newToken(start, TokenUnknown, "-")
		}
		return newToken(start, TokenInt, numStr.String())
	}

	if lastChar == '"' || lastChar == '\'' {
		return readString(r, start, lastChar)
	}

	print("read: %s - symbol", lastChar)
	return newToken(start, TokenUnknown, string(lastChar))
}

// readString reads up to the closing quote. The token value is unquoted.
func readString(r *reader.Reader, start reader.Info, quote rune) *Token {
	var str strings.Builder
	for {
		c := r.Next()
		switch {
		case c == quote:
			return newToken(start, TokenString, str.String())
		case c == reader.EOF || isBreak(c):
			if c != reader.EOF {
				r.Back()
			}
			return newToken(start, TokenError, "missing closing quote")
		case c == '\\':
			c = r.Next()
			switch c {
			case 'n':
				str.WriteRune('\n')
			case 'r':
				str.WriteRune('\r')
			case 't':
				str.WriteRune('\t')
			case '\\', '"', '\'':
				str.WriteRune(c)
			case reader.EOF:
				return newToken(start, TokenError, "missing closing quote")
			default:
				// unknown escapes are kept as written
				str.WriteRune('\\')
				str.WriteRune(c)
			}
		default:
			str.WriteRune(c)
		}
	}
}
