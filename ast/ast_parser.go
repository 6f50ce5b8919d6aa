package ast

import (
	"fmt"
	"io"
	"strconv"

	"github.com/rgolang/hml/lex"
	"github.com/rgolang/hml/reader"
)

type ArgKind int

const (
	Key   ArgKind = iota // identifier, integer or string
	Value                // identifier, integer or string
	Slot                 // integer
)

func (k ArgKind) String() string {
	switch k {
	case Key:
		return "key"
	case Value:
		return "value"
	}
	return "slot"
}

// Ops lists every command and the arguments it takes.
var Ops = map[string][]ArgKind{
	"add":      {Key, Value},
	"get":      {Key},
	"set":      {Key, Value},
	"rekey":    {Key, Key},
	"remove":   {Key},
	"removeat": {Slot},
	"at":       {Slot},
	"setat":    {Slot, Value},
	"keyat":    {Slot},
	"slot":     {Key},
	"has":      {Key},
	"len":      {},
	"clear":    {},
	"check":    {},
	"dump":     {},
	"release":  {},
}

type Arg struct {
	Kind ArgKind
	Text string
	Int  int // set for Slot arguments
}

type Command struct {
	Op   string
	Args []Arg
	Pos  reader.Info
}

func (c Command) String() string {
	s := c.Op
	for _, a := range c.Args {
		if a.Kind == Slot {
			s += " " + a.Text
		} else {
			s += " " + strconv.Quote(a.Text)
		}
	}
	return s
}

type Parser struct {
	lex *lex.Scanner
}

func New(scanner *lex.Scanner) *Parser {
	return &Parser{
		lex: scanner,
	}
}

// Parse reads a whole script, one command per line.
func Parse(r io.Reader, file string) ([]Command, error) {
	return New(lex.New(r, file)).Parse()
}

func (p *Parser) Parse() ([]Command, error) {
	cmds := []Command{}
	for {
		switch p.lex.Token.Type {
		case lex.TokenEnd:
			return cmds, nil
		case lex.TokenNewline:
			p.lex.NextToken() // eat the newline
		case lex.TokenIdentifier:
			cmd, err := p.handleCommand()
			if err != nil {
				return nil, err
			}
			cmds = append(cmds, cmd)
		default:
			return nil, unexpected(p.lex.Token, "command")
		}
	}
}

func (p *Parser) handleCommand() (Command, error) {
	tok := p.lex.NextToken() // eat the op
	kinds, ok := Ops[tok.Value]
	if !ok {
		return Command{}, fmt.Errorf("%v: unknown command %q", tok.Pos, tok.Value)
	}
	cmd := Command{Op: tok.Value, Pos: tok.Pos}
	for _, kind := range kinds {
		arg, err := p.handleArg(cmd.Op, kind)
		if err != nil {
			return Command{}, err
		}
		cmd.Args = append(cmd.Args, arg)
	}
	switch p.lex.Token.Type {
	case lex.TokenNewline, lex.TokenEnd:
		return cmd, nil
	}
	return Command{}, fmt.Errorf("%v: too many arguments to %s, got %s %q", p.lex.Token.Pos, cmd.Op, p.lex.Token.Type, p.lex.Token.Value)
}

func (p *Parser) handleArg(op string, kind ArgKind) (Arg, error) {
	tok := p.lex.Token
	switch tok.Type {
	case lex.TokenNewline, lex.TokenEnd:
		return Arg{}, fmt.Errorf("%v: %s expects a %s argument", tok.Pos, op, kind)
	case lex.TokenInt:
		n, err := strconv.Atoi(tok.Value)
		if err != nil {
			return Arg{}, fmt.Errorf("%v: bad integer %q: %w", tok.Pos, tok.Value, err)
		}
		p.lex.NextToken()
		return Arg{Kind: kind, Text: tok.Value, Int: n}, nil
	case lex.TokenIdentifier, lex.TokenString:
		if kind == Slot {
			return Arg{}, fmt.Errorf("%v: %s expects a slot number, got %s %q", tok.Pos, op, tok.Type, tok.Value)
		}
		p.lex.NextToken()
		return Arg{Kind: kind, Text: tok.Value}, nil
	}
	return Arg{}, unexpected(tok, kind.String())
}

func unexpected(tok *lex.Token, want string) error {
	if tok.Type == lex.TokenError {
		return fmt.Errorf("%v: %s", tok.Pos, tok.Value)
	}
	return fmt.Errorf("%v: expected %s, got %s %q", tok.Pos, want, tok.Type, tok.Value)
}
