package reader

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReader_NextRN(t *testing.T) {
	r := New(strings.NewReader("Hëllo\r\nWörld"), "")
	req := require.New(t)

	lastRune := r.Next() // 'H'
	req.Equal('H', lastRune, fmt.Sprintf("expected 'H', got: '%v'", string(lastRune)))
	req.Equal(1, r.Info.ByteOffset)
	req.Equal(1, r.Info.Column)
	req.Equal(0, r.Info.Line)

	lastRune = r.Next() // 'ë'
	req.Equal('ë', lastRune)
	req.Equal(3, r.Info.ByteOffset) // 2 bytes in UTF-8
	req.Equal(2, r.Info.Column)

	r.Next() // 'l'
	r.Next() // 'l'
	r.Next() // 'o'

	lastRune = r.Next() // '\r'
	req.Equal('\r', lastRune)
	req.Equal(7, r.Info.ByteOffset)
	req.Equal(0, r.Info.Column)
	req.Equal(1, r.Info.Line)

	lastRune = r.Next() // '\n'
	req.Equal('\n', lastRune)
	req.Equal(8, r.Info.ByteOffset)
	req.Equal(0, r.Info.Column)
	req.Equal(1, r.Info.Line)

	lastRune = r.Next() // 'W'
	req.Equal('W', lastRune)
	req.Equal(9, r.Info.ByteOffset)
	req.Equal(1, r.Info.Column)
	req.Equal(1, r.Info.Line)
}

func TestReader_LineBreaks(t *testing.T) {
	for _, tc := range []struct {
		name  string
		input string
	}{
		{name: "lf", input: "ab\ncd"},
		{name: "cr", input: "ab\rcd"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := New(strings.NewReader(tc.input), "")
			r.Next() // 'a'
			r.Next() // 'b'
			r.Next() // break
			require.Equal(t, 3, r.Info.ByteOffset)
			require.Equal(t, 0, r.Info.Column)
			require.Equal(t, 1, r.Info.Line)

			require.Equal(t, 'c', r.Next())
			require.Equal(t, 1, r.Info.Column)
			require.Equal(t, 1, r.Info.Line)
		})
	}
}

func TestReader_EOF(t *testing.T) {
	r := New(strings.NewReader("Hë"), "")
	req := require.New(t)

	r.Next() // 'H'
	r.Next() // 'ë'
	req.Equal(EOF, r.Next())
	req.Equal(4, r.Info.ByteOffset)
	req.Equal(0, r.Info.Column)
	req.Equal(1, r.Info.Line)

	req.Equal(EOF, r.Next(), "EOF repeats")
}

func TestReader_BackEOF(t *testing.T) {
	r := New(strings.NewReader("Hë"), "")
	req := require.New(t)

	r.Next() // 'H'
	r.Next() // 'ë'
	req.Equal(EOF, r.Next())

	r.Back()
	req.Equal(3, r.Info.ByteOffset)
	req.Equal(2, r.Info.Column)
	req.Equal(0, r.Info.Line)

	req.Equal(EOF, r.Next())
	req.Equal(1, r.Info.Line)
}

func TestReader_Back(t *testing.T) {
	r := New(strings.NewReader("Hëllo\nWörld"), "")
	req := require.New(t)

	r.Next() // 'H'
	r.Next() // 'ë'
	r.Next() // 'l'
	req.Equal('l', r.Next())
	req.Equal(5, r.Info.ByteOffset)
	req.Equal(4, r.Info.Column)

	r.Back()
	req.Equal(4, r.Info.ByteOffset)
	req.Equal(3, r.Info.Column)

	req.Equal('l', r.Next())
	req.Equal(5, r.Info.ByteOffset)
	req.Equal(4, r.Info.Column)
}

func TestInfo_String(t *testing.T) {
	r := New(strings.NewReader("a\nbc"), "run.hml")
	r.Next() // 'a'
	r.Next() // '\n'
	r.Next() // 'b'
	require.Equal(t, "run.hml:2:2", r.Info.String())

	require.Equal(t, "1:1", Info{}.String())
}
