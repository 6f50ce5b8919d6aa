// Package reader reads runes from a script while tracking where the cursor
// is. It folds \r\n into one line break, returns EOF at the end of input
// and panics on read errors, which keeps the lexer's control flow simple.
package reader

import (
	"bufio"
	"fmt"
	"io"
)

// EOF is returned once the input is exhausted. It counts as a line break.
const EOF rune = -1

type Info struct {
	prevRune   rune
	File       string
	Line       int // zero based
	Column     int // runes since the start of the line
	ByteOffset int
}

// String formats the position as file:line:column, one based.
func (i Info) String() string {
	if i.File == "" {
		return fmt.Sprintf("%d:%d", i.Line+1, i.Column+1)
	}
	return fmt.Sprintf("%s:%d:%d", i.File, i.Line+1, i.Column+1)
}

type Reader struct {
	isEnd    bool
	Info     Info
	PrevInfo Info
	reader   *bufio.Reader
}

func New(r io.Reader, file string) *Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{
		reader: br,
		Info:   Info{File: file},
	}
}

// Next reads one rune, or EOF once the input is exhausted.
func (r *Reader) Next() rune {
	if r.isEnd {
		return EOF
	}
	lastRune, size, err := r.reader.ReadRune()
	if err != nil {
		if err == io.EOF {
			r.isEnd = true
			r.PrevInfo = r.Info
			r.Info.ByteOffset++
			r.Info.Column = 0
			r.Info.Line++
			return EOF
		}
		panic(err)
	}
	r.PrevInfo = r.Info
	defer func() {
		r.Info.prevRune = lastRune
	}()

	r.Info.ByteOffset += size

	// second half of \r\n, the line was already counted
	if r.Info.prevRune == '\r' && lastRune == '\n' {
		return lastRune
	}

	if lastRune == '\r' || lastRune == '\n' {
		r.Info.Line++
		r.Info.Column = 0
		return lastRune
	}

	r.Info.Column++
	return lastRune
}

// Back steps back one rune. Only one step is remembered.
func (r *Reader) Back() {
	if !r.isEnd {
		if err := r.reader.UnreadRune(); err != nil {
			panic(err)
		}
	} else {
		r.isEnd = false
	}
	r.Info = r.PrevInfo
}
