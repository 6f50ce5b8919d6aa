// Package interp runs parsed scripts against an omap.Map, writing one
// result line per command.
package interp

import (
	"fmt"
	"io"

	"github.com/kr/pretty"
	"github.com/pkg/errors"

	"github.com/rgolang/hml/ast"
	"github.com/rgolang/hml/omap"
)

// Entry is one row of a dump.
type Entry struct {
	Slot  int
	Key   string
	Value string
}

type Interp struct {
	m *omap.Map[string, string]
	w io.Writer

	// ContinueOnError reports failed commands and keeps going instead of
	// stopping at the first one.
	ContinueOnError bool
}

func New(m *omap.Map[string, string], w io.Writer) *Interp {
	return &Interp{m: m, w: w}
}

// Run executes cmds in order. Lookups that miss are results, not errors;
// removing a missing key or using a bad slot is an error.
func (in *Interp) Run(cmds []ast.Command) error {
	failed := 0
	for _, cmd := range cmds {
		err := in.Exec(cmd)
		if err == nil {
			continue
		}
		if !in.ContinueOnError {
			return err
		}
		failed++
		fmt.Fprintf(in.w, "error: %v\n", err)
	}
	if failed > 0 {
		return errors.Errorf("%d of %d commands failed", failed, len(cmds))
	}
	return nil
}

func (in *Interp) Exec(cmd ast.Command) error {
	if err := in.exec(cmd); err != nil {
		return errors.Wrapf(err, "%v: %s", cmd.Pos, cmd)
	}
	return nil
}

func (in *Interp) exec(cmd ast.Command) error {
	arg := func(i int) string { return cmd.Args[i].Text }
	slot := func(i int) int { return cmd.Args[i].Int }

	switch cmd.Op {
	case "add":
		in.printf("%s: %t", cmd, in.m.Add(arg(0), arg(1)))
	case "get":
		v, ok := in.m.Get(arg(0))
		if !ok {
			in.printf("%s: false", cmd)
			return nil
		}
		in.printf("%s: %q true", cmd, v)
	case "set":
		in.printf("%s: %t", cmd, in.m.Set(arg(0), arg(1)))
	case "rekey":
		in.printf("%s: %t", cmd, in.m.ChangeKey(arg(0), arg(1)))
	case "has":
		in.printf("%s: %t", cmd, in.m.Has(arg(0)))
	case "slot":
		i, ok := in.m.SlotOf(arg(0))
		in.printf("%s: %d %t", cmd, i, ok)
	case "remove":
		if err := in.m.Remove(arg(0)); err != nil {
			return err
		}
		in.printf("%s: ok", cmd)
	case "removeat":
		if err := in.m.RemoveAt(slot(0)); err != nil {
			return err
		}
		in.printf("%s: ok", cmd)
	case "at":
		v, err := in.m.At(slot(0))
		if err != nil {
			return err
		}
		in.printf("%s: %q", cmd, v)
	case "setat":
		if err := in.m.SetAt(slot(0), arg(1)); err != nil {
			return err
		}
		in.printf("%s: ok", cmd)
	case "keyat":
		k, err := in.m.KeyAt(slot(0))
		if err != nil {
			return err
		}
		in.printf("%s: %q", cmd, k)
	case "len":
		in.printf("%s: %d", cmd, in.m.Len())
	case "clear":
		in.m.Clear()
		in.printf("%s: ok", cmd)
	case "check":
		if err := in.m.Check(); err != nil {
			return err
		}
		in.printf("%s: ok", cmd)
	case "dump":
		in.dump()
	case "release":
		in.m.Release()
		in.printf("%s: ok", cmd)
	default:
		return errors.Errorf("unknown command %q", cmd.Op)
	}
	return nil
}

func (in *Interp) printf(format string, args ...any) {
	fmt.Fprintf(in.w, format+"\n", args...)
}

func (in *Interp) dump() {
	entries := make([]Entry, 0, in.m.Len())
	in.m.Each(func(slot int, k, v string) bool {
		entries = append(entries, Entry{Slot: slot, Key: k, Value: v})
		return true
	})
	pretty.Fprintf(in.w, "%# v\n", entries)
}
