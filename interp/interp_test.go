package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/rgolang/hml/ast"
	"github.com/rgolang/hml/omap"
)

func run(t *testing.T, src string, keepGoing bool) (string, error) {
	t.Helper()
	cmds, err := ast.Parse(strings.NewReader(src), "t.hml")
	require.NoError(t, err)
	var out bytes.Buffer
	in := New(omap.New[string, string](4), &out)
	in.ContinueOnError = keepGoing
	err = in.Run(cmds)
	return out.String(), err
}

func TestRun_SwapBack(t *testing.T) {
	out, err := run(t, `
add 1 "a"
add 2 "b"
add 3 "c"
len
remove 1
len
at 0
at 1
get 1
slot 3
check
`, false)
	require.NoError(t, err)
	require.Equal(t, `add "1" "a": true
add "2" "b": true
add "3" "c": true
len: 3
remove "1": ok
len: 2
at 0: "c"
at 1: "b"
get "1": false
slot "3": 0 true
check: ok
`, out)
}

func TestRun_KeyOps(t *testing.T) {
	out, err := run(t, `
add a x
add a y
get a
set a z
set b z
rekey a b
has a
keyat 0
setat 0 "w"
get b
removeat 0
has b
clear
len
`, false)
	require.NoError(t, err)
	require.Equal(t, `add "a" "x": true
add "a" "y": false
get "a": "x" true
set "a" "z": true
set "b" "z": false
rekey "a" "b": true
has "a": false
keyat 0: "b"
setat 0 "w": ok
get "b": "w" true
removeat 0: ok
has "b": false
clear: ok
len: 0
`, out)
}

func TestRun_StopsOnError(t *testing.T) {
	out, err := run(t, "add a 1\nremove b\nlen\n", false)
	require.Error(t, err)
	require.True(t, errors.Is(err, omap.ErrKeyNotFound))
	require.Contains(t, err.Error(), `t.hml:2:1: remove "b"`)
	require.Equal(t, "add \"a\" \"1\": true\n", out)
}

func TestRun_ContinueOnError(t *testing.T) {
	out, err := run(t, "at 0\nremoveat 3\nlen\n", true)
	require.Error(t, err)
	require.Contains(t, err.Error(), "2 of 3 commands failed")
	require.Contains(t, out, "error: t.hml:1:1: at 0: slot 0, length 0: slot out of range\n")
	require.Contains(t, out, "len: 0\n")
}

func TestRun_Dump(t *testing.T) {
	out, err := run(t, "add k1 v1\nadd k2 v2\ndump\n", false)
	require.NoError(t, err)
	i := strings.Index(out, "[]interp.Entry")
	require.GreaterOrEqual(t, i, 0)
	dump := out[i:]
	require.Contains(t, dump, `"v2"`)
	require.Less(t, strings.Index(dump, `"k1"`), strings.Index(dump, `"k2"`))
}

func TestRun_Release(t *testing.T) {
	out, err := run(t, "add k v\nrelease\nget k\ncheck\n", false)
	require.Error(t, err)
	require.True(t, errors.Is(err, omap.ErrReleased))
	require.Contains(t, out, "release: ok\nget \"k\": false\n")
}
