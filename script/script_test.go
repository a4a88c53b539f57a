package script

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magpierre/fyne-sectiontable/sectiontable"
)

const actionsSrc = `package actions

import (
	"fmt"

	"github.com/magpierre/fyne-sectiontable/sectiontable"
)

func Refresh() {
	fmt.Println("refresh")
}

func OpenCell(args sectiontable.Arguments) {
	cell := args[sectiontable.ArgumentCell].(*sectiontable.Cell)
	fmt.Println("open", cell.Title, args["id"])
}

func Toggled(args map[string]interface{}) {
	fmt.Println("toggled", args["value"])
}

func Move(from, to int) {}

func helper() {}
`

func TestLoadAndRegister(t *testing.T) {
	var out bytes.Buffer
	s, err := Load(actionsSrc, Options{Stdout: &out})
	require.NoError(t, err)

	assert.Equal(t, "actions", s.Package())
	assert.Equal(t, []string{"Refresh", "OpenCell", "Toggled", "Move"}, s.Actions())

	var diags []*sectiontable.Diagnostic
	cfg := sectiontable.DefaultConfig()
	cfg.OnDiagnostic = func(d *sectiontable.Diagnostic) { diags = append(diags, d) }
	r := sectiontable.NewActionRegistry(cfg)

	err = s.Register(r)
	require.Error(t, err, "Move takes two parameters")
	assert.ErrorIs(t, err, sectiontable.ErrUnsupportedArity)

	assert.True(t, r.Has("openCell"))
	assert.True(t, r.Has("OpenCell"))
	assert.False(t, r.Has("helper"))

	r.Dispatch("refresh", nil)
	r.Dispatch("openCell", sectiontable.Arguments{"id": 7, sectiontable.ArgumentCell: &sectiontable.Cell{Title: "Foo"}})
	r.Dispatch("toggled", sectiontable.Arguments{sectiontable.ArgumentValue: true})
	r.Dispatch("Move", sectiontable.Arguments{})

	assert.Equal(t, "refresh\nopen Foo 7\ntoggled true\n", out.String())
	require.Len(t, diags, 1)
	assert.Equal(t, sectiontable.KindUnsupportedActionArity, diags[0].Kind)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("func broken( {", Options{})
	assert.Error(t, err)

	_, err = Load("package actions\nfunc F() { undefined() }\n", Options{})
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actions.go")
	require.NoError(t, os.WriteFile(path, []byte(actionsSrc), 0o644))

	s, err := LoadFile(path, Options{})
	require.NoError(t, err)
	assert.Len(t, s.Actions(), 4)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.go"), Options{})
	assert.Error(t, err)
}
