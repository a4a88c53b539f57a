package windows

import (
	"errors"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magpierre/fyne-sectiontable/adapters/yamldoc"
	"github.com/magpierre/fyne-sectiontable/script"
)

func tokens(cells []StyledCell) []TokenType {
	out := make([]TokenType, len(cells))
	for i, c := range cells {
		out[i] = c.Token
	}
	return out
}

func tokenAt(t *testing.T, cells []StyledCell, line string, word string) TokenType {
	t.Helper()
	runes := []rune(line)
	for i := 0; i+len([]rune(word)) <= len(runes); i++ {
		if string(runes[i:i+len([]rune(word))]) == word {
			return cells[i].Token
		}
	}
	require.Failf(t, "word not found", "%q in %q", word, line)
	return TokenPlain
}

func TestGoLanguage_Highlight(t *testing.T) {
	line := `func OpenRow(args sectiontable.Arguments) { x := 42; s := "hi" } // done`
	cells := GoLanguage.Highlight(line)

	require.Len(t, cells, len([]rune(line)))
	assert.Equal(t, TokenKeyword, tokenAt(t, cells, line, "func"))
	assert.Equal(t, TokenPlain, tokenAt(t, cells, line, "OpenRow"))
	assert.Equal(t, TokenAPI, tokenAt(t, cells, line, "sectiontable"))
	assert.Equal(t, TokenAPI, tokenAt(t, cells, line, "Arguments"))
	assert.Equal(t, TokenNumber, tokenAt(t, cells, line, "42"))
	assert.Equal(t, TokenString, tokenAt(t, cells, line, `"hi"`))
	assert.Equal(t, TokenComment, tokenAt(t, cells, line, "done"))
	assert.Equal(t, TokenOperator, tokenAt(t, cells, line, ":="))
}

func TestGoLanguage_UnclosedString(t *testing.T) {
	cells := GoLanguage.Highlight(`"open`)
	assert.Equal(t, []TokenType{TokenString, TokenString, TokenString, TokenString, TokenString}, tokens(cells))
}

func TestYAMLLanguage_Highlight(t *testing.T) {
	tests := []struct {
		line  string
		word  string
		token TokenType
	}{
		{"  - title: Wi-Fi", "title", TokenAPI},
		{"  - title: Wi-Fi", "-", TokenOperator},
		{"  - title: Wi-Fi", "Wi", TokenPlain},
		{"    custom: 12", "custom", TokenKeyword},
		{"    custom: 12", "12", TokenNumber},
		{"    noSelect: true", "true", TokenBuiltin},
		{`    subtitle: "On # not a comment"`, "not", TokenString},
		{"    action: openWifi # note", "note", TokenComment},
		{"# heading", "heading", TokenComment},
		{"    frame: [10, 5, 200, 30]", "[", TokenOperator},
		{"url: http://example.com", "http", TokenPlain},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			cells := YAMLLanguage.Highlight(tt.line)
			require.Len(t, cells, len([]rune(tt.line)))
			assert.Equal(t, tt.token, tokenAt(t, cells, tt.line, tt.word))
		})
	}
}

func TestSyntaxEditor_MarkLine(t *testing.T) {
	test.NewTempApp(t)
	se := NewSyntaxEditor(YAMLLanguage)
	se.SetText("sections:\n  - title: A\n  - title: B")

	assert.Equal(t, "sections:\n  - title: A\n  - title: B", se.Text())
	assert.Len(t, se.textGrid.Rows, 3)

	se.MarkLine(2)
	assert.Equal(t, 2, se.MarkedLine())
	assert.NotEqual(t, SyntaxStyles[TokenPlain], se.textGrid.Rows[1].Cells[0].Style)

	se.MarkLine(9)
	assert.Equal(t, 9, se.MarkedLine(), "lines past the end are remembered")
	assert.Nil(t, se.textGrid.Rows[1].Cells[0].Style, "the old mark is cleared")
}

func TestErrorLine(t *testing.T) {
	assert.Equal(t, 3, errorLine(errors.New("parse script: script.go:3:5: expected '}'")))
	assert.Equal(t, 12, errorLine(errors.New("evaluate script: 12:2: undefined: foo")))
	assert.Equal(t, 4, errorLine(errors.New("invalid document: yaml: line 4: did not find expected key")))
	assert.Equal(t, 0, errorLine(errors.New("no package")))
}

func TestSourceEditor_AppliedDocument(t *testing.T) {
	a := test.NewTempApp(t)
	se := NewSourceEditor(a.NewWindow("editor"), EditorDocument, nil)
	t.Cleanup(se.Close)

	var got *yamldoc.Result
	se.OnDocument = func(res *yamldoc.Result) { got = res }

	src := "sections:\n  - title: Network\n    cells:\n      - title: Wi-Fi\n"
	se.SetText(src)
	res, err := yamldoc.Decode([]byte(src))
	require.NoError(t, err)
	se.applied(nil, res, nil)

	require.NotNil(t, got)
	require.Len(t, got.Sections, 1)
	assert.Equal(t, "Network", got.Sections[0].Title)
}

func TestSourceEditor_AppliedErrorMarksLine(t *testing.T) {
	a := test.NewTempApp(t)
	se := NewSourceEditor(a.NewWindow("editor"), EditorScript, nil)
	t.Cleanup(se.Close)

	called := false
	se.OnScript = func(*script.Script) { called = true }

	src := "package actions\n\nfunc Broken( {\n"
	se.SetText(src)
	_, err := script.Load(src, script.Options{})
	require.Error(t, err)
	se.applied(nil, nil, err)

	assert.False(t, called)
	assert.Equal(t, 3, se.preview.MarkedLine())
}

func TestSourceEditor_AppliedScript(t *testing.T) {
	a := test.NewTempApp(t)
	se := NewSourceEditor(a.NewWindow("editor"), EditorScript, nil)
	t.Cleanup(se.Close)

	var got *script.Script
	se.OnScript = func(s *script.Script) { got = s }

	s, err := script.Load(scriptTemplate, script.Options{})
	require.NoError(t, err)
	se.applied(s, nil, nil)

	require.NotNil(t, got)
	assert.Equal(t, []string{"OpenRow"}, got.Actions())
}
