package fold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/codeintel/internal/intel/language"
)

var registry = language.Default()

func lang(ext string) *language.Language {
	return registry.Resolve(ext)
}

func TestDetect_SwiftFunction(t *testing.T) {
	regions := Detect("func foo() {\n  return 1\n}", lang("swift"))

	require.Len(t, regions, 1)
	r := regions[0]
	assert.Equal(t, 1, r.StartLine)
	assert.Equal(t, 3, r.EndLine)
	assert.Equal(t, language.KindFunction, r.Kind)
	assert.Equal(t, "func foo() {", r.Label)
	assert.Equal(t, 0, r.StartColumn)
	assert.Equal(t, 1, r.EndColumn)
}

func TestDetect_PythonIndentation(t *testing.T) {
	regions := Detect("if x:\n    y = 1\n    z = 2\nprint(y)", lang("py"))

	require.Len(t, regions, 1)
	assert.Equal(t, 1, regions[0].StartLine)
	assert.Equal(t, 3, regions[0].EndLine)
	assert.Equal(t, language.KindConditional, regions[0].Kind)
}

func TestDetect_PythonSkipsBlankAndCommentLines(t *testing.T) {
	text := "def f():\n    a = 1\n\n# note\n    return a\nx = 2"

	regions := Detect(text, lang("py"))

	require.Len(t, regions, 1)
	assert.Equal(t, language.KindFunction, regions[0].Kind)
	assert.Equal(t, 5, regions[0].EndLine)
}

func TestDetect_PythonTabsCountAsColumns(t *testing.T) {
	text := "class A:\n\tdef f(self):\n\t\tpass\n"

	regions := Detect(text, lang("py"))

	require.Len(t, regions, 2)
	assert.Equal(t, Region{StartLine: 1, EndLine: 3, StartColumn: 0, EndColumn: 6, Kind: language.KindClass, Label: "class A:"}, regions[0])
	assert.Equal(t, 2, regions[1].StartLine)
	assert.Equal(t, 3, regions[1].EndLine)
	assert.Equal(t, 1, regions[1].StartColumn)
}

func TestDetect_NestedSwift(t *testing.T) {
	text := `import Foundation
import UIKit

class View {
    // MARK: body
    func draw() {
        if ready {
            render()
        } else {
            wait()
        }
    }
}`

	regions := Detect(text, lang("swift"))

	got := make([]Key, 0, len(regions))
	for _, r := range regions {
		got = append(got, r.Key())
	}
	assert.Equal(t, []Key{
		{1, language.KindImport},
		{4, language.KindClass},
		{6, language.KindFunction},
		{7, language.KindConditional},
		{9, language.KindConditional},
	}, got)
	assert.Equal(t, 2, regions[0].EndLine)
	assert.Equal(t, 13, regions[1].EndLine)
	assert.Equal(t, 12, regions[2].EndLine)
	assert.Equal(t, 9, regions[3].EndLine)
	assert.Equal(t, 11, regions[4].EndLine)
}

func TestDetect_UnterminatedBraceDropped(t *testing.T) {
	regions := Detect("func broken() {\n  let x = 1\n", lang("swift"))
	assert.Empty(t, regions)
}

func TestDetect_SingleLineBlocksIgnored(t *testing.T) {
	regions := Detect("func f() { return 1 }\nlet y = { 2 }", lang("swift"))
	assert.Empty(t, regions)
}

func TestDetect_BodilessDeclarations(t *testing.T) {
	text := "protocol P {\n    func a()\n    func b()\n}\nfunc c() {\n}"

	regions := Detect(text, lang("swift"))

	require.Len(t, regions, 2)
	assert.Equal(t, Key{1, language.KindProtocol}, regions[0].Key())
	assert.Equal(t, 4, regions[0].EndLine)
	assert.Equal(t, Key{5, language.KindFunction}, regions[1].Key())
}

func TestDetect_BracesInStringsAndComments(t *testing.T) {
	text := "func f() {\n  let s = \"}\"\n  // }\n  g()\n}"

	regions := Detect(text, lang("swift"))

	require.Len(t, regions, 1)
	assert.Equal(t, 5, regions[0].EndLine)
}

func TestDetect_BlockComments(t *testing.T) {
	text := "/* one line */\n/*\n * many\n */\nlet x = 1"

	regions := Detect(text, lang("swift"))

	require.Len(t, regions, 1)
	assert.Equal(t, language.KindComment, regions[0].Kind)
	assert.Equal(t, 2, regions[0].StartLine)
	assert.Equal(t, 4, regions[0].EndLine)
}

func TestDetect_PythonDocstring(t *testing.T) {
	text := "\"\"\"Module.\n\nDetails.\n\"\"\"\n\"\"\"single\"\"\"\n"

	regions := Detect(text, lang("py"))

	require.Len(t, regions, 1)
	assert.Equal(t, language.KindComment, regions[0].Kind)
	assert.Equal(t, 1, regions[0].StartLine)
	assert.Equal(t, 4, regions[0].EndLine)
}

func TestDetect_ImportsNeedTwoLines(t *testing.T) {
	regions := Detect("import os\n\nimport sys\nimport re\n", lang("py"))

	require.Len(t, regions, 1)
	assert.Equal(t, Key{3, language.KindImport}, regions[0].Key())
	assert.Equal(t, 4, regions[0].EndLine)
}

func TestDetect_GoGroupedDeclarations(t *testing.T) {
	text := "package main\n\nimport (\n\t\"fmt\"\n\t\"os\"\n)\n\nconst (\n\ta = 1\n)\n"

	regions := Detect(text, lang("go"))

	require.Len(t, regions, 2)
	assert.Equal(t, Key{StartLine: 3, Kind: language.KindImport}, regions[0].Key())
	assert.Equal(t, 6, regions[0].EndLine)
	assert.Equal(t, Key{StartLine: 8, Kind: language.KindBlock}, regions[1].Key())
	assert.Equal(t, 10, regions[1].EndLine)
}

func TestDetect_ShellKeywordStyle(t *testing.T) {
	text := `#!/bin/sh
if [ -f file ]; then
  cat file
fi
for f in *.txt; do
  echo "$f"
done
deploy() {
  echo deploying
}`

	regions := Detect(text, lang("sh"))

	require.Len(t, regions, 3)
	assert.Equal(t, Region{StartLine: 2, EndLine: 4, StartColumn: 0, EndColumn: 2, Kind: language.KindConditional, Label: "if [ -f file ]; then"}, regions[0])
	assert.Equal(t, Key{5, language.KindLoop}, regions[1].Key())
	assert.Equal(t, 7, regions[1].EndLine)
	assert.Equal(t, Key{8, language.KindFunction}, regions[2].Key())
	assert.Equal(t, 10, regions[2].EndLine)
}

func TestDetect_TerminatorNeedsWordBoundary(t *testing.T) {
	text := "if true; then\n  file=1\nfi"

	regions := Detect(text, lang("sh"))

	require.Len(t, regions, 1)
	assert.Equal(t, 3, regions[0].EndLine)
}

func TestDetect_AppleScriptCaseInsensitive(t *testing.T) {
	text := "TELL application \"Finder\"\n\tactivate\nEND TELL\non run\n\tbeep\nend run"

	regions := Detect(text, lang("applescript"))

	require.Len(t, regions, 2)
	assert.Equal(t, Key{1, language.KindBlock}, regions[0].Key())
	assert.Equal(t, 3, regions[0].EndLine)
	assert.Equal(t, Key{4, language.KindFunction}, regions[1].Key())
	assert.Equal(t, 6, regions[1].EndLine)
}

func TestDetect_KeywordWithoutTerminator(t *testing.T) {
	regions := Detect("def f\n  1\n", lang("rb"))
	assert.Empty(t, regions)
}

func TestDetect_PlainLanguageGenericBraces(t *testing.T) {
	regions := Detect("config {\n  a = 1\n}\n", lang("unknown"))

	require.Len(t, regions, 1)
	assert.Equal(t, language.KindBlock, regions[0].Kind)
}

func TestDetect_EmptyAndNil(t *testing.T) {
	assert.Empty(t, Detect("", lang("swift")))
	assert.NotPanics(t, func() { Detect("x {\n}", nil) })
}

func TestFlags_TogglePersistsAcrossDetection(t *testing.T) {
	text := "func foo() {\n  return 1\n}"
	l := lang("swift")
	flags := NewFlags()

	first := Detect(text, l)
	require.Len(t, first, 1)
	assert.True(t, flags.Toggle(first[0].Key()))

	second := flags.Apply(Detect(text, l))
	require.Len(t, second, 1)
	assert.True(t, second[0].Folded)
	assert.True(t, flags.IsFolded(second[0].Key()))

	assert.False(t, flags.Toggle(second[0].Key()))
	assert.False(t, flags.IsFolded(second[0].Key()))
	assert.Equal(t, 0, flags.Len())
}

func TestFlags_ZeroValueAndNil(t *testing.T) {
	var f Flags
	k := Key{StartLine: 3, Kind: language.KindLoop}
	f.Set(k, true)
	assert.True(t, f.IsFolded(k))

	var nilFlags *Flags
	assert.False(t, nilFlags.IsFolded(k))
	assert.Equal(t, 0, nilFlags.Len())
	assert.Empty(t, nilFlags.Map())
}

func TestFlags_PruneAndPersist(t *testing.T) {
	f := NewFlagsFrom(map[string]bool{"1:function": true, "9:loop": true, "4:class": false})
	assert.Equal(t, []string{"1:function", "9:loop"}, f.Keys())

	removed := f.Prune([]Region{{StartLine: 1, EndLine: 3, Kind: language.KindFunction}})
	assert.Equal(t, 1, removed)
	assert.Equal(t, map[string]bool{"1:function": true}, f.Map())
}

func TestParseKey(t *testing.T) {
	k, err := ParseKey("12:function")
	require.NoError(t, err)
	assert.Equal(t, Key{StartLine: 12, Kind: language.KindFunction}, k)
	assert.Equal(t, "12:function", k.String())

	for _, bad := range []string{"", "12", "x:function", "0:function", "3:widget"} {
		_, err := ParseKey(bad)
		assert.ErrorIs(t, err, ErrInvalidKey, bad)
	}
}

func TestHiddenLines(t *testing.T) {
	regions := []Region{
		{StartLine: 2, EndLine: 4, Folded: true},
		{StartLine: 6, EndLine: 8},
		{StartLine: 7, EndLine: 20, Folded: true},
	}

	assert.Equal(t, []int{3, 4, 8, 9, 10}, HiddenLines(regions, 10))
	assert.False(t, IsHidden(regions, 2))
	assert.True(t, IsHidden(regions, 3))
	assert.False(t, IsHidden(regions, 7))
}

func TestRegion_DisplayLabel(t *testing.T) {
	r := Region{Label: "func veryLongFunctionName() {"}

	assert.Equal(t, r.Label, r.DisplayLabel(0))
	assert.Equal(t, r.Label, r.DisplayLabel(100))
	got := r.DisplayLabel(10)
	assert.Equal(t, "func very…", got)
}

func TestRegion_Contains(t *testing.T) {
	r := Region{StartLine: 3, EndLine: 5}

	assert.False(t, r.Contains(2))
	assert.True(t, r.Contains(3))
	assert.True(t, r.Contains(5))
	assert.False(t, r.Contains(6))
	assert.Equal(t, 3, r.Lines())
}
