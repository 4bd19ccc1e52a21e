package since

import (
	"testing"

	"github.com/jonathan/witcheck/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchDeclaration_AllKinds(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantKind types.DeclarationKind
		wantName string
	}{
		{name: "interface", line: "interface wasi-clocks {", wantKind: types.KindInterface, wantName: "wasi-clocks"},
		{name: "world", line: "world imports {", wantKind: types.KindWorld, wantName: "imports"},
		{name: "type alias", line: "  type instant = u64;", wantKind: types.KindType, wantName: "instant"},
		{name: "record", line: "\trecord point { x: u32 }", wantKind: types.KindRecord, wantName: "point"},
		{name: "variant", line: "variant error-code {", wantKind: types.KindVariant, wantName: "error-code"},
		{name: "enum", line: "enum descriptor-type {", wantKind: types.KindEnum, wantName: "descriptor-type"},
		{name: "flags", line: "flags open-flags {", wantKind: types.KindFlags, wantName: "open-flags"},
		{name: "resource with body", line: "resource pollable {", wantKind: types.KindResource, wantName: "pollable"},
		{name: "forward declared resource", line: "resource input-stream;", wantKind: types.KindResource, wantName: "input-stream"},
		{name: "no space before brace", line: "record r2d2{", wantKind: types.KindRecord, wantName: "r2d2"},
		{name: "uppercase keyword", line: "INTERFACE foo {", wantKind: types.KindInterface, wantName: "foo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, ok := MatchDeclaration(tt.line)
			require.True(t, ok)
			require.NotNil(t, match)
			assert.Equal(t, tt.wantKind, match.Kind)
			assert.Equal(t, tt.wantName, match.Name)
		})
	}
}

func TestMatchDeclaration_NoMatch(t *testing.T) {
	lines := []string{
		"",
		"   ",
		"/// interface foo {",
		"@since(version = 0.2.0)",
		"}",
		"use wasi:io/streams.{input-stream};",
		"import monotonic-clock;",
		"now: func() -> instant;",
		"interface Foo {",    // identifier must be lowercase
		"interface 1foo {",   // identifier must start with a letter
		"interface foo",      // missing terminator
		"type foo;",          // type requires '='
		"record foo = u32;",  // record requires '{'
		"resource foo = bar", // resource requires '{' or ';'
		"interfacefoo {",
		"x interface foo {",
	}

	for _, line := range lines {
		match, ok := MatchDeclaration(line)
		assert.False(t, ok, "line %q should not match", line)
		assert.Nil(t, match)
	}
}

func TestMatchDeclaration_FirstMatchWins(t *testing.T) {
	// The identifier of a type alias may itself be a keyword-like word.
	match, ok := MatchDeclaration("type record = u32;")
	require.True(t, ok)
	assert.Equal(t, types.KindType, match.Kind)
	assert.Equal(t, "record", match.Name)

	match, ok = MatchDeclaration("resource world {")
	require.True(t, ok)
	assert.Equal(t, types.KindResource, match.Kind)
	assert.Equal(t, "world", match.Name)
}

func TestMatchDeclaration_LineNumberUnset(t *testing.T) {
	match, ok := MatchDeclaration("enum color {")
	require.True(t, ok)
	assert.Zero(t, match.LineNumber)
}
