package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mips32repl/mips32repl/parser"
)

func TestDirectiveGlobl(t *testing.T) {
	instrs, err := parser.ParseLine(".globl main", 0x400000, 1, "")
	require.Nil(t, err)
	assert.Equal(t, parser.DirGlobal, instrs[0].Directive.Kind)
	assert.Equal(t, "main", instrs[0].Directive.Label)
}

func TestDirectiveSpace(t *testing.T) {
	instrs, err := parser.ParseLine(".space 12", 0x10000000, 1, "")
	require.Nil(t, err)
	assert.Equal(t, []int64{12}, instrs[0].Directive.Numbers)
}

func TestDirectiveWordList(t *testing.T) {
	instrs, err := parser.ParseLine(".word 1, 2, 3", 0x10000000, 1, "")
	require.Nil(t, err)
	assert.Equal(t, []int64{1, 2, 3}, instrs[0].Directive.Numbers)
}

func TestDirectiveAsciiNoTerminator(t *testing.T) {
	instrs, err := parser.ParseLine(`.ascii "ab"`, 0x10000000, 1, "")
	require.Nil(t, err)
	assert.Equal(t, []byte{'a', 'b'}, instrs[0].Directive.Bytes)
}

func TestDirectiveAsciizAddsThreeBytes(t *testing.T) {
	instrs, err := parser.ParseLine(`.asciiz "ab"`, 0x10000000, 1, "")
	require.Nil(t, err)
	assert.Equal(t, []byte{'a', 'b', 0x00}, instrs[0].Directive.Bytes)
}

func TestDirectiveAsciiUnterminated(t *testing.T) {
	_, err := parser.ParseLine(`.asciiz "unterminated`, 0x10000000, 1, "")
	require.NotNil(t, err)
	assert.Equal(t, parser.ErrorUnterminatedString, err.Kind)
}

func TestDirectiveUnknown(t *testing.T) {
	_, err := parser.ParseLine(".bogus", 0x10000000, 1, "")
	require.NotNil(t, err)
	assert.Equal(t, parser.ErrorInvalidDirective, err.Kind)
}
