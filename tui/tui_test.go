package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mips32repl/mips32repl/assembler"
	"github.com/mips32repl/mips32repl/memory"
	"github.com/mips32repl/mips32repl/parser"
	"github.com/mips32repl/mips32repl/register"
)

// The dashboard's view construction needs a real terminal backend
// through tcell, so these tests exercise only the pure data-formatting
// helpers that feed each panel.

func TestFormatRegistersShowsNamesAndPC(t *testing.T) {
	regs := register.NewFile()
	regs.Set(register.T0, 42)
	regs.SetPC(assembler.TextBase)

	out := formatRegisters(regs)
	assert.Contains(t, out, "$t0")
	assert.Contains(t, out, "0x0000002A")
	assert.Contains(t, out, "pc")
}

func TestFormatInstructionsMarksCurrentPC(t *testing.T) {
	asm := assembler.New(assembler.TextBase, assembler.DataBase, assembler.StackTop)
	loc := asm.NextLocation()
	instrs, perr := parser.ParseLine("addi $t0, $zero, 1", loc, 1, "")
	require.Nil(t, perr)
	_, err := asm.Assemble(instrs)
	require.NoError(t, err)

	out := formatInstructions(asm, assembler.TextBase)
	assert.Contains(t, out, "->")
	assert.Contains(t, out, "addi")
}

func TestFormatMemoryDumpsBytesFromSP(t *testing.T) {
	mem := memory.New()
	mem.WriteByte(assembler.StackTop, 0xAB)

	out := formatMemory(mem, assembler.StackTop)
	assert.True(t, strings.Contains(out, "AB"))
}
