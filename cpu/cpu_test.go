package cpu_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mips32repl/mips32repl/assembler"
	"github.com/mips32repl/mips32repl/cpu"
	"github.com/mips32repl/mips32repl/parser"
	"github.com/mips32repl/mips32repl/register"
)

// assembleAll parses and assembles every line of program in order,
// returning the resulting assembler state.
func assembleAll(t *testing.T, program string) *assembler.State {
	t.Helper()
	s := assembler.New(assembler.TextBase, assembler.DataBase, assembler.StackTop)
	for _, line := range strings.Split(program, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		loc := s.NextLocation()
		instrs, perr := parser.ParseLine(line, loc, 1, "")
		require.Nil(t, perr, "parse error on %q: %v", line, perr)
		_, err := s.Assemble(instrs)
		require.NoError(t, err, "assemble error on %q: %v", line, err)
	}
	return s
}

func newEngine(s *assembler.State, stdin string) (*cpu.Engine, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	e := cpu.New(s, strings.NewReader(stdin), &stdout, &stderr)
	return e, &stdout, &stderr
}

// Scenario A: addition.
func TestScenarioAAddition(t *testing.T) {
	s := assembleAll(t, `
addi $t0, $zero, 5
addi $t1, $zero, 7
add $t2, $t0, $t1
`)
	e, _, _ := newEngine(s, "")
	_, err := e.Run()
	require.NoError(t, err)
	assert.Equal(t, uint32(12), e.Registers.Get(register.T2))
}

// Scenario B: a branch loop counting down to zero.
func TestScenarioBBranchLoop(t *testing.T) {
	s := assembleAll(t, `
addi $t0, $zero, 3
addi $t1, $zero, 0
loop: beq $t0, $zero, done
addi $t1, $t1, 1
addi $t0, $t0, -1
j loop
done: addi $t2, $zero, 99
`)
	e, _, _ := newEngine(s, "")
	_, err := e.Run()
	require.NoError(t, err)
	assert.Equal(t, uint32(3), e.Registers.Get(register.T1))
	assert.Equal(t, uint32(99), e.Registers.Get(register.T2))
}

// Scenario C: mul pseudo-instruction with an immediate third operand
// expands to li+mult+mflo, totalling pc+=12.
func TestScenarioCMulImmediate(t *testing.T) {
	s := assembleAll(t, `
addi $t1, $zero, 4
mul $t0, $t1, 5
`)
	e, _, _ := newEngine(s, "")
	_, err := e.Run()
	require.NoError(t, err)
	assert.Equal(t, uint32(20), e.Registers.Get(register.T0))
}

// Scenario D: li with a full 32-bit constant, round-tripped through
// memory via sw/lw.
func TestScenarioDMemoryRoundTrip(t *testing.T) {
	s := assembleAll(t, `
li $t0, 0x12345678
addi $sp, $sp, -4
sw $t0, 0($sp)
lw $t1, 0($sp)
`)
	e, _, _ := newEngine(s, "")
	_, err := e.Run()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), e.Registers.Get(register.T0))
	assert.Equal(t, uint32(0x12345678), e.Registers.Get(register.T1))
}

// Invariant #9: addi wraps at INT32_MIN without trapping.
func TestAddiWrapsAtInt32Min(t *testing.T) {
	s := assembleAll(t, `
lui $t0, 0x8000
addi $t1, $t0, -1
`)
	e, _, _ := newEngine(s, "")
	_, err := e.Run()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x7FFFFFFF), e.Registers.Get(register.T1))
}

// Invariant #13: mult(INT32_MIN, -1) -> hi=0, lo=0x80000000.
func TestMultInt32MinByNegOne(t *testing.T) {
	s := assembleAll(t, `
lui $t0, 0x8000
addi $t1, $zero, -1
mult $t0, $t1
`)
	e, _, _ := newEngine(s, "")
	_, err := e.Run()
	require.NoError(t, err)
	assert.Equal(t, uint32(0), e.Registers.HI())
	assert.Equal(t, uint32(0x80000000), e.Registers.LO())
}

func TestDivisionByZeroIsDiagnosticNotPanic(t *testing.T) {
	s := assembleAll(t, `
addi $t0, $zero, 5
div $t0, $zero
`)
	e, _, stderr := newEngine(s, "")
	_, err := e.Run()
	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "division by zero")
	assert.Equal(t, uint32(0), e.Registers.HI())
	assert.Equal(t, uint32(0), e.Registers.LO())
}

func TestJumpAndLinkSetsRa(t *testing.T) {
	s := assembleAll(t, `
jal target
addi $t0, $zero, 1
target: addi $t1, $zero, 2
`)
	e, _, _ := newEngine(s, "")
	_, err := e.Run()
	require.NoError(t, err)
	assert.Equal(t, assembler.TextBase+4, e.Registers.Get(register.Ra))
}

func TestUndefinedLabelReferenceIsAnError(t *testing.T) {
	s := assembler.New(assembler.TextBase, assembler.DataBase, assembler.StackTop)
	loc := s.NextLocation()
	instrs, perr := parser.ParseLine("j nowhere", loc, 1, "")
	require.Nil(t, perr)
	_, err := s.Assemble(instrs)
	require.NoError(t, err)

	e, _, _ := newEngine(s, "")
	_, err = e.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undefined label")
}

func TestSyscallPrintIntAndExit(t *testing.T) {
	s := assembleAll(t, `
addi $a0, $zero, 42
addi $v0, $zero, 1
syscall
addi $v0, $zero, 10
syscall
addi $t0, $zero, 999
`)
	e, stdout, _ := newEngine(s, "")
	_, err := e.Run()
	require.NoError(t, err)
	assert.Equal(t, "42", stdout.String())
	assert.True(t, e.Exited)
	assert.NotEqual(t, uint32(999), e.Registers.Get(register.T0))
}

func TestSyscallReadInt(t *testing.T) {
	s := assembleAll(t, `
addi $v0, $zero, 5
syscall
`)
	e, _, _ := newEngine(s, "123\n")
	_, err := e.Run()
	require.NoError(t, err)
	assert.Equal(t, uint32(123), e.Registers.Get(register.V0))
}

func TestZeroRegisterDiscardsWrites(t *testing.T) {
	s := assembleAll(t, `addi $zero, $zero, 5`)
	e, _, _ := newEngine(s, "")
	_, err := e.Run()
	require.NoError(t, err)
	assert.Equal(t, uint32(0), e.Registers.Get(register.Zero))
}

// New must start pc/$sp from the assembler state's own bases, not the
// package defaults, so a config-overridden text base actually takes
// effect.
func TestNewHonorsCustomSegmentBases(t *testing.T) {
	const customText = 0x00500000
	const customStack = 0x7FFF0000
	s := assembler.New(customText, assembler.DataBase, customStack)

	e := cpu.New(s, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	assert.Equal(t, uint32(customText), e.CurrentPC())
	assert.Equal(t, uint32(customStack), e.Registers.Get(register.Sp))
}
