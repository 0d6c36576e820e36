package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mips32repl/mips32repl/parser"
	"github.com/mips32repl/mips32repl/register"
)

func TestParseLineEmptyIsNonExecutable(t *testing.T) {
	instrs, err := parser.ParseLine("", 0x400000, 1, "")
	require.Nil(t, err)
	require.Len(t, instrs, 1)
	assert.Equal(t, parser.KindNonExecutable, instrs[0].Kind)
}

func TestParseLineCommentOnlyIsNonExecutable(t *testing.T) {
	instrs, err := parser.ParseLine("  # nothing here", 0x400000, 1, "")
	require.Nil(t, err)
	require.Len(t, instrs, 1)
	assert.Equal(t, parser.KindNonExecutable, instrs[0].Kind)
	assert.Equal(t, "nothing here", instrs[0].Comment)
}

func TestParseLineLabelOnlyIsNonExecutable(t *testing.T) {
	instrs, err := parser.ParseLine("done:", 0x400000, 1, "")
	require.Nil(t, err)
	require.Len(t, instrs, 1)
	assert.Equal(t, parser.KindNonExecutable, instrs[0].Kind)
	assert.Equal(t, []string{"done"}, instrs[0].Labels)
}

func TestParseLineSimpleALUR(t *testing.T) {
	instrs, err := parser.ParseLine("add $t2, $t0, $t1", 0x400000, 1, "")
	require.Nil(t, err)
	require.Len(t, instrs, 1)
	in := instrs[0]
	assert.Equal(t, parser.KindALUR, in.Kind)
	assert.Equal(t, parser.OpAddS, in.ALUR.Op)
	assert.Equal(t, register.T2, in.ALUR.Dest)
	assert.Equal(t, register.T0, in.ALUR.Src1)
	assert.Equal(t, register.T1, in.ALUR.Src2)
	assert.EqualValues(t, 4, in.PCIncrement)
}

func TestParseLineLiScenarioD(t *testing.T) {
	instrs, err := parser.ParseLine("li $t0, 0x12345678", 0x400000, 1, "")
	require.Nil(t, err)
	require.Len(t, instrs, 2)
	lui, ori := instrs[0], instrs[1]
	assert.Equal(t, parser.OpLui, lui.ALUI.Op)
	assert.EqualValues(t, 0x1234, lui.ALUI.Imm.Raw())
	assert.Equal(t, parser.OpOr, ori.ALUI.Op)
	assert.EqualValues(t, 0x5678, ori.ALUI.Imm.Raw())
	assert.EqualValues(t, 0x400000, lui.Location)
	assert.EqualValues(t, 0x400004, ori.Location)
}

func TestParseLineMulImmediateScenarioC(t *testing.T) {
	instrs, err := parser.ParseLine("mul $t0, $t1, 5", 0x400000, 1, "")
	require.Nil(t, err)
	require.Len(t, instrs, 3)
	li, mult, mflo := instrs[0], instrs[1], instrs[2]
	assert.Equal(t, register.At, li.ALUI.Dest)
	assert.EqualValues(t, 5, li.ALUI.Imm.Raw())
	assert.Equal(t, parser.OpMultS, mult.ALUR.Op)
	assert.Equal(t, register.T1, mult.ALUR.Src1)
	assert.Equal(t, register.At, mult.ALUR.Src2)
	assert.Equal(t, parser.OpMoveLO, mflo.ALUR.Op)
	assert.Equal(t, register.T0, mflo.ALUR.Dest)
	total := li.PCIncrement + mult.PCIncrement + mflo.PCIncrement
	assert.EqualValues(t, 12, total)
}

func TestParseLineMemory(t *testing.T) {
	instrs, err := parser.ParseLine("lw $t1, 0($sp)", 0x400000, 1, "")
	require.Nil(t, err)
	require.Len(t, instrs, 1)
	m := instrs[0].Mem
	assert.False(t, m.Storing)
	assert.Equal(t, 2, m.SizePow2)
	assert.Equal(t, register.T1, m.Reg)
	assert.Equal(t, register.Sp, m.BaseReg)
}

func TestParseLineAsciizScenarioF(t *testing.T) {
	instrs, err := parser.ParseLine(`msg: .asciiz "hi\n"`, 0x10000000, 1, "")
	require.Nil(t, err)
	require.Len(t, instrs, 1)
	in := instrs[0]
	assert.Equal(t, []string{"msg"}, in.Labels)
	assert.Equal(t, parser.DirAsciiz, in.Directive.Kind)
	assert.Equal(t, []byte{'h', 'i', '\n', 0x00}, in.Directive.Bytes)
}

func TestParseLineUnknownMnemonic(t *testing.T) {
	_, err := parser.ParseLine("frobnicate $t0", 0x400000, 1, "")
	require.NotNil(t, err)
	assert.Equal(t, parser.ErrorInvalidMnemonic, err.Kind)
}

func TestParseLineWrongArity(t *testing.T) {
	_, err := parser.ParseLine("add $t0, $t1", 0x400000, 1, "")
	require.NotNil(t, err)
	assert.Equal(t, parser.ErrorInvalidArity, err.Kind)
}

func TestParseLineBadRegister(t *testing.T) {
	_, err := parser.ParseLine("add $bogus, $t0, $t1", 0x400000, 1, "")
	require.NotNil(t, err)
	assert.Equal(t, parser.ErrorInvalidRegister, err.Kind)
}

func TestParseLineBranch(t *testing.T) {
	instrs, err := parser.ParseLine("bne $t0, $t1, loop", 0x400000, 1, "")
	require.Nil(t, err)
	b := instrs[0].Branch
	assert.Equal(t, parser.PredNE, b.Pred)
	assert.Equal(t, "loop", b.Label)
}

func TestParseLineJumpLabel(t *testing.T) {
	instrs, err := parser.ParseLine("j later", 0x400000, 1, "")
	require.Nil(t, err)
	j := instrs[0].Jump
	assert.False(t, j.Target.IsRegister)
	assert.Equal(t, "later", j.Target.Label)
}

func TestParseLineDivRealVsPseudo(t *testing.T) {
	real, err := parser.ParseLine("div $t0, $t1", 0x400000, 1, "")
	require.Nil(t, err)
	require.Len(t, real, 1)
	assert.Equal(t, parser.OpDivS, real[0].ALUR.Op)
	assert.False(t, real[0].ALUR.HasDest)

	pseudo, err := parser.ParseLine("div $t2, $t0, $t1", 0x400000, 1, "")
	require.Nil(t, err)
	require.Len(t, pseudo, 2)
	assert.Equal(t, parser.OpMoveLO, pseudo[1].ALUR.Op)
}

func TestParseLineRemPseudo(t *testing.T) {
	instrs, err := parser.ParseLine("rem $t2, $t0, $t1", 0x400000, 1, "")
	require.Nil(t, err)
	require.Len(t, instrs, 2)
	assert.Equal(t, parser.OpMoveHI, instrs[1].ALUR.Op)
}

func TestParseLineDirectiveTextData(t *testing.T) {
	instrs, err := parser.ParseLine(".data", 0x10000000, 1, "")
	require.Nil(t, err)
	assert.Equal(t, parser.DirData, instrs[0].Directive.Kind)
	assert.EqualValues(t, 0, instrs[0].PCIncrement)
}

func TestParseLineAlignRejectsBadFactor(t *testing.T) {
	_, err := parser.ParseLine(".align 3", 0x10000000, 1, "")
	require.NotNil(t, err)
	assert.Equal(t, parser.ErrorAlignFactor, err.Kind)
}

func TestParseLineByteRangeCheck(t *testing.T) {
	_, err := parser.ParseLine(".byte 300", 0x10000000, 1, "")
	require.NotNil(t, err)
}

func TestRenderRoundTrip(t *testing.T) {
	instrs, err := parser.ParseLine("add $t2, $t0, $t1", 0x400000, 1, "")
	require.Nil(t, err)
	assert.Equal(t, "add $t2, $t0, $t1", parser.Render(instrs[0]))
}

func TestRenderMemoryRoundTrip(t *testing.T) {
	instrs, err := parser.ParseLine("lw $t1, 0($sp)", 0x400000, 1, "")
	require.Nil(t, err)
	assert.Equal(t, "lw $t1, 0($sp)", parser.Render(instrs[0]))
}
