package asmimm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mips32repl/mips32repl/asmimm"
)

func TestParse16Decimal(t *testing.T) {
	im, err := asmimm.Parse16("5")
	require.NoError(t, err)
	assert.Equal(t, int32(5), im.SignExtended())
}

func TestParse16Negative(t *testing.T) {
	im, err := asmimm.Parse16("-1")
	require.NoError(t, err)
	assert.Equal(t, int32(-1), im.SignExtended())
	assert.Equal(t, uint32(0xFFFF), im.ZeroExtended())
}

func TestParse16Hex(t *testing.T) {
	im, err := asmimm.Parse16("0xFFFF")
	require.NoError(t, err)
	assert.Equal(t, int32(-1), im.SignExtended())
}

func TestParse16OutOfRange(t *testing.T) {
	_, err := asmimm.Parse16("100000")
	assert.Error(t, err)
}

func TestParseShiftAmount(t *testing.T) {
	v, err := asmimm.ParseShiftAmount("31")
	require.NoError(t, err)
	assert.Equal(t, uint32(31), v)

	_, err = asmimm.ParseShiftAmount("32")
	assert.Error(t, err)

	_, err = asmimm.ParseShiftAmount("-1")
	assert.Error(t, err)
}

func TestParseWordAndSplitWide(t *testing.T) {
	v, err := asmimm.ParseWord("0x12345678")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), v)

	low, high := asmimm.SplitWide(v)
	assert.Equal(t, uint32(0x5678), low.ZeroExtended())
	assert.Equal(t, uint32(0x1234), high.ZeroExtended())
}
