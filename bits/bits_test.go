package bits_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mips32repl/mips32repl/bits"
)

func TestSignExtend16(t *testing.T) {
	assert.Equal(t, int32(-1), bits.SignExtend16(0xFFFF))
	assert.Equal(t, int32(1), bits.SignExtend16(0x0001))
	assert.Equal(t, int32(-32768), bits.SignExtend16(0x8000))
}

func TestZeroExtend16(t *testing.T) {
	assert.Equal(t, uint32(0xFFFF), bits.ZeroExtend16(0xFFFF))
}

func TestSplitAndJoinWord(t *testing.T) {
	low, high := bits.SplitWord(0x12345678)
	assert.Equal(t, uint16(0x5678), low)
	assert.Equal(t, uint16(0x1234), high)
	assert.Equal(t, uint32(0x12345678), bits.JoinHalves(low, high))
}

func TestBytesRoundTrip(t *testing.T) {
	for _, v := range []uint32{0, 1, 0x12345678, 0xFFFFFFFF, 0x80000000} {
		b := bits.BytesBE(v)
		got := bits.WordFromBytesBE(b[0], b[1], b[2], b[3])
		assert.Equal(t, v, got)
	}
}

func TestHalfBytesRoundTrip(t *testing.T) {
	for _, v := range []uint16{0, 1, 0x1234, 0xFFFF} {
		b := bits.HalfBytesBE(v)
		assert.Equal(t, v, bits.HalfFromBytesBE(b[0], b[1]))
	}
}

func TestMaskShiftAmount(t *testing.T) {
	assert.Equal(t, uint32(1), bits.MaskShiftAmount(33))
	assert.Equal(t, uint32(0), bits.MaskShiftAmount(32))
	assert.Equal(t, uint32(31), bits.MaskShiftAmount(31))
}

func TestPrintableOrDot(t *testing.T) {
	assert.Equal(t, byte('A'), bits.PrintableOrDot('A'))
	assert.Equal(t, byte('.'), bits.PrintableOrDot(0x00))
	assert.Equal(t, byte('.'), bits.PrintableOrDot(0x7F))
}

func TestFitsSignedBits(t *testing.T) {
	assert.True(t, bits.FitsSignedBits(-32768, 16))
	assert.True(t, bits.FitsSignedBits(32767, 16))
	assert.False(t, bits.FitsSignedBits(32768, 16))
	assert.False(t, bits.FitsSignedBits(-32769, 16))
}

func TestFitsUnsignedBits(t *testing.T) {
	assert.True(t, bits.FitsUnsignedBits(255, 8))
	assert.False(t, bits.FitsUnsignedBits(256, 8))
}
