package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mips32repl/mips32repl/memory"
)

func TestUnmappedReadIsZero(t *testing.T) {
	m := memory.New()
	assert.Equal(t, byte(0), m.ReadByte(0x12345678))
}

func TestByteReadWrite(t *testing.T) {
	m := memory.New()
	m.WriteByte(0x100, 0xAB)
	assert.Equal(t, byte(0xAB), m.ReadByte(0x100))
}

func TestWordRoundTripBigEndian(t *testing.T) {
	m := memory.New()
	require.NoError(t, m.WriteWord(0x1000, 0x12345678))
	assert.Equal(t, byte(0x12), m.ReadByte(0x1000))
	assert.Equal(t, byte(0x34), m.ReadByte(0x1001))
	assert.Equal(t, byte(0x56), m.ReadByte(0x1002))
	assert.Equal(t, byte(0x78), m.ReadByte(0x1003))

	v, err := m.ReadWord(0x1000)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), v)
}

func TestWordUnaligned(t *testing.T) {
	m := memory.New()
	_, err := m.ReadWord(0x1001)
	assert.Error(t, err)
	assert.Error(t, m.WriteWord(0x1002, 1))
}

func TestHalfUnaligned(t *testing.T) {
	m := memory.New()
	_, err := m.ReadHalf(0x1001)
	assert.Error(t, err)
}

func TestWriteHalfUnalignedBypassesCheck(t *testing.T) {
	m := memory.New()
	m.WriteHalfUnaligned(0x1001, 0xBEEF)
	assert.Equal(t, byte(0xBE), m.ReadByte(0x1001))
	assert.Equal(t, byte(0xEF), m.ReadByte(0x1002))
}

func TestLoadBytesAndGetBytes(t *testing.T) {
	m := memory.New()
	m.LoadBytes(0x2000, []byte{0x68, 0x69, 0x0A, 0x00})
	assert.Equal(t, []byte{0x68, 0x69, 0x0A, 0x00}, m.GetBytes(0x2000, 4))
}

func TestReadCString(t *testing.T) {
	m := memory.New()
	m.LoadBytes(0x3000, []byte("hi\x00trailing"))
	assert.Equal(t, []byte("hi"), m.ReadCString(0x3000))
}
