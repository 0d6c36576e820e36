package assembler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mips32repl/mips32repl/assembler"
	"github.com/mips32repl/mips32repl/asmimm"
	"github.com/mips32repl/mips32repl/parser"
	"github.com/mips32repl/mips32repl/register"
)

func TestEncodeALUR(t *testing.T) {
	in := &parser.Instruction{
		Kind: parser.KindALUR,
		ALUR: &parser.ALURData{Op: parser.OpAddS, HasDest: true, Dest: register.T2, Src1: register.T0, Src2: register.T1},
	}
	word, ok := assembler.EncodeInstruction(in)
	assert.True(t, ok)
	assert.Equal(t, uint32(0x20), word&0x3F, "funct field should be ADD's 0x20")
	assert.Equal(t, uint32(register.T2), (word>>11)&0x1F, "rd field should be $t2")
}

func TestEncodeSyscall(t *testing.T) {
	in := &parser.Instruction{Kind: parser.KindSyscall}
	word, ok := assembler.EncodeInstruction(in)
	assert.True(t, ok)
	assert.Equal(t, uint32(0x0C), word&0x3F)
}

func TestEncodeALUI(t *testing.T) {
	imm, _ := asmimm.Parse16("5")
	in := &parser.Instruction{
		Kind: parser.KindALUI,
		ALUI: &parser.ALUIData{Op: parser.OpAddS, Dest: register.T0, Src: register.Zero, Imm: imm},
	}
	word, ok := assembler.EncodeInstruction(in)
	assert.True(t, ok)
	assert.Equal(t, uint32(0x08), word>>26, "opcode should be ADDI's 0x08")
	assert.Equal(t, uint32(5), word&0xFFFF)
}

func TestEncodeDirectiveHasNoRule(t *testing.T) {
	in := &parser.Instruction{Kind: parser.KindDirective, Directive: &parser.DirectiveData{Kind: parser.DirText}}
	_, ok := assembler.EncodeInstruction(in)
	assert.False(t, ok)
}
