package assembler

import (
	"github.com/mips32repl/mips32repl/parser"
	"github.com/mips32repl/mips32repl/register"
)

// EncodeInstruction reduces a simple instruction to its standard
// MIPS32 R/I/J-type 32-bit machine word, the way the teacher's encoder
// dispatches per-mnemonic but keyed here on the parser's Kind/op tags
// instead of a mnemonic string. ok is false only for an instruction
// shape the encoder has no machine-word rule for (directives and
// non-executable lines never reach here; this guards fatal-path
// instructions only).
func EncodeInstruction(in *parser.Instruction) (word uint32, ok bool) {
	switch in.Kind {
	case parser.KindALUR:
		return encodeALUR(in.ALUR), true
	case parser.KindALUI:
		return encodeALUI(in.ALUI), true
	case parser.KindMemory:
		return encodeMemory(in.Mem), true
	case parser.KindJump:
		return encodeJump(in.Jump, in.Location), true
	case parser.KindBranch:
		return encodeBranch(in.Branch), true
	case parser.KindSyscall:
		return rType(0, 0, 0, 0, 0, functSyscall), true
	default:
		return 0, false
	}
}

// Standard MIPS32 R-type funct codes (opcode 0).
const (
	functSll  = 0x00
	functSrl  = 0x02
	functSra  = 0x03
	functSllv = 0x04
	functSrlv = 0x06
	functSrav = 0x07
	functJr   = 0x08
	functJalr = 0x09
	functSyscall = 0x0C
	functMfhi = 0x10
	functMflo = 0x12
	functMult = 0x18
	functMultu = 0x19
	functDiv  = 0x1A
	functDivu = 0x1B
	functAdd  = 0x20
	functAddu = 0x21
	functSub  = 0x22
	functSubu = 0x23
	functAnd  = 0x24
	functOr   = 0x25
	functXor  = 0x26
	functNor  = 0x27
	functSlt  = 0x2A
	functSltu = 0x2B
)

// I-type and J-type opcodes.
const (
	opRegimm = 0x01 // bltz/bgez family
	opJ      = 0x02
	opJal    = 0x03
	opBeq    = 0x04
	opBne    = 0x05
	opBlez   = 0x06
	opBgtz   = 0x07
	opAddi   = 0x08
	opAddiu  = 0x09
	opSlti   = 0x0A
	opSltiu  = 0x0B
	opAndi   = 0x0C
	opOri    = 0x0D
	opXori   = 0x0E
	opLui    = 0x0F
	opLb     = 0x20
	opLh     = 0x21
	opLw     = 0x23
	opSb     = 0x28
	opSh     = 0x29
	opSw     = 0x2B
)

func rType(opcode, rs, rt, rd, shamt, funct uint32) uint32 {
	return opcode<<26 | rs<<21 | rt<<16 | rd<<11 | shamt<<5 | funct
}

func iType(opcode, rs, rt, imm uint32) uint32 {
	return opcode<<26 | rs<<21 | rt<<16 | (imm & 0xFFFF)
}

func jType(opcode, target uint32) uint32 {
	return opcode<<26 | (target & 0x03FFFFFF)
}

func reg(i register.Index) uint32 {
	return uint32(i)
}

var aluRFunct = map[parser.AluOp]uint32{
	parser.OpAddS: functAdd, parser.OpAddU: functAddu,
	parser.OpSubS: functSub, parser.OpSubU: functSubu,
	parser.OpAnd: functAnd, parser.OpOr: functOr, parser.OpXor: functXor, parser.OpNor: functNor,
	parser.OpSltS: functSlt, parser.OpSltU: functSltu,
	parser.OpSllV: functSllv, parser.OpSraV: functSrav, parser.OpSrlV: functSrlv,
	parser.OpMultS: functMult, parser.OpMultU: functMultu,
	parser.OpDivS: functDiv, parser.OpDivU: functDivu,
	parser.OpMoveHI: functMfhi, parser.OpMoveLO: functMflo,
}

func encodeALUR(d *parser.ALURData) uint32 {
	funct, ok := aluRFunct[d.Op]
	if !ok {
		return 0
	}
	switch d.Op {
	case parser.OpMoveHI, parser.OpMoveLO:
		return rType(0, 0, 0, reg(d.Dest), 0, funct)
	case parser.OpMultS, parser.OpMultU, parser.OpDivS, parser.OpDivU:
		return rType(0, reg(d.Src1), reg(d.Src2), 0, 0, funct)
	case parser.OpSllV, parser.OpSraV, parser.OpSrlV:
		return rType(0, reg(d.Src2), reg(d.Src1), reg(d.Dest), 0, funct)
	default:
		return rType(0, reg(d.Src1), reg(d.Src2), reg(d.Dest), 0, funct)
	}
}

func encodeALUI(d *parser.ALUIData) uint32 {
	switch d.Op {
	case parser.OpAddS:
		return iType(opAddi, reg(d.Src), reg(d.Dest), uint32(d.Imm.Raw()))
	case parser.OpAddU:
		return iType(opAddiu, reg(d.Src), reg(d.Dest), uint32(d.Imm.Raw()))
	case parser.OpAnd:
		return iType(opAndi, reg(d.Src), reg(d.Dest), uint32(d.Imm.Raw()))
	case parser.OpOr:
		return iType(opOri, reg(d.Src), reg(d.Dest), uint32(d.Imm.Raw()))
	case parser.OpXor:
		return iType(opXori, reg(d.Src), reg(d.Dest), uint32(d.Imm.Raw()))
	case parser.OpSltS:
		return iType(opSlti, reg(d.Src), reg(d.Dest), uint32(d.Imm.Raw()))
	case parser.OpSltU:
		return iType(opSltiu, reg(d.Src), reg(d.Dest), uint32(d.Imm.Raw()))
	case parser.OpLui:
		return iType(opLui, 0, reg(d.Dest), uint32(d.Imm.Raw()))
	case parser.OpSll:
		return rType(0, 0, reg(d.Src), reg(d.Dest), uint32(d.Imm.Raw()), functSll)
	case parser.OpSra:
		return rType(0, 0, reg(d.Src), reg(d.Dest), uint32(d.Imm.Raw()), functSra)
	case parser.OpSrl:
		return rType(0, 0, reg(d.Src), reg(d.Dest), uint32(d.Imm.Raw()), functSrl)
	default:
		return 0
	}
}

func encodeMemory(d *parser.MemoryData) uint32 {
	var opcode uint32
	switch {
	case !d.Storing && d.SizePow2 == 0:
		opcode = opLb
	case !d.Storing && d.SizePow2 == 1:
		opcode = opLh
	case !d.Storing && d.SizePow2 == 2:
		opcode = opLw
	case d.Storing && d.SizePow2 == 0:
		opcode = opSb
	case d.Storing && d.SizePow2 == 1:
		opcode = opSh
	case d.Storing && d.SizePow2 == 2:
		opcode = opSw
	}
	return iType(opcode, reg(d.BaseReg), reg(d.Reg), uint32(d.OffsetImm.Raw()))
}

func encodeJump(d *parser.JumpData, location uint32) uint32 {
	if d.Target.IsRegister {
		funct, rd := uint32(functJr), uint32(0)
		if d.Link {
			funct, rd = functJalr, reg(register.Ra)
		}
		return rType(0, reg(d.Target.Reg), 0, rd, 0, funct)
	}
	opcode := uint32(opJ)
	if d.Link {
		opcode = opJal
	}
	// The label's address is only known at execute time, so the
	// stored word encodes a placeholder target field of zero; the CPU
	// resolves jumps to labels directly through the label map rather
	// than decoding this field back out.
	return jType(opcode, 0)
}

func encodeBranch(d *parser.BranchData) uint32 {
	switch d.Pred {
	case parser.PredEQ:
		return iType(opBeq, reg(d.Src1), reg(d.Src2), 0)
	case parser.PredNE:
		return iType(opBne, reg(d.Src1), reg(d.Src2), 0)
	case parser.PredGT0:
		return iType(opBgtz, reg(d.Src1), 0, 0)
	case parser.PredLE0:
		return iType(opBlez, reg(d.Src1), 0, 0)
	case parser.PredGE0:
		rt := uint32(0x01)
		if d.Link {
			rt = 0x11
		}
		return iType(opRegimm, reg(d.Src1), rt, 0)
	case parser.PredLT0:
		rt := uint32(0x00)
		if d.Link {
			rt = 0x10
		}
		return iType(opRegimm, reg(d.Src1), rt, 0)
	default:
		return 0
	}
}
