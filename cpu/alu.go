package cpu

import (
	"fmt"

	"github.com/mips32repl/mips32repl/bits"
	"github.com/mips32repl/mips32repl/parser"
)

// execALUR dispatches a register-to-register ALU instruction. mfhi
// and mflo read hi/lo directly rather than through Src1/Src2, since
// those special registers have no register.Index.
func (e *Engine) execALUR(d *parser.ALURData) error {
	switch d.Op {
	case parser.OpMoveHI:
		e.Registers.Set(d.Dest, e.Registers.HI())
		return nil
	case parser.OpMoveLO:
		e.Registers.Set(d.Dest, e.Registers.LO())
		return nil
	case parser.OpMultS, parser.OpMultU, parser.OpDivS, parser.OpDivU:
		return e.execMultDiv(d.Op, e.Registers.Get(d.Src1), e.Registers.Get(d.Src2))
	}

	s1 := e.Registers.Get(d.Src1)
	s2 := e.Registers.Get(d.Src2)

	var result uint32
	switch d.Op {
	case parser.OpSllV:
		result = s1 << bits.MaskShiftAmount(s2)
	case parser.OpSraV:
		result = uint32(int32(s1) >> bits.MaskShiftAmount(s2))
	case parser.OpSrlV:
		result = s1 >> bits.MaskShiftAmount(s2)
	default:
		r, ok := applyBinaryOp(d.Op, s1, s2)
		if !ok {
			return fmt.Errorf("fatal: unsupported ALU_R op")
		}
		result = r
	}

	if d.HasDest {
		e.Registers.Set(d.Dest, result)
	}
	return nil
}

// execALUI dispatches a register-and-immediate ALU instruction. lui
// and the fixed-shift-amount ops (sll/sra/srl) have no generic
// two-register shape, so they're handled directly.
func (e *Engine) execALUI(d *parser.ALUIData) {
	var result uint32
	switch d.Op {
	case parser.OpLui:
		result = uint32(d.Imm.Raw()) << 16
	case parser.OpSll:
		result = e.Registers.Get(d.Src) << uint32(d.Imm.Raw())
	case parser.OpSra:
		result = uint32(int32(e.Registers.Get(d.Src)) >> uint32(d.Imm.Raw()))
	case parser.OpSrl:
		result = e.Registers.Get(d.Src) >> uint32(d.Imm.Raw())
	case parser.OpAnd, parser.OpOr, parser.OpXor:
		result, _ = applyBinaryOp(d.Op, e.Registers.Get(d.Src), d.Imm.ZeroExtended())
	default:
		result, _ = applyBinaryOp(d.Op, e.Registers.Get(d.Src), bits.AsUint32(d.Imm.SignExtended()))
	}
	e.Registers.Set(d.Dest, result)
}

// applyBinaryOp is the shared symmetric-operand table for ALU_R and
// ALU_I instructions whose second operand role is interchangeable
// between a register and a sign/zero-extended immediate. Wrapping
// add/sub are bit-identical whether interpreted as signed or
// unsigned, so addS/addU (and subS/subU) share one case.
func applyBinaryOp(op parser.AluOp, a, b uint32) (uint32, bool) {
	switch op {
	case parser.OpAddS, parser.OpAddU:
		return a + b, true
	case parser.OpSubS, parser.OpSubU:
		return a - b, true
	case parser.OpAnd:
		return a & b, true
	case parser.OpOr:
		return a | b, true
	case parser.OpXor:
		return a ^ b, true
	case parser.OpNor:
		return ^(a | b), true
	case parser.OpSltS:
		if int32(a) < int32(b) {
			return 1, true
		}
		return 0, true
	case parser.OpSltU:
		if a < b {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// execMultDiv performs the 64-bit multiply/divide family, writing hi
// and lo directly. Division by zero is guarded rather than left to
// trap: the host language here panics on integer division by zero,
// unlike the host the original design assumed, so a zero divisor is
// treated as an execution warning (diagnostic, hi/lo left unchanged)
// instead of crashing the interpreter.
func (e *Engine) execMultDiv(op parser.AluOp, a, b uint32) error {
	switch op {
	case parser.OpMultS:
		product := int64(int32(a)) * int64(int32(b))
		e.Registers.SetHI(uint32(uint64(product) >> 32))
		e.Registers.SetLO(uint32(product))
	case parser.OpMultU:
		product := uint64(a) * uint64(b)
		e.Registers.SetHI(uint32(product >> 32))
		e.Registers.SetLO(uint32(product))
	case parser.OpDivS:
		if b == 0 {
			fmt.Fprintf(e.Stderr, "division by zero\n")
			return nil
		}
		e.Registers.SetLO(uint32(int32(a) / int32(b)))
		e.Registers.SetHI(uint32(int32(a) % int32(b)))
	case parser.OpDivU:
		if b == 0 {
			fmt.Fprintf(e.Stderr, "division by zero\n")
			return nil
		}
		e.Registers.SetLO(a / b)
		e.Registers.SetHI(a % b)
	}
	return nil
}
