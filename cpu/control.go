package cpu

import (
	"fmt"

	"github.com/mips32repl/mips32repl/parser"
)

// resolveLabel looks up a label's address, the reference error raised
// when assembly forward-referenced a label that was never defined.
func (e *Engine) resolveLabel(name string) (uint32, error) {
	addr, ok := e.Asm.LabelsToLocations[name]
	if !ok {
		return 0, fmt.Errorf("undefined label %q", name)
	}
	return addr, nil
}

// resolveJumpTarget computes the destination of a j/jal/jr/jalr, either
// straight from a register or by resolving the target label.
func (e *Engine) resolveJumpTarget(j *parser.JumpData) (uint32, error) {
	if j.Target.IsRegister {
		return e.Registers.Get(j.Target.Reg), nil
	}
	return e.resolveLabel(j.Target.Label)
}

// evaluateBranch tests a branch's predicate against its operand(s).
// Single-source predicates (bgez/bltz/bgtz/blez) carry $zero in Src2 by
// construction, so the comparison is always framed as Src1 vs Src2.
func (e *Engine) evaluateBranch(b *parser.BranchData) (bool, error) {
	s1 := int32(e.Registers.Get(b.Src1))
	s2 := int32(e.Registers.Get(b.Src2))

	switch b.Pred {
	case parser.PredEQ:
		return s1 == s2, nil
	case parser.PredNE:
		return s1 != s2, nil
	case parser.PredGE0:
		return s1 >= 0, nil
	case parser.PredLT0:
		return s1 < 0, nil
	case parser.PredGT0:
		return s1 > 0, nil
	case parser.PredLE0:
		return s1 <= 0, nil
	default:
		return false, fmt.Errorf("fatal: unsupported branch predicate")
	}
}
