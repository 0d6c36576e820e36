package parser

import (
	"github.com/mips32repl/mips32repl/asmimm"
	"github.com/mips32repl/mips32repl/register"
)

// Kind identifies which variant of Instruction a value holds, the way
// the teacher's encoder switches on a mnemonic-derived tag rather than
// a stored function pointer.
type Kind int

const (
	KindNonExecutable Kind = iota
	KindDirective
	KindALUR
	KindALUI
	KindMemory
	KindJump
	KindBranch
	KindSyscall
)

func (k Kind) String() string {
	switch k {
	case KindNonExecutable:
		return "NonExecutable"
	case KindDirective:
		return "Directive"
	case KindALUR:
		return "ALU_R"
	case KindALUI:
		return "ALU_I"
	case KindMemory:
		return "Memory"
	case KindJump:
		return "Jump"
	case KindBranch:
		return "Branch"
	case KindSyscall:
		return "Syscall"
	default:
		return "Unknown"
	}
}

// AluOp tags the closed set of ALU behaviors an ALU_R or ALU_I
// instruction can carry. The executor dispatches on the tag rather
// than storing a function value, keeping instructions copyable.
type AluOp int

const (
	OpAddS  AluOp = iota // add / addi: signed add, wrapping
	OpAddU               // addu / addiu: unsigned add, wrapping
	OpSubS               // sub: signed subtract, wrapping
	OpSubU               // subu: unsigned subtract, wrapping
	OpAnd                // and / andi
	OpOr                 // or / ori
	OpXor                // xor / xori
	OpNor                // nor
	OpSltS               // slt / slti: signed less-than
	OpSltU               // sltu / sltiu: unsigned less-than
	OpSll                // sll: shift left logical by immediate
	OpSra                // sra: shift right arithmetic by immediate
	OpSrl                // srl: shift right logical by immediate
	OpSllV               // sllv: shift left logical by register (low 5 bits)
	OpSraV               // srav: shift right arithmetic by register
	OpSrlV               // srlv: shift right logical by register
	OpLui                // lui: imm << 16
	OpMoveHI             // mfhi: copy hi into dest
	OpMoveLO             // mflo: copy lo into dest
	OpMultS              // mult: signed 64-bit product into (hi, lo)
	OpMultU              // multu: unsigned 64-bit product into (hi, lo)
	OpDivS               // div: signed (remainder, quotient) into (hi, lo)
	OpDivU               // divu: unsigned (remainder, quotient) into (hi, lo)
)

// Is64Bit reports whether op writes both hi and lo (mult/div family)
// rather than a single 32-bit destination.
func (op AluOp) Is64Bit() bool {
	switch op {
	case OpMultS, OpMultU, OpDivS, OpDivU:
		return true
	default:
		return false
	}
}

// ALURData is an ALU_R instruction: op(src1, src2) -> dest, or for the
// 64-bit ops, op(src1, src2) -> (hi, lo) with no direct dest.
type ALURData struct {
	Op        AluOp
	HasDest   bool
	Dest      register.Index
	Src1      register.Index
	Src2      register.Index
}

// ALUIData is an ALU_I instruction: op(src, imm) -> dest.
type ALUIData struct {
	Op   AluOp
	Dest register.Index
	Src  register.Index
	Imm  asmimm.Immediate
}

// MemoryData is a load or store instruction.
type MemoryData struct {
	Storing   bool
	SizePow2  int // 0=byte, 1=halfword, 2=word
	Reg       register.Index
	OffsetImm asmimm.Immediate
	BaseReg   register.Index
}

// JumpTarget is either a computed register target (jr/jalr) or a
// label to resolve at execute time (j/jal).
type JumpTarget struct {
	IsRegister bool
	Reg        register.Index
	Label      string
}

// JumpData is a j/jal/jr/jalr instruction.
type JumpData struct {
	Link   bool
	Target JumpTarget
}

// BranchPredicate is the closed set of two-operand comparisons a
// branch instruction can test.
type BranchPredicate int

const (
	PredEQ  BranchPredicate = iota // beq
	PredNE                         // bne
	PredGE0                        // bgez
	PredLT0                        // bltz
	PredGT0                        // bgtz
	PredLE0                        // blez
)

// BranchData is a beq/bne/bgez/bgezal/bltz/bltzal/bgtz/blez
// instruction. Src2 is $zero for the single-source forms.
type BranchData struct {
	Pred  BranchPredicate
	Link  bool
	Src1  register.Index
	Src2  register.Index
	Label string
}

// DirectiveKind is the closed set of assembler directives recognized.
type DirectiveKind int

const (
	DirText DirectiveKind = iota
	DirData
	DirGlobal
	DirAlign
	DirSpace
	DirByte
	DirHalf
	DirWord
	DirAscii
	DirAsciiz
)

// DirectiveData carries a directive's parsed arguments. Numbers holds
// the parsed integer list for .align/.space/.byte/.half/.word; Bytes
// holds the decoded byte payload for .ascii/.asciiz; Label holds the
// symbol named by .globl.
type DirectiveData struct {
	Kind    DirectiveKind
	Numbers []int64
	Bytes   []byte
	Label   string
}

// Instruction is a single assembled unit: a simple machine instruction,
// a directive, or a non-executable label/comment-only line. Instances
// are immutable once constructed, except that a NonExecutable slot may
// be merged with a later overwrite (see assembler.State).
type Instruction struct {
	Source      string // raw source line, for display only
	Location    uint32
	PCIncrement uint32 // 0 for directives and label/comment-only lines, 4 otherwise; a pseudo-instruction expands to several 4-byte instructions
	Labels      []string
	Comment     string
	Args        []string

	Kind Kind

	ALUR      *ALURData
	ALUI      *ALUIData
	Mem       *MemoryData
	Jump      *JumpData
	Branch    *BranchData
	Directive *DirectiveData
}

// ReferencedLabels returns every label this instruction's control flow
// or directive depends on, used by the assembler to populate
// unresolvedInstructions.
func (in *Instruction) ReferencedLabels() []string {
	switch in.Kind {
	case KindJump:
		if !in.Jump.Target.IsRegister {
			return []string{in.Jump.Target.Label}
		}
	case KindBranch:
		return []string{in.Branch.Label}
	}
	return nil
}
