package parser

import (
	"fmt"
	"strings"

	"github.com/mips32repl/mips32repl/asmimm"
	"github.com/mips32repl/mips32repl/register"
)

// aluR3 is a 3-register ALU_R mnemonic's operation tag, keyed by
// mnemonic text.
var aluR3 = map[string]AluOp{
	"add": OpAddS, "addu": OpAddU,
	"sub": OpSubS, "subu": OpSubU,
	"and": OpAnd, "or": OpOr, "xor": OpXor, "nor": OpNor,
	"slt": OpSltS, "sltu": OpSltU,
	"sllv": OpSllV, "srav": OpSraV, "srlv": OpSrlV,
}

// aluI3 is a 2-register-plus-immediate ALU_I mnemonic's operation tag.
var aluI3 = map[string]AluOp{
	"addi": OpAddS, "addiu": OpAddU,
	"andi": OpAnd, "ori": OpOr, "xori": OpXor,
	"slti": OpSltS, "sltiu": OpSltU,
}

// shiftImm is a 2-register-plus-shift-amount ALU_I mnemonic's tag.
var shiftImm = map[string]AluOp{
	"sll": OpSll, "sra": OpSra, "srl": OpSrl,
}

// branchTwoReg is the beq/bne family: 2 registers plus a label.
var branchTwoReg = map[string]BranchPredicate{
	"beq": PredEQ, "bne": PredNE,
}

// branchOneReg is the bgez/bltz family: one register (compared
// against $zero) plus a label. The bool marks the "*al" link variants.
type branchOneSpec struct {
	Pred BranchPredicate
	Link bool
}

var branchOneReg = map[string]branchOneSpec{
	"bgez":   {PredGE0, false},
	"bgezal": {PredGE0, true},
	"bltz":   {PredLT0, false},
	"bltzal": {PredLT0, true},
	"bgtz":   {PredGT0, false},
	"blez":   {PredLE0, false},
}

// memOps maps a load/store mnemonic to (storing, sizePow2).
var memOps = map[string]struct {
	Storing  bool
	SizePow2 int
}{
	"lw": {false, 2}, "lh": {false, 1}, "lb": {false, 0},
	"sw": {true, 2}, "sh": {true, 1}, "sb": {true, 0},
}

// dispatchMnemonic decodes the mnemonic and its argument tokens into
// one or more simple instructions. Each returned instruction has its
// Location and PCIncrement filled in (consecutive addresses starting
// at loc); the caller fills in Labels/Comment/Source/Args on the
// first instruction only.
func dispatchMnemonic(mnemonic string, args []Token, pos Position, loc uint32) ([]*Instruction, *Error) {
	m := strings.ToLower(mnemonic)

	if op, ok := aluR3[m]; ok {
		return dispatchALUR3(m, op, args, pos, loc)
	}
	if op, ok := aluI3[m]; ok {
		return dispatchALUI3(m, op, args, pos, loc)
	}
	if op, ok := shiftImm[m]; ok {
		return dispatchShiftImm(m, op, args, pos, loc)
	}
	if pred, ok := branchTwoReg[m]; ok {
		return dispatchBranchTwoReg(m, pred, args, pos, loc)
	}
	if spec, ok := branchOneReg[m]; ok {
		return dispatchBranchOneReg(m, spec, args, pos, loc)
	}
	if mo, ok := memOps[m]; ok {
		return dispatchMemory(m, mo.Storing, mo.SizePow2, args, pos, loc)
	}

	switch m {
	case "lui":
		return dispatchLui(args, pos, loc)
	case "j", "jal":
		return dispatchJumpLabel(m == "jal", args, pos, loc)
	case "jr", "jalr":
		return dispatchJumpReg(m == "jalr", args, pos, loc)
	case "syscall":
		return dispatchSyscall(args, pos, loc)
	case "li":
		return dispatchLi(args, pos, loc)
	case "move":
		return dispatchMove(args, pos, loc)
	case "mfhi":
		return dispatchMoveFromSpecial(OpMoveHI, args, pos, loc)
	case "mflo":
		return dispatchMoveFromSpecial(OpMoveLO, args, pos, loc)
	case "mult", "multu":
		return dispatchMultDiv(m == "mult", true, args, pos, loc)
	case "div":
		return dispatchDiv(args, pos, loc)
	case "divu":
		return dispatchMultDiv(false, false, args, pos, loc)
	case "mul":
		return dispatchMul(args, pos, loc)
	case "rem":
		return dispatchRem(args, pos, loc)
	default:
		return nil, NewError(pos, ErrorInvalidMnemonic, "unknown mnemonic: "+mnemonic)
	}
}

func argErr(pos Position, mnemonic string, want, got int) *Error {
	return NewError(pos, ErrorInvalidArity,
		fmt.Sprintf("%s expects %d argument(s), got %d", mnemonic, want, got))
}

func parseReg(tok Token) (register.Index, *Error) {
	idx, ok := register.Lookup(tok.Text)
	if !ok {
		return 0, NewError(Position{Column: tok.Column}, ErrorInvalidRegister, "invalid register: "+tok.Text)
	}
	return idx, nil
}

func single(loc uint32, build func(in *Instruction)) []*Instruction {
	in := &Instruction{Location: loc, PCIncrement: 4}
	build(in)
	return []*Instruction{in}
}

func dispatchALUR3(m string, op AluOp, args []Token, pos Position, loc uint32) ([]*Instruction, *Error) {
	if len(args) != 3 {
		return nil, argErr(pos, m, 3, len(args))
	}
	dest, err := parseReg(args[0])
	if err != nil {
		return nil, err
	}
	s1, err := parseReg(args[1])
	if err != nil {
		return nil, err
	}
	s2, err := parseReg(args[2])
	if err != nil {
		return nil, err
	}
	return single(loc, func(in *Instruction) {
		in.Kind = KindALUR
		in.ALUR = &ALURData{Op: op, HasDest: true, Dest: dest, Src1: s1, Src2: s2}
	}), nil
}

func dispatchALUI3(m string, op AluOp, args []Token, pos Position, loc uint32) ([]*Instruction, *Error) {
	if len(args) != 3 {
		return nil, argErr(pos, m, 3, len(args))
	}
	dest, err := parseReg(args[0])
	if err != nil {
		return nil, err
	}
	src, err := parseReg(args[1])
	if err != nil {
		return nil, err
	}
	imm, ierr := asmimm.Parse16(args[2].Text)
	if ierr != nil {
		return nil, NewError(Position{Column: args[2].Column}, ErrorInvalidImmediate, ierr.Error())
	}
	return single(loc, func(in *Instruction) {
		in.Kind = KindALUI
		in.ALUI = &ALUIData{Op: op, Dest: dest, Src: src, Imm: imm}
	}), nil
}

func dispatchShiftImm(m string, op AluOp, args []Token, pos Position, loc uint32) ([]*Instruction, *Error) {
	if len(args) != 3 {
		return nil, argErr(pos, m, 3, len(args))
	}
	dest, err := parseReg(args[0])
	if err != nil {
		return nil, err
	}
	src, err := parseReg(args[1])
	if err != nil {
		return nil, err
	}
	shamt, serr := asmimm.ParseShiftAmount(args[2].Text)
	if serr != nil {
		return nil, NewError(Position{Column: args[2].Column}, ErrorShiftRange, serr.Error())
	}
	return single(loc, func(in *Instruction) {
		in.Kind = KindALUI
		in.ALUI = &ALUIData{Op: op, Dest: dest, Src: src, Imm: asmimm.FromRaw(uint16(shamt))}
	}), nil
}

func dispatchLui(args []Token, pos Position, loc uint32) ([]*Instruction, *Error) {
	if len(args) != 2 {
		return nil, argErr(pos, "lui", 2, len(args))
	}
	dest, err := parseReg(args[0])
	if err != nil {
		return nil, err
	}
	imm, ierr := asmimm.Parse16(args[1].Text)
	if ierr != nil {
		return nil, NewError(Position{Column: args[1].Column}, ErrorInvalidImmediate, ierr.Error())
	}
	return single(loc, func(in *Instruction) {
		in.Kind = KindALUI
		in.ALUI = &ALUIData{Op: OpLui, Dest: dest, Src: register.Zero, Imm: imm}
	}), nil
}

func dispatchMemory(m string, storing bool, sizePow2 int, args []Token, pos Position, loc uint32) ([]*Instruction, *Error) {
	if len(args) != 3 {
		return nil, argErr(pos, m, 3, len(args))
	}
	reg, err := parseReg(args[0])
	if err != nil {
		return nil, err
	}
	imm, ierr := asmimm.Parse16(args[1].Text)
	if ierr != nil {
		return nil, NewError(Position{Column: args[1].Column}, ErrorInvalidImmediate, ierr.Error())
	}
	base, err := parseReg(args[2])
	if err != nil {
		return nil, err
	}
	return single(loc, func(in *Instruction) {
		in.Kind = KindMemory
		in.Mem = &MemoryData{Storing: storing, SizePow2: sizePow2, Reg: reg, OffsetImm: imm, BaseReg: base}
	}), nil
}

func dispatchJumpLabel(link bool, args []Token, pos Position, loc uint32) ([]*Instruction, *Error) {
	name := "j"
	if link {
		name = "jal"
	}
	if len(args) != 1 {
		return nil, argErr(pos, name, 1, len(args))
	}
	label := args[0].Text
	return single(loc, func(in *Instruction) {
		in.Kind = KindJump
		in.Jump = &JumpData{Link: link, Target: JumpTarget{Label: label}}
	}), nil
}

func dispatchJumpReg(link bool, args []Token, pos Position, loc uint32) ([]*Instruction, *Error) {
	name := "jr"
	if link {
		name = "jalr"
	}
	if len(args) != 1 {
		return nil, argErr(pos, name, 1, len(args))
	}
	reg, err := parseReg(args[0])
	if err != nil {
		return nil, err
	}
	return single(loc, func(in *Instruction) {
		in.Kind = KindJump
		in.Jump = &JumpData{Link: link, Target: JumpTarget{IsRegister: true, Reg: reg}}
	}), nil
}

func dispatchBranchTwoReg(m string, pred BranchPredicate, args []Token, pos Position, loc uint32) ([]*Instruction, *Error) {
	if len(args) != 3 {
		return nil, argErr(pos, m, 3, len(args))
	}
	r1, err := parseReg(args[0])
	if err != nil {
		return nil, err
	}
	r2, err := parseReg(args[1])
	if err != nil {
		return nil, err
	}
	label := args[2].Text
	return single(loc, func(in *Instruction) {
		in.Kind = KindBranch
		in.Branch = &BranchData{Pred: pred, Src1: r1, Src2: r2, Label: label}
	}), nil
}

func dispatchBranchOneReg(m string, spec branchOneSpec, args []Token, pos Position, loc uint32) ([]*Instruction, *Error) {
	if len(args) != 2 {
		return nil, argErr(pos, m, 2, len(args))
	}
	r1, err := parseReg(args[0])
	if err != nil {
		return nil, err
	}
	label := args[1].Text
	return single(loc, func(in *Instruction) {
		in.Kind = KindBranch
		in.Branch = &BranchData{Pred: spec.Pred, Link: spec.Link, Src1: r1, Src2: register.Zero, Label: label}
	}), nil
}

func dispatchSyscall(args []Token, pos Position, loc uint32) ([]*Instruction, *Error) {
	if len(args) != 0 {
		return nil, argErr(pos, "syscall", 0, len(args))
	}
	return single(loc, func(in *Instruction) {
		in.Kind = KindSyscall
	}), nil
}

// li16Instruction builds the single-simple "li $dest, imm16" building
// block used inside mul/div/rem pseudo-expansion, where the immediate
// operand is restricted to 16 bits.
func li16Instruction(loc uint32, dest register.Index, imm asmimm.Immediate) *Instruction {
	return &Instruction{
		Location: loc, PCIncrement: 4, Kind: KindALUI,
		ALUI: &ALUIData{Op: OpAddS, Dest: dest, Src: register.Zero, Imm: imm},
	}
}

// dispatchLi expands standalone "li $dest, imm" into lui+ori so a full
// 32-bit constant (not just a 16-bit sign-extended one) can be loaded.
func dispatchLi(args []Token, pos Position, loc uint32) ([]*Instruction, *Error) {
	if len(args) != 2 {
		return nil, argErr(pos, "li", 2, len(args))
	}
	dest, err := parseReg(args[0])
	if err != nil {
		return nil, err
	}
	word, werr := asmimm.ParseWord(args[1].Text)
	if werr != nil {
		return nil, NewError(Position{Column: args[1].Column}, ErrorInvalidImmediate, werr.Error())
	}
	low, high := asmimm.SplitWide(word)
	lui := &Instruction{Location: loc, PCIncrement: 4, Kind: KindALUI,
		ALUI: &ALUIData{Op: OpLui, Dest: dest, Src: register.Zero, Imm: high}}
	ori := &Instruction{Location: loc + 4, PCIncrement: 4, Kind: KindALUI,
		ALUI: &ALUIData{Op: OpOr, Dest: dest, Src: dest, Imm: low}}
	return []*Instruction{lui, ori}, nil
}

func dispatchMove(args []Token, pos Position, loc uint32) ([]*Instruction, *Error) {
	if len(args) != 2 {
		return nil, argErr(pos, "move", 2, len(args))
	}
	dest, err := parseReg(args[0])
	if err != nil {
		return nil, err
	}
	src, err := parseReg(args[1])
	if err != nil {
		return nil, err
	}
	return single(loc, func(in *Instruction) {
		in.Kind = KindALUR
		in.ALUR = &ALURData{Op: OpAddS, HasDest: true, Dest: dest, Src1: src, Src2: register.Zero}
	}), nil
}

func dispatchMoveFromSpecial(op AluOp, args []Token, pos Position, loc uint32) ([]*Instruction, *Error) {
	name := "mfhi"
	if op == OpMoveLO {
		name = "mflo"
	}
	if len(args) != 1 {
		return nil, argErr(pos, name, 1, len(args))
	}
	dest, err := parseReg(args[0])
	if err != nil {
		return nil, err
	}
	return single(loc, func(in *Instruction) {
		in.Kind = KindALUR
		in.ALUR = &ALURData{Op: op, HasDest: true, Dest: dest}
	}), nil
}

func dispatchMultDiv(signed, isMult bool, args []Token, pos Position, loc uint32) ([]*Instruction, *Error) {
	name := "multu"
	if isMult {
		if signed {
			name = "mult"
		}
	} else {
		name = "divu"
	}
	if len(args) != 2 {
		return nil, argErr(pos, name, 2, len(args))
	}
	s1, err := parseReg(args[0])
	if err != nil {
		return nil, err
	}
	s2, err := parseReg(args[1])
	if err != nil {
		return nil, err
	}
	var op AluOp
	switch {
	case isMult && signed:
		op = OpMultS
	case isMult && !signed:
		op = OpMultU
	default:
		op = OpDivU
	}
	return single(loc, func(in *Instruction) {
		in.Kind = KindALUR
		in.ALUR = &ALURData{Op: op, Src1: s1, Src2: s2}
	}), nil
}

func dispatchDiv(args []Token, pos Position, loc uint32) ([]*Instruction, *Error) {
	switch len(args) {
	case 2:
		s1, err := parseReg(args[0])
		if err != nil {
			return nil, err
		}
		s2, err := parseReg(args[1])
		if err != nil {
			return nil, err
		}
		return single(loc, func(in *Instruction) {
			in.Kind = KindALUR
			in.ALUR = &ALURData{Op: OpDivS, Src1: s1, Src2: s2}
		}), nil
	case 3:
		return expandDivRemPseudo(OpMoveLO, args, pos, loc)
	default:
		return nil, NewError(pos, ErrorInvalidArity, fmt.Sprintf("div expects 2 or 3 arguments, got %d", len(args)))
	}
}

func dispatchRem(args []Token, pos Position, loc uint32) ([]*Instruction, *Error) {
	if len(args) != 3 {
		return nil, argErr(pos, "rem", 3, len(args))
	}
	return expandDivRemPseudo(OpMoveHI, args, pos, loc)
}

// expandDivRemPseudo builds the shared div/rem 3-argument pseudo
// expansion: dest, src1, (src2 register or imm16). moveOp selects
// whether the final step copies lo (div) or hi (rem) into dest.
func expandDivRemPseudo(moveOp AluOp, args []Token, pos Position, loc uint32) ([]*Instruction, *Error) {
	dest, err := parseReg(args[0])
	if err != nil {
		return nil, err
	}
	src1, err := parseReg(args[1])
	if err != nil {
		return nil, err
	}
	if src2, ok := register.Lookup(args[2].Text); ok {
		div := &Instruction{Location: loc, PCIncrement: 4, Kind: KindALUR,
			ALUR: &ALURData{Op: OpDivS, Src1: src1, Src2: src2}}
		move := &Instruction{Location: loc + 4, PCIncrement: 4, Kind: KindALUR,
			ALUR: &ALURData{Op: moveOp, HasDest: true, Dest: dest}}
		return []*Instruction{div, move}, nil
	}
	imm, ierr := asmimm.Parse16(args[2].Text)
	if ierr != nil {
		return nil, NewError(Position{Column: args[2].Column}, ErrorInvalidImmediate, ierr.Error())
	}
	li := li16Instruction(loc, register.At, imm)
	div := &Instruction{Location: loc + 4, PCIncrement: 4, Kind: KindALUR,
		ALUR: &ALURData{Op: OpDivS, Src1: src1, Src2: register.At}}
	move := &Instruction{Location: loc + 8, PCIncrement: 4, Kind: KindALUR,
		ALUR: &ALURData{Op: moveOp, HasDest: true, Dest: dest}}
	return []*Instruction{li, div, move}, nil
}

func dispatchMul(args []Token, pos Position, loc uint32) ([]*Instruction, *Error) {
	if len(args) != 3 {
		return nil, argErr(pos, "mul", 3, len(args))
	}
	dest, err := parseReg(args[0])
	if err != nil {
		return nil, err
	}
	src1, err := parseReg(args[1])
	if err != nil {
		return nil, err
	}
	if src2, ok := register.Lookup(args[2].Text); ok {
		mult := &Instruction{Location: loc, PCIncrement: 4, Kind: KindALUR,
			ALUR: &ALURData{Op: OpMultS, Src1: src1, Src2: src2}}
		mflo := &Instruction{Location: loc + 4, PCIncrement: 4, Kind: KindALUR,
			ALUR: &ALURData{Op: OpMoveLO, HasDest: true, Dest: dest}}
		return []*Instruction{mult, mflo}, nil
	}
	imm, ierr := asmimm.Parse16(args[2].Text)
	if ierr != nil {
		return nil, NewError(Position{Column: args[2].Column}, ErrorInvalidImmediate, ierr.Error())
	}
	li := li16Instruction(loc, register.At, imm)
	mult := &Instruction{Location: loc + 4, PCIncrement: 4, Kind: KindALUR,
		ALUR: &ALURData{Op: OpMultS, Src1: src1, Src2: register.At}}
	mflo := &Instruction{Location: loc + 8, PCIncrement: 4, Kind: KindALUR,
		ALUR: &ALURData{Op: OpMoveLO, HasDest: true, Dest: dest}}
	return []*Instruction{li, mult, mflo}, nil
}
