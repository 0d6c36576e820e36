package parser

import (
	"fmt"
	"strconv"
	"strings"
)

var aluRNames = map[AluOp]string{
	OpAddS: "add", OpAddU: "addu", OpSubS: "sub", OpSubU: "subu",
	OpAnd: "and", OpOr: "or", OpXor: "xor", OpNor: "nor",
	OpSltS: "slt", OpSltU: "sltu",
	OpSllV: "sllv", OpSraV: "srav", OpSrlV: "srlv",
	OpMultS: "mult", OpMultU: "multu", OpDivS: "div", OpDivU: "divu",
	OpMoveHI: "mfhi", OpMoveLO: "mflo",
}

var aluINames = map[AluOp]string{
	OpAddS: "addi", OpAddU: "addiu", OpAnd: "andi", OpOr: "ori", OpXor: "xori",
	OpSltS: "slti", OpSltU: "sltiu",
	OpSll: "sll", OpSra: "sra", OpSrl: "srl", OpLui: "lui",
}

var branchNames = map[BranchPredicate]string{
	PredEQ: "beq", PredNE: "bne", PredGE0: "bgez", PredLT0: "bltz",
	PredGT0: "bgtz", PredLE0: "blez",
}

var memNames = map[bool]map[int]string{
	false: {0: "lb", 1: "lh", 2: "lw"},
	true:  {0: "sb", 1: "sh", 2: "sw"},
}

var directiveTexts = map[DirectiveKind]string{
	DirText: ".text", DirData: ".data", DirGlobal: ".globl",
	DirAlign: ".align", DirSpace: ".space",
	DirByte: ".byte", DirHalf: ".half", DirWord: ".word",
	DirAscii: ".ascii", DirAsciiz: ".asciiz",
}

// Render re-serializes an instruction into canonical MIPS assembly
// text, the form shown by the trace command and checked by the
// parse-then-render round trip.
func Render(in *Instruction) string {
	var sb strings.Builder
	for _, l := range in.Labels {
		sb.WriteString(l)
		sb.WriteString(": ")
	}

	switch in.Kind {
	case KindNonExecutable:
		// Labels, if any, are already written above; nothing else to render.
	case KindALUR:
		renderALUR(&sb, in.ALUR)
	case KindALUI:
		renderALUI(&sb, in.ALUI)
	case KindMemory:
		renderMemory(&sb, in.Mem)
	case KindJump:
		renderJump(&sb, in.Jump)
	case KindBranch:
		renderBranch(&sb, in.Branch)
	case KindSyscall:
		sb.WriteString("syscall")
	case KindDirective:
		renderDirective(&sb, in.Directive)
	}

	out := sb.String()
	if in.Comment != "" {
		out = strings.TrimRight(out, " ") + " # " + in.Comment
	}
	return strings.TrimSpace(out)
}

func renderALUR(sb *strings.Builder, d *ALURData) {
	name := aluRNames[d.Op]
	switch d.Op {
	case OpMoveHI, OpMoveLO:
		fmt.Fprintf(sb, "%s %s", name, d.Dest.Name())
	case OpMultS, OpMultU, OpDivS, OpDivU:
		fmt.Fprintf(sb, "%s %s, %s", name, d.Src1.Name(), d.Src2.Name())
	default:
		fmt.Fprintf(sb, "%s %s, %s, %s", name, d.Dest.Name(), d.Src1.Name(), d.Src2.Name())
	}
}

func renderALUI(sb *strings.Builder, d *ALUIData) {
	name := aluINames[d.Op]
	switch d.Op {
	case OpLui:
		fmt.Fprintf(sb, "%s %s, %d", name, d.Dest.Name(), d.Imm.Raw())
	case OpSll, OpSra, OpSrl:
		fmt.Fprintf(sb, "%s %s, %s, %d", name, d.Dest.Name(), d.Src.Name(), d.Imm.Raw())
	default:
		fmt.Fprintf(sb, "%s %s, %s, %d", name, d.Dest.Name(), d.Src.Name(), d.Imm.SignExtended())
	}
}

func renderMemory(sb *strings.Builder, d *MemoryData) {
	name := memNames[d.Storing][d.SizePow2]
	fmt.Fprintf(sb, "%s %s, %d(%s)", name, d.Reg.Name(), d.OffsetImm.SignExtended(), d.BaseReg.Name())
}

func renderJump(sb *strings.Builder, d *JumpData) {
	name := "j"
	if d.Link {
		name = "jal"
	}
	if d.Target.IsRegister {
		if d.Link {
			name = "jalr"
		} else {
			name = "jr"
		}
		fmt.Fprintf(sb, "%s %s", name, d.Target.Reg.Name())
		return
	}
	fmt.Fprintf(sb, "%s %s", name, d.Target.Label)
}

func renderBranch(sb *strings.Builder, d *BranchData) {
	name := branchNames[d.Pred]
	if d.Link {
		name += "al"
	}
	if d.Pred == PredEQ || d.Pred == PredNE {
		fmt.Fprintf(sb, "%s %s, %s, %s", name, d.Src1.Name(), d.Src2.Name(), d.Label)
		return
	}
	fmt.Fprintf(sb, "%s %s, %s", name, d.Src1.Name(), d.Label)
}

func renderDirective(sb *strings.Builder, d *DirectiveData) {
	text := directiveTexts[d.Kind]
	switch d.Kind {
	case DirText, DirData:
		sb.WriteString(text)
	case DirGlobal:
		fmt.Fprintf(sb, "%s %s", text, d.Label)
	case DirAlign, DirSpace:
		fmt.Fprintf(sb, "%s %d", text, d.Numbers[0])
	case DirByte, DirHalf, DirWord:
		parts := make([]string, len(d.Numbers))
		for i, n := range d.Numbers {
			parts[i] = strconv.FormatInt(n, 10)
		}
		fmt.Fprintf(sb, "%s %s", text, strings.Join(parts, ", "))
	case DirAscii, DirAsciiz:
		payload := d.Bytes
		if d.Kind == DirAsciiz && len(payload) > 0 && payload[len(payload)-1] == 0 {
			payload = payload[:len(payload)-1]
		}
		fmt.Fprintf(sb, "%s %q", text, string(payload))
	}
}
