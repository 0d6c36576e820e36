package parser

import (
	"strings"

	"github.com/mips32repl/mips32repl/asmimm"
	"github.com/mips32repl/mips32repl/bits"
	"github.com/mips32repl/mips32repl/strescape"
)

// directiveNames maps a directive keyword (without its leading dot) to
// its Kind.
var directiveNames = map[string]DirectiveKind{
	"text":   DirText,
	"data":   DirData,
	"globl":  DirGlobal,
	"global": DirGlobal,
	"align":  DirAlign,
	"space":  DirSpace,
	"byte":   DirByte,
	"half":   DirHalf,
	"word":   DirWord,
	"ascii":  DirAscii,
	"asciiz": DirAsciiz,
}

// dispatchDirective parses a directive line. rawArgs is the portion of
// the source line following the directive keyword, used verbatim (not
// tokenized) for .ascii/.asciiz so embedded commas and spaces inside
// the quoted string survive.
func dispatchDirective(keyword string, args []Token, rawArgs string, pos Position, loc uint32) ([]*Instruction, *Error) {
	name := strings.ToLower(strings.TrimPrefix(keyword, "."))
	kind, ok := directiveNames[name]
	if !ok {
		return nil, NewError(pos, ErrorInvalidDirective, "unknown directive: ."+name)
	}

	switch kind {
	case DirText, DirData:
		if len(args) != 0 {
			return nil, argErr(pos, "."+name, 0, len(args))
		}
		return single(loc, func(in *Instruction) {
			in.PCIncrement = 0
			in.Kind = KindDirective
			in.Directive = &DirectiveData{Kind: kind}
		}), nil

	case DirGlobal:
		if len(args) != 1 {
			return nil, argErr(pos, ".globl", 1, len(args))
		}
		if !IsValidLabelName(args[0].Text) {
			return nil, NewError(Position{Column: args[0].Column}, ErrorInvalidLabel, "invalid label name: "+args[0].Text)
		}
		return single(loc, func(in *Instruction) {
			in.PCIncrement = 0
			in.Kind = KindDirective
			in.Directive = &DirectiveData{Kind: kind, Label: args[0].Text}
		}), nil

	case DirAlign:
		if len(args) != 1 {
			return nil, argErr(pos, ".align", 1, len(args))
		}
		n, err := asmimm.ParseWord(args[0].Text)
		if err != nil {
			return nil, NewError(Position{Column: args[0].Column}, ErrorAlignFactor, err.Error())
		}
		if n > 2 {
			return nil, NewError(Position{Column: args[0].Column}, ErrorAlignFactor, "align factor must be 0, 1, or 2")
		}
		return single(loc, func(in *Instruction) {
			in.PCIncrement = 0
			in.Kind = KindDirective
			in.Directive = &DirectiveData{Kind: kind, Numbers: []int64{int64(n)}}
		}), nil

	case DirSpace:
		if len(args) != 1 {
			return nil, argErr(pos, ".space", 1, len(args))
		}
		n, err := asmimm.ParseWord(args[0].Text)
		if err != nil {
			return nil, NewError(Position{Column: args[0].Column}, ErrorInvalidImmediate, err.Error())
		}
		return single(loc, func(in *Instruction) {
			in.PCIncrement = 0
			in.Kind = KindDirective
			in.Directive = &DirectiveData{Kind: kind, Numbers: []int64{int64(n)}}
		}), nil

	case DirByte, DirHalf, DirWord:
		if len(args) == 0 {
			return nil, NewError(pos, ErrorInvalidArity, "."+name+" requires at least one value")
		}
		nums := make([]int64, 0, len(args))
		for _, a := range args {
			v, err := asmimm.ParseWord(a.Text)
			if err != nil {
				return nil, NewError(Position{Column: a.Column}, ErrorInvalidImmediate, err.Error())
			}
			signed := bits.AsInt32(v)
			switch kind {
			case DirByte:
				if !bits.FitsSignedBits(int64(signed), 8) && !bits.FitsUnsignedBits(uint64(v), 8) {
					return nil, NewError(Position{Column: a.Column}, ErrorInvalidImmediate, "value does not fit in a byte: "+a.Text)
				}
			case DirHalf:
				if !bits.FitsSignedBits(int64(signed), 16) && !bits.FitsUnsignedBits(uint64(v), 16) {
					return nil, NewError(Position{Column: a.Column}, ErrorInvalidImmediate, "value does not fit in a halfword: "+a.Text)
				}
			}
			nums = append(nums, int64(v))
		}
		return single(loc, func(in *Instruction) {
			in.PCIncrement = 0
			in.Kind = KindDirective
			in.Directive = &DirectiveData{Kind: kind, Numbers: nums}
		}), nil

	case DirAscii, DirAsciiz:
		quoted, err := strescape.ExtractQuoted(rawArgs)
		if err != nil {
			return nil, NewError(pos, ErrorUnterminatedString, err.Error())
		}
		unescaped, uerr := strescape.Unescape(quoted, '"')
		if uerr != nil {
			return nil, NewError(pos, ErrorInvalidEscape, uerr.Error())
		}
		payload := []byte(unescaped)
		if kind == DirAsciiz {
			payload = append(payload, 0)
		}
		return single(loc, func(in *Instruction) {
			in.PCIncrement = 0
			in.Kind = KindDirective
			in.Directive = &DirectiveData{Kind: kind, Bytes: payload}
		}), nil
	}

	return nil, NewError(pos, ErrorInvalidDirective, "unhandled directive: ."+name)
}
