package parser

import "strings"

// ParseLine turns one line of source text into one or more
// instructions, or an Error. loc is the text- or data-segment address the first
// resulting instruction would occupy if the caller decides to place it
// there; the assembler, not the parser, decides whether the line
// actually belongs at that address. lineNo and filename are carried
// into any Error's Position for diagnostics.
//
// An empty line, a comment-only line, or a line consisting solely of
// labels yields a single NonExecutable instruction carrying those
// labels (per the input/output contract: a line is never dropped
// silently, so the assembler always has something to attach labels
// and comments to).
func ParseLine(source string, loc uint32, lineNo int, filename string) ([]*Instruction, *Error) {
	tokens := Tokenize(source)
	tokens, comment := SplitComment(tokens)

	labels, rest, lerr, _ := ExtractLabels(tokens)
	if lerr != nil {
		lerr.Pos.Filename = filename
		lerr.Pos.Line = lineNo
		lerr.Context = strings.TrimRight(source, "\n")
		return nil, lerr
	}

	if len(rest) == 0 {
		return []*Instruction{{
			Source: source, Location: loc, PCIncrement: 0,
			Kind: KindNonExecutable, Labels: labels, Comment: comment,
		}}, nil
	}

	keyword := rest[0]
	args := rest[1:]

	var instrs []*Instruction
	var err *Error
	if strings.HasPrefix(keyword.Text, ".") {
		rawArgs := rawTail(source, keyword.Text)
		instrs, err = dispatchDirective(keyword.Text, args, rawArgs, Position{Filename: filename, Line: lineNo, Column: keyword.Column}, loc)
	} else {
		instrs, err = dispatchMnemonic(keyword.Text, args, Position{Filename: filename, Line: lineNo, Column: keyword.Column}, loc)
	}
	if err != nil {
		err.Pos.Filename = filename
		err.Pos.Line = lineNo
		err.Context = strings.TrimRight(source, "\n")
		return nil, err
	}

	first := instrs[0]
	first.Source = source
	first.Labels = labels
	first.Comment = comment
	first.Args = tokenTexts(args)
	return instrs, nil
}

// rawTail returns the portion of the original source line following
// the first occurrence of keyword, used so .ascii/.asciiz can see
// unescaped quoted content exactly as written (tokenizing would have
// split it on embedded commas and spaces).
func rawTail(source, keyword string) string {
	idx := strings.Index(source, keyword)
	if idx < 0 {
		return ""
	}
	return source[idx+len(keyword):]
}
