// Package command is the closed enumeration of REPL meta-commands: it
// recognizes a `:`-prefixed line's keyword (and any of its aliases)
// and carries along whatever raw argument text followed it, the way
// the teacher's debugger commands dispatch by name but leaves argument
// parsing to each handler.
package command

import "strings"

// Kind is the closed set of recognized meta-commands.
type Kind int

const (
	KindUnknown Kind = iota
	KindAutoExecute
	KindExecute
	KindTrace
	KindVerbose
	KindRegisterDump
	KindRegister
	KindAutoDump
	KindLabelDump
	KindLabel
	KindUnresolved
	KindInstructions
	KindInstruction
	KindMemory
	KindHex
	KindDec
	KindOct
	KindBin
	KindStatus
	KindHelp
	KindAbout
	KindNoop
	KindFile
	KindExit
	KindTUI
)

// aliases maps every accepted spelling (the canonical name and every
// alias) to its Kind. :tui is an addition beyond the base grammar,
// launching the optional live dashboard.
var aliases = map[string]Kind{
	"autoexecute": KindAutoExecute, "ae": KindAutoExecute,
	"execute": KindExecute, "exec": KindExecute, "ex": KindExecute, "e": KindExecute,
	"trace": KindTrace, "t": KindTrace,
	"verbose": KindVerbose, "v": KindVerbose,
	"registerdump": KindRegisterDump, "regdump": KindRegisterDump, "registers": KindRegisterDump, "regs": KindRegisterDump, "rd": KindRegisterDump,
	"register": KindRegister, "reg": KindRegister, "r": KindRegister,
	"autodump": KindAutoDump, "ad": KindAutoDump,
	"labeldump": KindLabelDump, "labels": KindLabelDump, "ld": KindLabelDump,
	"label": KindLabel, "l": KindLabel,
	"unresolved": KindUnresolved, "unres": KindUnresolved, "u": KindUnresolved,
	"instructions": KindInstructions, "insts": KindInstructions, "instructiondump": KindInstructions, "instdump": KindInstructions, "id": KindInstructions,
	"instruction": KindInstruction, "inst": KindInstruction, "i": KindInstruction,
	"memory": KindMemory, "mem": KindMemory, "m": KindMemory,
	"hex": KindHex, "dec": KindDec, "oct": KindOct, "bin": KindBin,
	"status": KindStatus, "settings": KindStatus, "s": KindStatus,
	"help": KindHelp, "commands": KindHelp, "h": KindHelp, "?": KindHelp, "cmds": KindHelp, "c": KindHelp,
	"about": KindAbout,
	"noop":  KindNoop, "n": KindNoop,
	"file": KindFile, "f": KindFile, "use": KindFile, "usefile": KindFile, "openfile": KindFile, "open": KindFile, "o": KindFile,
	"exit": KindExit, "quit": KindExit, "q": KindExit,
	"tui": KindTUI,
}

// Command is a parsed meta-command line: its recognized Kind and the
// raw argument text that followed the keyword, unsplit so each
// handler can tokenize it the way its argument shape needs (a single
// path, an address-plus-optional-count, a register name).
type Command struct {
	Kind Kind
	Raw  string // the original line, including the leading ':'
	Arg  string // text after the keyword, trimmed
}

// Parse reads a `:`-prefixed line into a Command. A line that doesn't
// start with ':' is not a command at all; callers should route it to
// the assembly parser instead of calling Parse. An unrecognized
// keyword still returns a Command with Kind KindUnknown, so the caller
// can report "unknown command" against a consistent error path rather
// than failing to parse the line structure itself.
func Parse(line string) Command {
	trimmed := strings.TrimSpace(line)
	body := strings.TrimPrefix(trimmed, ":")

	fields := strings.Fields(body)
	if len(fields) == 0 {
		return Command{Kind: KindUnknown, Raw: line}
	}

	keyword := strings.ToLower(fields[0])
	kind, ok := aliases[keyword]
	if !ok {
		return Command{Kind: KindUnknown, Raw: line}
	}

	arg := strings.TrimSpace(body[len(fields[0]):])
	return Command{Kind: kind, Raw: line, Arg: arg}
}

// IsCommandLine reports whether line should be routed to Parse rather
// than to the assembly parser.
func IsCommandLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), ":")
}

// String names a Kind for diagnostics and :help listings.
func (k Kind) String() string {
	switch k {
	case KindAutoExecute:
		return "autoexecute"
	case KindExecute:
		return "execute"
	case KindTrace:
		return "trace"
	case KindVerbose:
		return "verbose"
	case KindRegisterDump:
		return "registerdump"
	case KindRegister:
		return "register"
	case KindAutoDump:
		return "autodump"
	case KindLabelDump:
		return "labeldump"
	case KindLabel:
		return "label"
	case KindUnresolved:
		return "unresolved"
	case KindInstructions:
		return "instructions"
	case KindInstruction:
		return "instruction"
	case KindMemory:
		return "memory"
	case KindHex:
		return "hex"
	case KindDec:
		return "dec"
	case KindOct:
		return "oct"
	case KindBin:
		return "bin"
	case KindStatus:
		return "status"
	case KindHelp:
		return "help"
	case KindAbout:
		return "about"
	case KindNoop:
		return "noop"
	case KindFile:
		return "file"
	case KindExit:
		return "exit"
	case KindTUI:
		return "tui"
	default:
		return "unknown"
	}
}
