// Package repl is the interactive driver: it reads lines from standard
// input or an opened file, routes `:`-prefixed lines to meta-commands
// and everything else through the parser and assembler, and manages
// the auto-execute state machine described by the CPU's step/run
// model — grounded on the teacher's debugger.Debugger/RunCLI loop.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mips32repl/mips32repl/assembler"
	"github.com/mips32repl/mips32repl/cpu"
	"github.com/mips32repl/mips32repl/parser"
)

// REPL owns the assembler/CPU pair plus the interactive state that
// sits above them: auto-execute on/off, trace/verbose toggles, the
// paused resume point, and command history.
type REPL struct {
	Engine *cpu.Engine
	Asm    *assembler.State

	History *History

	AutoExecute  bool
	Trace        bool
	Verbose      bool
	NumberFormat string // "hex", "dec", "oct", or "bin"

	// MaxSteps caps how many instructions a single runUntilStuck pass
	// (auto-execute of a freshly assembled line, :execute, or the
	// :autoexecute toggle) will step before pausing on its own, the
	// guard against an unconditional loop like "loop: j loop" spinning
	// forever under auto-execute.
	MaxSteps int

	pausedTextLocation *uint32

	// inFile is true while Run is feeding a line drained from
	// fileQueue (via :file or main's -f flag), as opposed to a line
	// typed at the interactive prompt. It governs whether an
	// unresolved label reference pauses auto-execution immediately.
	inFile bool

	Stdout io.Writer
	Stderr io.Writer

	lineNo    int
	fileQueue []string
}

// Options seeds the REPL's startup flags, set from CLI flags or the
// loaded config before the first line is read.
type Options struct {
	AutoExecute bool
	AutoDump    bool
	Trace       bool
	Verbose     bool
	MaxSteps    int
}

// New creates a REPL driving engine/asm, starting in the state opts
// describes.
func New(engine *cpu.Engine, asm *assembler.State, stdout, stderr io.Writer, opts Options) *REPL {
	engine.AutoDump = opts.AutoDump
	maxSteps := opts.MaxSteps
	if maxSteps <= 0 {
		maxSteps = 1_000_000
	}
	return &REPL{
		Engine:       engine,
		Asm:          asm,
		History:      NewHistory(1000),
		AutoExecute:  opts.AutoExecute,
		Trace:        opts.Trace,
		Verbose:      opts.Verbose,
		NumberFormat: "hex",
		MaxSteps:     maxSteps,
		Stdout:       stdout,
		Stderr:       stderr,
	}
}

// Run drives the REPL from stdin until EOF or an :exit/:quit command.
// It prints a prompt before each read, the way the teacher's RunCLI
// loop does.
func (r *REPL) Run(stdin io.Reader) error {
	scanner := bufio.NewScanner(stdin)
	for {
		line, ok, fromFile, exhausted := r.nextLine(scanner)
		if !ok {
			return nil
		}
		r.inFile = fromFile
		exit := r.Feed(line)
		r.inFile = false
		if exhausted {
			// The opened file's last line just ran: switch back to
			// standard input and pause auto-execution, per the
			// file-reading contract.
			r.pause()
		}
		if exit {
			return nil
		}
	}
}

// nextLine drains any queued file lines before reading from the live
// scanner, and prints the prompt only for interactive (non-file) reads.
// fromFile reports whether the returned line came from an opened file
// rather than the interactive prompt; exhausted reports whether it was
// the last line queued from that file.
func (r *REPL) nextLine(scanner *bufio.Scanner) (line string, ok bool, fromFile bool, exhausted bool) {
	if len(r.fileQueue) > 0 {
		line = r.fileQueue[0]
		r.fileQueue = r.fileQueue[1:]
		return line, true, true, len(r.fileQueue) == 0
	}
	fmt.Fprint(r.Stdout, "> ")
	if !scanner.Scan() {
		return "", false, false, false
	}
	return scanner.Text(), true, false, false
}

// Feed processes a single input line. It returns true when the line
// requested the REPL exit.
func (r *REPL) Feed(line string) (exit bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	r.History.Add(trimmed)
	r.lineNo++

	if strings.HasPrefix(trimmed, ":") {
		return r.dispatchCommand(trimmed)
	}
	r.assembleLine(trimmed)
	return false
}

// assembleLine parses and assembles one line of MIPS source, then
// drives execution forward if auto-execute is on. An instruction that
// references a label not yet defined pauses auto-execution at that
// instruction's own address, without executing it, when the line came
// from the interactive prompt rather than an opened file.
func (r *REPL) assembleLine(line string) {
	loc := r.Asm.NextLocation()
	instrs, perr := parser.ParseLine(line, loc, r.lineNo, "")
	if perr != nil {
		fmt.Fprintln(r.Stderr, perr.Error())
		return
	}

	out, err := r.Asm.Assemble(instrs)
	if err != nil {
		fmt.Fprintln(r.Stderr, err.Error())
		return
	}

	if r.AutoExecute && len(out.NewlyUnresolved) > 0 && !r.inFile {
		r.pauseAt(out.NewlyUnresolved[0].Location)
		return
	}

	if r.AutoExecute {
		r.runUntilStuck()
	}
}

// runUntilStuck steps the engine from its current pc for as long as
// the next address has a stored instruction, printing each
// instruction's rendered text first when trace is on. An instruction
// whose referenced label is still undefined re-enters the pending
// pause rather than being stepped, the same rule assembleLine applies
// when the unresolved reference is first seen.
func (r *REPL) runUntilStuck() {
	steps := 0
	for {
		pc := r.Engine.CurrentPC()
		in, ok := r.Asm.LocationsToInstructions[pc]
		if !ok {
			return
		}
		if r.pendingUnresolvedLabel(in) {
			r.pauseAt(in.Location)
			return
		}
		if r.Trace {
			fmt.Fprintln(r.Stdout, parser.Render(in))
		}
		if _, err := r.Engine.StepOne(); err != nil {
			fmt.Fprintln(r.Stderr, err.Error())
			r.pause()
			return
		}
		if r.Engine.Exited {
			return
		}
		steps++
		if steps >= r.MaxSteps {
			fmt.Fprintf(r.Stderr, "stopped after %d steps (max-steps-per-resume reached)\n", steps)
			r.pause()
			return
		}
	}
}

// pendingUnresolvedLabel reports whether in references a label with no
// recorded definition yet.
func (r *REPL) pendingUnresolvedLabel(in *parser.Instruction) bool {
	for _, label := range in.ReferencedLabels() {
		if _, defined := r.Asm.LabelsToLocations[label]; !defined {
			return true
		}
	}
	return false
}

// pause transitions to AutoOff and captures the engine's current pc as
// the resume point, per the REPL's auto-execute state machine.
func (r *REPL) pause() {
	r.pauseAt(r.Engine.CurrentPC())
}

// pauseAt transitions to AutoOff with loc captured as the resume
// point, used both for the engine's current pc and for an
// as-yet-unexecuted instruction's own address. Callers that must not
// clobber an existing pause (assembleLine, when a second unresolved
// reference is typed while already paused) check r.AutoExecute
// themselves before calling; pauseAt itself always records loc, since
// runUntilStuck legitimately reaches a new stuck point while resuming
// from :execute with auto-execute already off.
func (r *REPL) pauseAt(loc uint32) {
	r.AutoExecute = false
	r.pausedTextLocation = &loc
}

// resume clears the captured pause point, used when :autoexecute turns
// auto-execute back on.
func (r *REPL) resume() {
	r.pausedTextLocation = nil
}
