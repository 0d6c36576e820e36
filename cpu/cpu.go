// Package cpu is the execution engine: it steps one already-assembled
// instruction at a time against a register file and the memory image
// shared with the assembler, following jumps/branches and dispatching
// syscalls.
package cpu

import (
	"bufio"
	"fmt"
	"io"

	"github.com/mips32repl/mips32repl/assembler"
	"github.com/mips32repl/mips32repl/memory"
	"github.com/mips32repl/mips32repl/parser"
	"github.com/mips32repl/mips32repl/register"
)

// Engine is the CPU: the register file, the memory store (shared with
// the assembler that wrote instructions and data into it), and a
// currentPc mirror of the pc register.
type Engine struct {
	Registers *register.File
	Memory    *memory.Store
	Asm       *assembler.State

	currentPc uint32

	AutoDump bool

	Stdin  *bufio.Reader
	Stdout io.Writer
	Stderr io.Writer

	Exited   bool
	ExitCode int
}

// New creates an execution engine over asm's memory and label tables,
// with pc and $sp set to asm's own text base and stack top — whatever
// addresses asm was constructed with, standard or config-overridden.
func New(asm *assembler.State, stdin io.Reader, stdout, stderr io.Writer) *Engine {
	regs := register.NewFile()
	regs.SetPC(asm.TextBase)
	regs.Set(register.Sp, asm.StackTop)
	return &Engine{
		Registers: regs,
		Memory:    asm.Memory,
		Asm:       asm,
		currentPc: asm.TextBase,
		Stdin:     bufio.NewReader(stdin),
		Stdout:    stdout,
		Stderr:    stderr,
	}
}

// CurrentPC returns the engine's current program counter.
func (e *Engine) CurrentPC() uint32 {
	return e.currentPc
}

// SetPC moves the engine's program counter, used by the REPL to seed
// a resume from pausedTextLocation.
func (e *Engine) SetPC(addr uint32) {
	e.currentPc = addr
	e.Registers.SetPC(addr)
}

// StepOne executes the instruction stored at the engine's current pc,
// if one exists there. executed is false (with a nil error) when
// nothing is stored at pc — the natural stopping condition for Run.
func (e *Engine) StepOne() (executed bool, err error) {
	in, ok := e.Asm.LocationsToInstructions[e.currentPc]
	if !ok {
		return false, nil
	}
	if err := e.execute(in); err != nil {
		return true, err
	}
	return true, nil
}

// Run executes instructions starting at the engine's current pc,
// continuing for as long as each successive pc has a stored
// instruction. This is the one mechanism behind both "auto-execute
// followed a jump, keep going" and the REPL's `:execute` resume — both
// stop the same way: the next address has nothing stored at it.
func (e *Engine) Run() (steps int, err error) {
	for {
		executed, stepErr := e.StepOne()
		if stepErr != nil {
			return steps, stepErr
		}
		if !executed {
			return steps, nil
		}
		steps++
		if e.Exited {
			return steps, nil
		}
	}
}

// execute dispatches in by Kind, then advances pc to either the
// normal fallthrough address or a jump/branch target. Reference
// errors (undefined label) and fatal errors (executing a directive)
// are returned without moving pc.
func (e *Engine) execute(in *parser.Instruction) error {
	fallthroughPC := in.Location + in.PCIncrement
	nextPC := fallthroughPC

	switch in.Kind {
	case parser.KindALUR:
		if err := e.execALUR(in.ALUR); err != nil {
			return err
		}
	case parser.KindALUI:
		e.execALUI(in.ALUI)
	case parser.KindMemory:
		e.execMemory(in.Mem)
	case parser.KindSyscall:
		e.execSyscall()
	case parser.KindJump:
		target, err := e.resolveJumpTarget(in.Jump)
		if err != nil {
			return err
		}
		if in.Jump.Link {
			e.Registers.Set(register.Ra, fallthroughPC)
		}
		nextPC = target
	case parser.KindBranch:
		taken, err := e.evaluateBranch(in.Branch)
		if err != nil {
			return err
		}
		if taken {
			target, terr := e.resolveLabel(in.Branch.Label)
			if terr != nil {
				return terr
			}
			if in.Branch.Link {
				e.Registers.Set(register.Ra, fallthroughPC)
			}
			nextPC = target
		}
	case parser.KindDirective:
		return fmt.Errorf("fatal: attempted to execute a directive at 0x%08X", in.Location)
	case parser.KindNonExecutable:
		// no-op
	}

	e.currentPc = nextPC
	e.Registers.SetPC(nextPC)
	if e.AutoDump {
		e.dumpRegisters()
	}
	return nil
}

// dumpRegisters prints every general register's value, the form the
// auto-dump REPL setting shows after each step.
func (e *Engine) dumpRegisters() {
	for i := register.Index(0); i < 32; i++ {
		fmt.Fprintf(e.Stdout, "%s = 0x%08X\n", i.Name(), e.Registers.Get(i))
	}
}
