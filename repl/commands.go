package repl

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/mips32repl/mips32repl/assembler"
	"github.com/mips32repl/mips32repl/command"
	"github.com/mips32repl/mips32repl/parser"
	"github.com/mips32repl/mips32repl/register"
)

// dispatchCommand parses and executes one `:`-prefixed line. It
// returns true when the command requests the REPL exit.
func (r *REPL) dispatchCommand(line string) bool {
	cmd := command.Parse(line)
	switch cmd.Kind {
	case command.KindAutoExecute:
		r.cmdAutoExecute()
	case command.KindExecute:
		r.cmdExecute()
	case command.KindTrace:
		r.Trace = !r.Trace
	case command.KindVerbose:
		r.Verbose = !r.Verbose
	case command.KindRegisterDump:
		r.cmdRegisterDump()
	case command.KindRegister:
		r.cmdRegister(cmd.Arg)
	case command.KindAutoDump:
		r.Engine.AutoDump = !r.Engine.AutoDump
	case command.KindLabelDump:
		r.cmdLabelDump()
	case command.KindLabel:
		r.cmdLabel(cmd.Arg)
	case command.KindUnresolved:
		r.cmdUnresolved()
	case command.KindInstructions:
		r.cmdInstructions(cmd.Arg)
	case command.KindInstruction:
		r.cmdInstruction(cmd.Arg)
	case command.KindMemory:
		r.cmdMemory(cmd.Arg)
	case command.KindHex, command.KindDec, command.KindOct, command.KindBin:
		r.NumberFormat = cmd.Kind.String()
	case command.KindStatus:
		r.cmdStatus()
	case command.KindHelp:
		r.cmdHelp()
	case command.KindAbout:
		fmt.Fprintln(r.Stdout, "mips32repl: an interactive MIPS32 assembly interpreter")
	case command.KindNoop:
		// intentionally does nothing
	case command.KindFile:
		r.cmdFile(cmd.Arg)
	case command.KindExit:
		return true
	case command.KindTUI:
		r.cmdTUI()
	default:
		fmt.Fprintf(r.Stderr, "unknown command: %s\n", line)
	}
	return false
}

func (r *REPL) cmdAutoExecute() {
	r.AutoExecute = !r.AutoExecute
	if r.AutoExecute {
		r.resume()
		r.runUntilStuck()
	}
}

func (r *REPL) cmdExecute() {
	if r.pausedTextLocation != nil {
		r.Engine.SetPC(*r.pausedTextLocation)
	}
	r.pausedTextLocation = nil
	r.runUntilStuck()
}

func (r *REPL) formatWord(v uint32) string {
	switch r.NumberFormat {
	case "dec":
		return strconv.FormatInt(int64(int32(v)), 10)
	case "oct":
		return fmt.Sprintf("0%o", v)
	case "bin":
		return fmt.Sprintf("%032b", v)
	default:
		return fmt.Sprintf("0x%08X", v)
	}
}

func (r *REPL) cmdRegisterDump() {
	for i := register.Index(0); i < 32; i++ {
		fmt.Fprintf(r.Stdout, "%-5s = %s\n", i.Name(), r.formatWord(r.Engine.Registers.Get(i)))
	}
	fmt.Fprintf(r.Stdout, "pc    = %s\n", r.formatWord(r.Engine.Registers.PC()))
	fmt.Fprintf(r.Stdout, "hi    = %s\n", r.formatWord(r.Engine.Registers.HI()))
	fmt.Fprintf(r.Stdout, "lo    = %s\n", r.formatWord(r.Engine.Registers.LO()))
}

func (r *REPL) cmdRegister(arg string) {
	name := strings.TrimSpace(arg)
	if name == "" {
		fmt.Fprintln(r.Stderr, "usage: :register <name>")
		return
	}
	switch name {
	case "pc":
		r.printValue("pc", r.Engine.Registers.PC())
		return
	case "hi":
		r.printValue("hi", r.Engine.Registers.HI())
		return
	case "lo":
		r.printValue("lo", r.Engine.Registers.LO())
		return
	}
	idx, ok := register.Lookup(name)
	if !ok {
		fmt.Fprintf(r.Stderr, "invalid register: %s\n", name)
		return
	}
	r.printValue(idx.Name(), r.Engine.Registers.Get(idx))
}

func (r *REPL) printValue(name string, v uint32) {
	if r.Verbose {
		fmt.Fprintf(r.Stdout, "%s = %s\n%s", name, r.formatWord(v), spew.Sdump(v))
		return
	}
	fmt.Fprintf(r.Stdout, "%s = %s\n", name, r.formatWord(v))
}

func (r *REPL) cmdLabelDump() {
	for label, loc := range r.Asm.LabelsToLocations {
		fmt.Fprintf(r.Stdout, "%-20s %s\n", label, r.formatWord(loc))
	}
}

func (r *REPL) cmdLabel(arg string) {
	name := strings.TrimSpace(arg)
	loc, ok := r.Asm.LabelsToLocations[name]
	if !ok {
		fmt.Fprintf(r.Stderr, "undefined label: %s\n", name)
		return
	}
	fmt.Fprintf(r.Stdout, "%s = %s\n", name, r.formatWord(loc))
}

func (r *REPL) cmdUnresolved() {
	if len(r.Asm.UnresolvedInstructions) == 0 {
		fmt.Fprintln(r.Stdout, "no unresolved labels")
		return
	}
	for label, waiting := range r.Asm.UnresolvedInstructions {
		fmt.Fprintf(r.Stdout, "%s: %d pending reference(s)\n", label, len(waiting))
		for _, in := range waiting {
			fmt.Fprintf(r.Stdout, "    %s %s\n", r.formatWord(in.Location), parser.Render(in))
		}
	}
}

// resolveAddress interprets arg as a register name, a label, or a
// numeric literal (decimal or "0x"-prefixed hex).
func (r *REPL) resolveAddress(arg string) (uint32, error) {
	arg = strings.TrimSpace(arg)
	switch arg {
	case "pc":
		return r.Engine.Registers.PC(), nil
	case "hi":
		return r.Engine.Registers.HI(), nil
	case "lo":
		return r.Engine.Registers.LO(), nil
	}
	if idx, ok := register.Lookup(arg); ok {
		return r.Engine.Registers.Get(idx), nil
	}
	if loc, ok := r.Asm.LabelsToLocations[arg]; ok {
		return loc, nil
	}
	v, err := strconv.ParseUint(arg, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("cannot resolve %q as a register, label, or address", arg)
	}
	return uint32(v), nil
}

func (r *REPL) cmdInstructions(arg string) {
	addr := r.Asm.NextLocation()
	if strings.TrimSpace(arg) != "" {
		fields := strings.Fields(arg)
		if a, err := r.resolveAddress(fields[0]); err == nil {
			addr = a
		}
	}
	r.dumpInstructions(addr, 1)
}

func (r *REPL) cmdInstruction(arg string) {
	fields := strings.Fields(arg)
	if len(fields) == 0 {
		fmt.Fprintln(r.Stderr, "usage: :instruction <addr|label> [count]")
		return
	}
	addr, err := r.resolveAddress(fields[0])
	if err != nil {
		fmt.Fprintln(r.Stderr, err)
		return
	}
	count := 1
	if len(fields) > 1 {
		if n, cerr := strconv.Atoi(fields[1]); cerr == nil && n > 0 {
			count = n
		}
	}
	r.dumpInstructions(addr, count)
}

func (r *REPL) dumpInstructions(addr uint32, count int) {
	for i := 0; i < count; i++ {
		in, ok := r.Asm.LocationsToInstructions[addr]
		if !ok {
			fmt.Fprintf(r.Stdout, "%s: <empty>\n", r.formatWord(addr))
			addr += 4
			continue
		}
		word, _ := assembler.EncodeInstruction(in)
		if r.Verbose {
			fmt.Fprintf(r.Stdout, "%s: %08X  %s\n%s", r.formatWord(addr), word, parser.Render(in), spew.Sdump(in))
		} else {
			fmt.Fprintf(r.Stdout, "%s: %08X  %s\n", r.formatWord(addr), word, parser.Render(in))
		}
		addr += in.PCIncrement
		if in.PCIncrement == 0 {
			addr += 4
		}
	}
}

func (r *REPL) cmdMemory(arg string) {
	fields := strings.Fields(arg)
	if len(fields) == 0 {
		fmt.Fprintln(r.Stderr, "usage: :memory <addr|reg|label> [count]")
		return
	}
	addr, err := r.resolveAddress(fields[0])
	if err != nil {
		fmt.Fprintln(r.Stderr, err)
		return
	}
	count := uint32(16)
	if len(fields) > 1 {
		if n, cerr := strconv.Atoi(fields[1]); cerr == nil && n > 0 {
			count = uint32(n)
		}
	}
	data := r.Engine.Memory.GetBytes(addr, count)
	for i := uint32(0); i < count; i += 8 {
		end := i + 8
		if end > count {
			end = count
		}
		chunk := data[i:end]
		fmt.Fprintf(r.Stdout, "%s: ", r.formatWord(addr+i))
		var ascii strings.Builder
		for _, b := range chunk {
			fmt.Fprintf(r.Stdout, "%02X ", b)
			if b >= 0x20 && b <= 0x7E {
				ascii.WriteByte(b)
			} else {
				ascii.WriteByte('.')
			}
		}
		fmt.Fprintf(r.Stdout, " %s\n", ascii.String())
	}
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.Stdout, "autoexecute = %v\n", r.AutoExecute)
	fmt.Fprintf(r.Stdout, "autodump    = %v\n", r.Engine.AutoDump)
	fmt.Fprintf(r.Stdout, "trace       = %v\n", r.Trace)
	fmt.Fprintf(r.Stdout, "verbose     = %v\n", r.Verbose)
	fmt.Fprintf(r.Stdout, "numberfmt   = %s\n", r.NumberFormat)
	if r.pausedTextLocation != nil {
		fmt.Fprintf(r.Stdout, "paused at   = %s\n", r.formatWord(*r.pausedTextLocation))
	} else {
		fmt.Fprintln(r.Stdout, "paused at   = (not paused)")
	}
	fmt.Fprintf(r.Stdout, "last command = %s\n", r.History.Last())
}

func (r *REPL) cmdHelp() {
	fmt.Fprintln(r.Stdout, "Meta-commands (every name also accepts its documented aliases):")
	fmt.Fprintln(r.Stdout, "  :autoexecute          toggle auto-execute")
	fmt.Fprintln(r.Stdout, "  :execute              resume from the paused location")
	fmt.Fprintln(r.Stdout, "  :trace                toggle instruction tracing")
	fmt.Fprintln(r.Stdout, "  :verbose              toggle verbose (spew) dumps")
	fmt.Fprintln(r.Stdout, "  :registerdump         show every register")
	fmt.Fprintln(r.Stdout, "  :register <name>      show one register")
	fmt.Fprintln(r.Stdout, "  :autodump             toggle per-step register dump")
	fmt.Fprintln(r.Stdout, "  :labeldump            show every label")
	fmt.Fprintln(r.Stdout, "  :label <name>         show one label's address")
	fmt.Fprintln(r.Stdout, "  :unresolved           show pending label references")
	fmt.Fprintln(r.Stdout, "  :instructions [addr]  show the next stored instruction")
	fmt.Fprintln(r.Stdout, "  :instruction <a> [n]  show n stored instructions from a")
	fmt.Fprintln(r.Stdout, "  :memory <a> [n]       dump n bytes of memory from a")
	fmt.Fprintln(r.Stdout, "  :hex :dec :oct :bin   set number display format")
	fmt.Fprintln(r.Stdout, "  :status               show REPL settings")
	fmt.Fprintln(r.Stdout, "  :help                 show this text")
	fmt.Fprintln(r.Stdout, "  :about                show interpreter identity")
	fmt.Fprintln(r.Stdout, "  :file <path>          load a source file")
	fmt.Fprintln(r.Stdout, "  :tui                  open the live dashboard")
	fmt.Fprintln(r.Stdout, "  :exit                 quit")
}

func (r *REPL) cmdFile(path string) {
	path = strings.TrimSpace(path)
	if path == "" {
		fmt.Fprintln(r.Stderr, "usage: :file <path>")
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(r.Stderr, "cannot open %s: %v\n", path, err)
		return
	}
	lines := strings.Split(string(data), "\n")
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			r.fileQueue = append(r.fileQueue, line)
		}
	}
}
