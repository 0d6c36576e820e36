// Package tui is the optional live dashboard the REPL's `:tui` command
// opens: a read-only snapshot view over the CPU's registers, the
// instructions stored around the program counter, and the memory
// around $sp, refreshed on a keypress rather than driving execution
// itself. Grounded on the teacher's debugger.TUI, trimmed to a single
// dashboard view since this interpreter has no breakpoint/watchpoint
// model to show alongside it.
package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/mips32repl/mips32repl/assembler"
	"github.com/mips32repl/mips32repl/cpu"
	"github.com/mips32repl/mips32repl/memory"
	"github.com/mips32repl/mips32repl/parser"
	"github.com/mips32repl/mips32repl/register"
)

// Dashboard is the live register/instruction/memory view.
type Dashboard struct {
	Engine *cpu.Engine
	Asm    *assembler.State

	app           *tview.Application
	registerView  *tview.TextView
	instrView     *tview.TextView
	memoryView    *tview.TextView
	statusView    *tview.TextView
}

// New builds a dashboard over engine/asm's live state.
func New(engine *cpu.Engine, asm *assembler.State) *Dashboard {
	d := &Dashboard{
		Engine: engine,
		Asm:    asm,
		app:    tview.NewApplication(),
	}
	d.build()
	return d
}

func (d *Dashboard) build() {
	d.registerView = tview.NewTextView().SetDynamicColors(true)
	d.registerView.SetBorder(true).SetTitle(" Registers ")

	d.instrView = tview.NewTextView().SetDynamicColors(true)
	d.instrView.SetBorder(true).SetTitle(" Instructions near pc ")

	d.memoryView = tview.NewTextView().SetDynamicColors(true)
	d.memoryView.SetBorder(true).SetTitle(" Memory near $sp ")

	d.statusView = tview.NewTextView().SetDynamicColors(true)
	d.statusView.SetBorder(true).SetTitle(" Status ")

	top := tview.NewFlex().
		AddItem(d.registerView, 0, 1, false).
		AddItem(d.instrView, 0, 1, false)

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(top, 0, 3, false).
		AddItem(d.memoryView, 0, 2, false).
		AddItem(d.statusView, 3, 0, false)

	d.app.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		switch {
		case ev.Key() == tcell.KeyCtrlC:
			d.app.Stop()
			return nil
		case ev.Rune() == 'q':
			d.app.Stop()
			return nil
		case ev.Key() == tcell.KeyF5:
			d.refresh()
			return nil
		}
		return ev
	})

	d.app.SetRoot(layout, true)
}

// Run shows the dashboard and blocks until the user presses 'q' or
// Ctrl-C. It reflects a single snapshot, refreshed on F5, rather than
// ticking on a timer: the interpreter has no background execution to
// observe between REPL commands.
func (d *Dashboard) Run() error {
	d.refresh()
	d.statusView.SetText("[yellow]F5[white] refresh   [yellow]q[white] / [yellow]Ctrl-C[white] close")
	return d.app.Run()
}

func (d *Dashboard) refresh() {
	d.registerView.SetText(formatRegisters(d.Engine.Registers))
	d.instrView.SetText(formatInstructions(d.Asm, d.Engine.CurrentPC()))
	d.memoryView.SetText(formatMemory(d.Engine.Memory, d.Engine.Registers.Get(register.Sp)))
	d.app.Draw()
}

// formatRegisters renders all 32 general registers (4 per row) plus
// pc/hi/lo, the data behind the dashboard's Registers panel.
func formatRegisters(regs *register.File) string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		var cols []string
		for col := 0; col < 4; col++ {
			idx := register.Index(row*4 + col)
			cols = append(cols, fmt.Sprintf("%-5s 0x%08X", idx.Name(), regs.Get(idx)))
		}
		sb.WriteString(strings.Join(cols, "  "))
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "pc    0x%08X  hi 0x%08X  lo 0x%08X\n", regs.PC(), regs.HI(), regs.LO())
	return sb.String()
}

// formatInstructions renders every stored instruction within a small
// window around pc, marking pc's own line, the data behind the
// dashboard's Instructions panel.
func formatInstructions(asm *assembler.State, pc uint32) string {
	start := pc
	if start > 16 {
		start -= 16
	}
	var lines []string
	for addr := start; addr < start+64; addr += 4 {
		in, ok := asm.LocationsToInstructions[addr]
		if !ok {
			continue
		}
		marker := "  "
		color := "white"
		if addr == pc {
			marker, color = "->", "yellow"
		}
		lines = append(lines, fmt.Sprintf("[%s]%s 0x%08X: %s[white]", color, marker, addr, parser.Render(in)))
	}
	return strings.Join(lines, "\n")
}

// formatMemory renders 8 rows of 8 bytes each starting at sp, the data
// behind the dashboard's Memory panel.
func formatMemory(mem *memory.Store, sp uint32) string {
	var lines []string
	for row := 0; row < 8; row++ {
		addr := sp + uint32(row*8)
		bytes := mem.GetBytes(addr, 8)
		var hexParts []string
		for _, b := range bytes {
			hexParts = append(hexParts, fmt.Sprintf("%02X", b))
		}
		lines = append(lines, fmt.Sprintf("0x%08X: %s", addr, strings.Join(hexParts, " ")))
	}
	return strings.Join(lines, "\n")
}
