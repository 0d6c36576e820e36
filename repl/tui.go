package repl

import (
	"fmt"

	"github.com/mips32repl/mips32repl/tui"
)

// cmdTUI opens the live dashboard over the REPL's engine and assembler
// state. It blocks until the user closes the dashboard (q or Ctrl-C),
// then returns control to the ordinary prompt loop.
func (r *REPL) cmdTUI() {
	dash := tui.New(r.Engine, r.Asm)
	if err := dash.Run(); err != nil {
		fmt.Fprintln(r.Stderr, "tui:", err)
	}
}
