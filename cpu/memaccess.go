package cpu

import (
	"fmt"

	"github.com/mips32repl/mips32repl/bits"
	"github.com/mips32repl/mips32repl/parser"
)

// execMemory computes the effective address and performs the load or
// store. An unaligned address is an execution warning: a diagnostic
// is emitted and the access is skipped entirely (the destination
// register, or memory, is left untouched).
func (e *Engine) execMemory(m *parser.MemoryData) {
	base := e.Registers.Get(m.BaseReg)
	addr := base + bits.AsUint32(m.OffsetImm.SignExtended())
	size := uint32(1) << uint(m.SizePow2)

	if addr%size != 0 {
		fmt.Fprintf(e.Stderr, "unaligned memory address 0x%08X\n", addr)
		return
	}

	if m.Storing {
		v := e.Registers.Get(m.Reg)
		switch m.SizePow2 {
		case 0:
			e.Memory.WriteByte(addr, byte(v))
		case 1:
			e.Memory.WriteHalfUnaligned(addr, uint16(v))
		case 2:
			e.Memory.WriteWordUnaligned(addr, v)
		}
		return
	}

	// Loads zero-extend for every width, including lb/lh — a
	// documented departure from strict MIPS sign-extension on byte
	// and halfword loads.
	var v uint32
	switch m.SizePow2 {
	case 0:
		v = uint32(e.Memory.ReadByte(addr))
	case 1:
		h, _ := e.Memory.ReadHalf(addr)
		v = uint32(h)
	case 2:
		v, _ = e.Memory.ReadWord(addr)
	}
	e.Registers.Set(m.Reg, v)
}
