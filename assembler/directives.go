package assembler

import "github.com/mips32repl/mips32repl/parser"

// executeDirective applies a directive's effect immediately, rather
// than storing it as code: segment-selector directives flip
// writingData, .align/.space advance the active cursor, and the data
// directives deposit bytes and advance the cursor by what they wrote.
func (s *State) executeDirective(in *parser.Instruction) error {
	d := in.Directive
	switch d.Kind {
	case parser.DirText:
		s.writingData = false

	case parser.DirData:
		s.writingData = true

	case parser.DirGlobal:
		// Recognized but otherwise a no-op: label resolution already
		// happens uniformly regardless of whether it was declared
		// global.

	case parser.DirAlign:
		n := uint32(d.Numbers[0])
		boundary := uint32(1) << n
		pad := (boundary - (s.NextLocation() % boundary)) % boundary
		s.advanceCursor(pad)

	case parser.DirSpace:
		s.advanceCursor(uint32(d.Numbers[0]))

	case parser.DirByte:
		for _, v := range d.Numbers {
			s.Memory.WriteByte(s.NextLocation(), byte(v))
			s.advanceCursor(1)
		}

	case parser.DirHalf:
		for _, v := range d.Numbers {
			s.Memory.WriteHalfUnaligned(s.NextLocation(), uint16(v))
			s.advanceCursor(2)
		}

	case parser.DirWord:
		for _, v := range d.Numbers {
			s.Memory.WriteWordUnaligned(s.NextLocation(), uint32(v))
			s.advanceCursor(4)
		}

	case parser.DirAscii, parser.DirAsciiz:
		s.Memory.LoadBytes(s.NextLocation(), d.Bytes)
		s.advanceCursor(uint32(len(d.Bytes)))
	}
	return nil
}
