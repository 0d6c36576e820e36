// Package assembler tracks label definitions, encodes and stores
// parsed instructions into a simulated memory image, and executes
// assembler directives immediately as they are parsed — the "assembler
// state" component sitting between the instruction parser and the CPU
// execution engine.
package assembler

import (
	"fmt"

	"github.com/mips32repl/mips32repl/memory"
	"github.com/mips32repl/mips32repl/parser"
)

// Standard MIPS32 segment bases and the conventional high stack
// pointer value.
const (
	TextBase uint32 = 0x00400000
	DataBase uint32 = 0x10000000
	StackTop uint32 = 0x7FFFFFFC
)

// unencodableSentinel marks a stored instruction that the encoder has
// no machine-word rule for. Distinct from the legitimate all-zero
// encoding of "sll $zero, $zero, 0", MIPS's conventional NOP.
const unencodableSentinel uint32 = 0xFFFFFFFF

// State is the assembler's accumulated bookkeeping: the label table,
// the sparse address→instruction map, pending forward references, and
// the memory image instructions and directives write into.
type State struct {
	LabelsToLocations       map[string]uint32
	LocationsToInstructions map[uint32]*parser.Instruction
	UnresolvedInstructions  map[string][]*parser.Instruction

	Memory *memory.Store

	// TextBase, DataBase, and StackTop record the segment bases this
	// state was constructed with, so callers (the CPU engine, the
	// REPL) can derive a starting pc/$sp consistent with a
	// configuration that overrode the package defaults.
	TextBase uint32
	DataBase uint32
	StackTop uint32

	textCursor  uint32
	dataCursor  uint32
	writingData bool
}

// New creates an assembler state with its cursors starting at
// textBase/dataBase. Pass the package TextBase/DataBase/StackTop
// constants for the standard MIPS32 layout, or a loaded config's
// Execution fields to override them.
func New(textBase, dataBase, stackTop uint32) *State {
	return &State{
		LabelsToLocations:       make(map[string]uint32),
		LocationsToInstructions: make(map[uint32]*parser.Instruction),
		UnresolvedInstructions:  make(map[string][]*parser.Instruction),
		Memory:                  memory.New(),
		TextBase:                textBase,
		DataBase:                dataBase,
		StackTop:                stackTop,
		textCursor:              textBase,
		dataCursor:              dataBase,
	}
}

// NextLocation returns the address the next parsed line will occupy,
// chosen from whichever cursor is currently active.
func (s *State) NextLocation() uint32 {
	if s.writingData {
		return s.dataCursor
	}
	return s.textCursor
}

// WritingData reports whether .data (rather than .text) is the active
// segment selector.
func (s *State) WritingData() bool {
	return s.writingData
}

func (s *State) advanceCursor(n uint32) {
	if s.writingData {
		s.dataCursor += n
	} else {
		s.textCursor += n
	}
}

// Outcome reports the effects of assembling one parsed line's
// instruction array, so the REPL can decide whether to pause
// auto-execution or notify a resumed wait list.
type Outcome struct {
	Stored          []*parser.Instruction
	NewlyUnresolved []*parser.Instruction
	ResolvedLabels  []string
}

// DuplicateLabelError reports that an instruction array was rejected
// in its entirety because one of its labels was already defined.
type DuplicateLabelError struct {
	Label string
}

func (e *DuplicateLabelError) Error() string {
	return fmt.Sprintf("label already defined: %s", e.Label)
}

// OverwriteError reports an attempt to store a new instruction at an
// address that already holds a distinct executable instruction.
type OverwriteError struct {
	Location uint32
}

func (e *OverwriteError) Error() string {
	return fmt.Sprintf("cannot overwrite executable instruction at 0x%08X", e.Location)
}

// Assemble stores the instruction(s) produced by parsing one source
// line. The whole array is rejected, with none of its side effects
// applied, if any label it defines is already taken. Otherwise each
// instruction is either executed immediately (directives) or encoded
// and written to memory, advancing the active cursor by its
// PCIncrement and recording any label it references that is not yet
// defined.
func (s *State) Assemble(instrs []*parser.Instruction) (*Outcome, error) {
	for _, in := range instrs {
		for _, l := range in.Labels {
			if _, exists := s.LabelsToLocations[l]; exists {
				return nil, &DuplicateLabelError{Label: l}
			}
		}
	}

	out := &Outcome{}
	for _, in := range instrs {
		if err := s.assembleOne(in, out); err != nil {
			return out, err
		}
		out.Stored = append(out.Stored, in)
	}
	return out, nil
}

func (s *State) assembleOne(in *parser.Instruction, out *Outcome) error {
	for _, l := range in.Labels {
		s.LabelsToLocations[l] = in.Location
		if _, pending := s.UnresolvedInstructions[l]; pending {
			delete(s.UnresolvedInstructions, l)
			out.ResolvedLabels = append(out.ResolvedLabels, l)
		}
	}

	switch in.Kind {
	case parser.KindNonExecutable:
		if existing, ok := s.LocationsToInstructions[in.Location]; ok && existing.Kind == parser.KindNonExecutable {
			s.LocationsToInstructions[in.Location] = mergeNonExecutable(existing, in)
			return nil
		}
		s.LocationsToInstructions[in.Location] = in
		return nil

	case parser.KindDirective:
		return s.executeDirective(in)

	default:
		if existing, ok := s.LocationsToInstructions[in.Location]; ok && existing.Kind != parser.KindNonExecutable {
			return &OverwriteError{Location: in.Location}
		}
		word, ok := EncodeInstruction(in)
		if !ok {
			word = unencodableSentinel
		}
		s.Memory.WriteWordUnaligned(in.Location, word)
		s.LocationsToInstructions[in.Location] = in
		s.advanceCursor(in.PCIncrement)

		for _, label := range in.ReferencedLabels() {
			if _, defined := s.LabelsToLocations[label]; !defined {
				s.UnresolvedInstructions[label] = append(s.UnresolvedInstructions[label], in)
				out.NewlyUnresolved = append(out.NewlyUnresolved, in)
			}
		}
		return nil
	}
}

// mergeNonExecutable combines an existing NonExecutable slot's labels
// and comment with a new one overwriting the same address, per the
// assembler state's back-patching allowance.
func mergeNonExecutable(existing, incoming *parser.Instruction) *parser.Instruction {
	merged := *incoming
	merged.Labels = append(append([]string{}, existing.Labels...), incoming.Labels...)
	if merged.Comment == "" {
		merged.Comment = existing.Comment
	}
	return &merged
}
