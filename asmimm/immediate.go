// Package asmimm parses the decimal and hexadecimal immediate
// operands that appear in MIPS assembly source, and splits a wide
// 32-bit constant into the (low16, high16) pair a "li" pseudo-op needs
// to build with lui+ori.
package asmimm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mips32repl/mips32repl/bits"
)

// Immediate is a 16-bit value with three projections: the raw bit
// pattern, its sign-extended 32-bit interpretation, and its
// zero-extended 32-bit interpretation (used when encoding an
// instruction word).
type Immediate struct {
	raw uint16
}

// FromRaw wraps a raw 16-bit bit pattern.
func FromRaw(raw uint16) Immediate {
	return Immediate{raw: raw}
}

// Raw returns the unmodified 16-bit bit pattern.
func (im Immediate) Raw() uint16 {
	return im.raw
}

// SignExtended sign-extends the immediate to 32 bits.
func (im Immediate) SignExtended() int32 {
	return bits.SignExtend16(im.raw)
}

// ZeroExtended zero-extends the immediate to 32 bits, the projection
// used when packing an instruction's 16-bit immediate field.
func (im Immediate) ZeroExtended() uint32 {
	return bits.ZeroExtend16(im.raw)
}

// Parse16 parses a decimal or hexadecimal ("0x...") literal as a
// 16-bit immediate operand. Accepts any value representable either as
// a signed 16-bit integer (-32768..32767) or as an unsigned 16-bit
// integer (0..65535); both ranges map onto the same 16-bit storage, so
// -1 and 0xFFFF parse to the identical raw pattern. Values outside
// both ranges are a parse error.
func Parse16(text string) (Immediate, error) {
	v, err := parseSigned(text, 32)
	if err != nil {
		return Immediate{}, err
	}
	if v >= -32768 && v <= 65535 {
		return Immediate{raw: uint16(uint32(v))}, nil
	}
	return Immediate{}, fmt.Errorf("immediate %q out of 16-bit range", text)
}

// ParseShiftAmount parses a shift-amount operand for sll/sra/srl,
// which must be an integer literal in 0..31 inclusive.
func ParseShiftAmount(text string) (uint32, error) {
	v, err := parseSigned(text, 32)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 31 {
		return 0, fmt.Errorf("shift amount %q out of range 0..31", text)
	}
	return uint32(v), nil
}

// ParseWord parses a decimal or hexadecimal literal as a full 32-bit
// constant, used by `li`, `.word`, and `.byte`/`.half` range checks.
func ParseWord(text string) (uint32, error) {
	v, err := parseSigned(text, 64)
	if err != nil {
		return 0, err
	}
	if v < -(1<<31) || v > 0xFFFFFFFF {
		return 0, fmt.Errorf("value %q out of 32-bit range", text)
	}
	return uint32(v), nil
}

// SplitWide splits a 32-bit constant into the (low16, high16) pair
// used to materialize it via `lui $dst, high16` followed by
// `ori $dst, $dst, low16` (or an add-immediate equivalent).
func SplitWide(v uint32) (low, high Immediate) {
	l, h := bits.SplitWord(v)
	return FromRaw(l), FromRaw(h)
}

// parseSigned parses a decimal or "0x"-prefixed hexadecimal literal,
// permitting a leading '-' on decimal forms, into an int64 with the
// given working bit size.
func parseSigned(text string, bitSize int) (int64, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return 0, fmt.Errorf("empty immediate")
	}

	neg := false
	rest := t
	if strings.HasPrefix(rest, "-") {
		neg = true
		rest = rest[1:]
	} else if strings.HasPrefix(rest, "+") {
		rest = rest[1:]
	}

	if strings.HasPrefix(rest, "0x") || strings.HasPrefix(rest, "0X") {
		u, err := strconv.ParseUint(rest[2:], 16, bitSize)
		if err != nil {
			return 0, fmt.Errorf("invalid hexadecimal immediate %q: %w", text, err)
		}
		v := int64(u)
		if neg {
			v = -v
		}
		return v, nil
	}

	v, err := strconv.ParseInt(t, 10, bitSize)
	if err != nil {
		// Might be a decimal value that only fits unsigned at this
		// bit size (e.g. "65535" at bitSize=16 fed through as 32).
		u, uerr := strconv.ParseUint(t, 10, bitSize)
		if uerr != nil {
			return 0, fmt.Errorf("invalid decimal immediate %q: %w", text, err)
		}
		return int64(u), nil
	}
	return v, nil
}
