// Package strescape converts between the literal escape sequences
// used in MIPS ".ascii"/".asciiz" string literals and their decoded
// byte values, bidirectionally.
package strescape

import (
	"fmt"
	"strings"
)

// Unescape decodes a string containing backslash escape sequences into
// its raw byte form. Recognized escapes: \\ \" \' \n \r \t \0 \? \a \b
// \f \v. An unrecognized escape, a lone trailing backslash, or an
// unescaped quote of the delimiter character is an error.
func Unescape(s string, quote byte) (string, error) {
	var sb strings.Builder
	sb.Grow(len(s))

	i := 0
	for i < len(s) {
		c := s[i]
		if c == quote {
			return "", fmt.Errorf("unescaped %q inside string literal at offset %d", quote, i)
		}
		if c != '\\' {
			sb.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(s) {
			return "", fmt.Errorf("trailing backslash in string literal")
		}
		b, ok := decodeEscape(s[i+1])
		if !ok {
			return "", fmt.Errorf("invalid escape sequence: \\%c", s[i+1])
		}
		sb.WriteByte(b)
		i += 2
	}
	return sb.String(), nil
}

// decodeEscape maps the character following a backslash to its byte
// value.
func decodeEscape(c byte) (byte, bool) {
	switch c {
	case '\\':
		return '\\', true
	case '"':
		return '"', true
	case '\'':
		return '\'', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	case '0':
		return 0x00, true
	case '?':
		return '?', true
	case 'a':
		return '\a', true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'v':
		return '\v', true
	default:
		return 0, false
	}
}

// escapeTable is the inverse of decodeEscape for every decoded byte
// except '\'' and '?', which Escape leaves unescaped; it is used by
// Escape to re-render a decoded byte as its canonical two-character
// escape.
var escapeTable = map[byte]string{
	'\\': `\\`,
	'"':  `\"`,
	'\n': `\n`,
	'\r': `\r`,
	'\t': `\t`,
	0x00: `\0`,
	'\a': `\a`,
	'\b': `\b`,
	'\f': `\f`,
	'\v': `\v`,
}

// Escape re-renders a raw byte string into its literal escaped form,
// the inverse of Unescape: Unescape(Escape(raw), q) == raw for any raw
// string and a q that does not occur unescaped. Escape(Unescape(s)) == s
// holds for every s containing only recognized escapes other than \'
// and \?, which come back as a bare ' and ?.
func Escape(raw string) string {
	var sb strings.Builder
	sb.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		b := raw[i]
		if esc, ok := escapeTable[b]; ok {
			sb.WriteString(esc)
			continue
		}
		sb.WriteByte(b)
	}
	return sb.String()
}

// ExtractQuoted extracts the raw substring between the first and last
// double quote in src, without tokenizing it first. This preserves
// inner whitespace for .ascii/.asciiz literals, the way the teacher's
// lexer reads string tokens directly off the raw line rather than off
// whitespace-split tokens. Returns an error if there are fewer than
// two quote characters, or if anything non-blank trails the closing
// quote.
func ExtractQuoted(src string) (string, error) {
	first := strings.IndexByte(src, '"')
	if first < 0 {
		return "", fmt.Errorf("expected a quoted string literal")
	}
	last := strings.LastIndexByte(src, '"')
	if last <= first {
		return "", fmt.Errorf("unterminated string literal")
	}
	trailing := strings.TrimSpace(src[last+1:])
	if trailing != "" {
		return "", fmt.Errorf("unexpected trailing content after string literal: %q", trailing)
	}
	return src[first+1 : last], nil
}
