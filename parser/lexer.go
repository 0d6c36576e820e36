package parser

import (
	"regexp"
	"strings"

	"github.com/mips32repl/mips32repl/register"
)

// Token is a single lexical token produced by Tokenize, along with its
// byte offset in the original line (for diagnostics).
type Token struct {
	Text   string
	Column int
}

// isDelimiter reports whether r is one of the characters that splits
// tokens: comma, parentheses, space, or tab.
func isDelimiter(r rune) bool {
	switch r {
	case ',', '(', ')', ' ', '\t':
		return true
	default:
		return false
	}
}

// Tokenize splits a source line into tokens on the delimiter class
// {',', '(', ')', whitespace, tab}. Empty tokens are discarded.
func Tokenize(line string) []Token {
	var tokens []Token
	start := -1
	flush := func(end int) {
		if start >= 0 && end > start {
			tokens = append(tokens, Token{Text: line[start:end], Column: start})
		}
		start = -1
	}
	for i, r := range line {
		if isDelimiter(r) {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
		}
	}
	flush(len(line))
	return tokens
}

// SplitComment scans tokens for the first one containing '#' and
// separates the instruction tokens from the comment text. If '#' is
// the first character of a token, that token and every token after it
// become the comment. Otherwise the portion of that token before '#'
// is kept as a real token, and the rest (plus following tokens) forms
// the comment.
func SplitComment(tokens []Token) (kept []Token, comment string) {
	for i, tok := range tokens {
		idx := strings.IndexByte(tok.Text, '#')
		if idx < 0 {
			continue
		}
		var commentParts []string
		if idx > 0 {
			kept = append(kept, tokens[:i]...)
			kept = append(kept, Token{Text: tok.Text[:idx], Column: tok.Column})
			commentParts = append(commentParts, tok.Text[idx+1:])
		} else {
			kept = append(kept, tokens[:i]...)
			commentParts = append(commentParts, tok.Text[1:])
		}
		for _, rest := range tokens[i+1:] {
			commentParts = append(commentParts, rest.Text)
		}
		return kept, strings.TrimSpace(strings.Join(commentParts, " "))
	}
	return tokens, ""
}

// labelRegexp matches a legal label name.
var labelRegexp = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// IsValidLabelName reports whether name matches the label grammar and
// does not collide with a register name.
func IsValidLabelName(name string) bool {
	return labelRegexp.MatchString(name) && !register.IsRegisterName(name)
}

// ExtractLabels repeatedly peels label syntax off the front of tokens:
// while the first remaining token ends with ':', it is split on ':'
// (dropping empty fragments), and every fragment must be a valid label
// name. Multiple labels on one token ("foo:bar:baz:") and multiple
// label tokens in a row are both supported. Returns the extracted
// labels in order and the remaining tokens, or an error if a fragment
// is not a legal label.
func ExtractLabels(tokens []Token) (labels []string, rest []Token, err *Error, pos Position) {
	rest = tokens
	for len(rest) > 0 && strings.HasSuffix(rest[0].Text, ":") {
		tok := rest[0]
		parts := strings.Split(tok.Text, ":")
		for _, p := range parts {
			if p == "" {
				continue
			}
			if !IsValidLabelName(p) {
				return nil, nil, NewError(Position{Column: tok.Column}, ErrorInvalidLabel,
					"invalid label name: "+p), Position{Column: tok.Column}
			}
			labels = append(labels, p)
		}
		rest = rest[1:]
	}
	return labels, rest, nil, Position{}
}

// tokenTexts extracts the Text field of each token, for callers that
// no longer need position information.
func tokenTexts(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Text
	}
	return out
}
