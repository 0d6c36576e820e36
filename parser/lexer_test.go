package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mips32repl/mips32repl/parser"
)

func TestTokenizeSplitsOnDelimiters(t *testing.T) {
	toks := parser.Tokenize("add $t0, $t1, $t2")
	texts := make([]string, len(toks))
	for i, tok := range toks {
		texts[i] = tok.Text
	}
	assert.Equal(t, []string{"add", "$t0", "$t1", "$t2"}, texts)
}

func TestTokenizeParens(t *testing.T) {
	toks := parser.Tokenize("lw $t0, 4($sp)")
	texts := make([]string, len(toks))
	for i, tok := range toks {
		texts[i] = tok.Text
	}
	assert.Equal(t, []string{"lw", "$t0", "4", "$sp"}, texts)
}

func TestSplitCommentFullLine(t *testing.T) {
	toks := parser.Tokenize("# just a comment")
	kept, comment := parser.SplitComment(toks)
	assert.Empty(t, kept)
	assert.Equal(t, "just a comment", comment)
}

func TestSplitCommentMidToken(t *testing.T) {
	toks := parser.Tokenize("add $t0, $t1, $t2 #sum")
	kept, comment := parser.SplitComment(toks)
	assert.Len(t, kept, 4)
	assert.Equal(t, "sum", comment)
}

func TestSplitCommentAdjacent(t *testing.T) {
	toks := parser.Tokenize("li $t0, 5#five")
	kept, comment := parser.SplitComment(toks)
	assert.Equal(t, []string{"li", "$t0", "5"}, tokenText(kept))
	assert.Equal(t, "five", comment)
}

func TestExtractLabelsSingle(t *testing.T) {
	toks := parser.Tokenize("loop: addi $t0, $t0, 1")
	labels, rest, err, _ := parser.ExtractLabels(toks)
	assert.Nil(t, err)
	assert.Equal(t, []string{"loop"}, labels)
	assert.Equal(t, []string{"addi", "$t0", "$t0", "1"}, tokenText(rest))
}

func TestExtractLabelsMultiple(t *testing.T) {
	toks := parser.Tokenize("foo: bar: add $t0, $t0, $t0")
	labels, rest, err, _ := parser.ExtractLabels(toks)
	assert.Nil(t, err)
	assert.Equal(t, []string{"foo", "bar"}, labels)
	assert.Equal(t, []string{"add", "$t0", "$t0", "$t0"}, tokenText(rest))
}

func TestExtractLabelsInvalidName(t *testing.T) {
	toks := parser.Tokenize("label!: nop")
	_, _, err, _ := parser.ExtractLabels(toks)
	assert.NotNil(t, err)
}

func TestIsValidLabelName(t *testing.T) {
	assert.True(t, parser.IsValidLabelName("loop_1"))
	assert.True(t, parser.IsValidLabelName("loop-1"))
	assert.False(t, parser.IsValidLabelName("loop!"))
	assert.False(t, parser.IsValidLabelName(""))
}

func tokenText(toks []parser.Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Text
	}
	return out
}
