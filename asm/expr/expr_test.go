package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEval(t *testing.T) {
	syms := Symtab{"x": 5, "y": 8, "a": 10, "b": 3, "c": 2}

	for _, tc := range []struct {
		In  string
		Out uint16
	}{
		{"5", 5},
		{"65535", 65535},
		{"x", 5},
		{" x + 3 ", 8},
		{"y-10", 65534}, // wraps at 16 bits
		{"x+y+c", 15},
		{"a-b", 7},
	} {
		v, err := Eval(tc.In, syms)
		require.NoError(t, err, "eval %q", tc.In)
		assert.Equal(t, tc.Out, v, "eval %q", tc.In)
	}
}

func TestEvalSplitsAtPlusFirst(t *testing.T) {
	syms := Symtab{"a": 10, "b": 3, "c": 2}

	// the split is tried at '+' before '-' whatever comes first in the
	// text, so a-b+c reads as (a-b)+c
	v, err := Eval("a-b+c", syms)
	require.NoError(t, err)
	assert.Equal(t, uint16(9), v)
}

func TestEvalErrors(t *testing.T) {
	syms := Symtab{"x": 5}

	_, err := Eval("nope", syms)
	require.ErrorAs(t, err, &UnknownSymbolError{})

	_, err = Eval("x+nope", syms)
	require.ErrorAs(t, err, &UnknownSymbolError{})

	_, err = Eval("5+", syms)
	require.ErrorAs(t, err, &MalformedExpressionError{})

	_, err = Eval("", syms)
	require.ErrorAs(t, err, &MalformedExpressionError{})
}

func TestResolveOperand(t *testing.T) {
	syms := Symtab{"start": 4, "A": 0}

	o, err := ResolveOperand("17", syms)
	require.NoError(t, err)
	assert.Equal(t, Operand{Value: 17, Imm: true}, o)

	o, err = ResolveOperand("ST", syms)
	require.NoError(t, err)
	assert.Equal(t, Operand{Value: 11}, o)

	o, err = ResolveOperand("start", syms)
	require.NoError(t, err)
	assert.Equal(t, Operand{Value: 4, Imm: true}, o)

	o, err = ResolveOperand("start+2", syms)
	require.NoError(t, err)
	assert.Equal(t, Operand{Value: 6, Imm: true}, o)

	_, err = ResolveOperand("nope", syms)
	require.ErrorAs(t, err, &InvalidOperandError{})
}

func TestResolveOperandRegisterWinsOverSymbol(t *testing.T) {
	// a constant named like a register never turns the bare name into an
	// immediate, the register check runs first
	syms := Symtab{"B": 42}

	o, err := ResolveOperand("B", syms)
	require.NoError(t, err)
	assert.Equal(t, Operand{Value: 1}, o)
}
