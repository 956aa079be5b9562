// Package expr evaluates assembler expressions and classifies instruction
// operands against the flat symbol table built by pass 1.
package expr

import (
	"fmt"
	"strconv"
	"strings"

	"tlog.app/go/errors"

	"github.com/wordvm/zasm/asm/isa"
)

type (
	// Symtab is the flat symbol table: labels, constants and registers
	// merged into one namespace. Later insertions win on collision;
	// registers are merged last.
	Symtab map[string]uint16

	// Operand is a resolved instruction operand. Imm distinguishes an
	// immediate value from a register index.
	Operand struct {
		Value uint16
		Imm   bool
	}

	UnknownSymbolError struct {
		Name string
	}

	MalformedExpressionError struct {
		Text string
	}

	InvalidOperandError struct {
		Text string
	}
)

// Eval resolves an expression to a 16-bit value.
//
// Grammar: literal | symbol | expr '+' expr | expr '-' expr. The split is
// tried at the first '+' before any '-', whatever order the operators appear
// in, so "a-b+c" parses as (a-b)+c. Arithmetic wraps at 16 bits.
func Eval(s string, syms Symtab) (uint16, error) {
	s = strings.TrimSpace(s)

	if n, err := strconv.ParseUint(s, 10, 16); err == nil {
		return uint16(n), nil
	}

	if v, ok := syms[s]; ok {
		return v, nil
	}

	if l, r, ok := strings.Cut(s, "+"); ok {
		lv, err := Eval(l, syms)
		if err != nil {
			return 0, err
		}

		rv, err := Eval(r, syms)
		if err != nil {
			return 0, err
		}

		return lv + rv, nil
	}

	if l, r, ok := strings.Cut(s, "-"); ok {
		lv, err := Eval(l, syms)
		if err != nil {
			return 0, err
		}

		rv, err := Eval(r, syms)
		if err != nil {
			return 0, err
		}

		return lv - rv, nil
	}

	if s == "" || s[0] >= '0' && s[0] <= '9' {
		return 0, MalformedExpressionError{Text: s}
	}

	return 0, UnknownSymbolError{Name: s}
}

// ResolveOperand classifies one instruction operand.
//
// A bare literal is an immediate. A bare register name is always a register
// index, even if a constant or label shadows the name in the table. Anything
// containing an operator or naming a known non-register symbol is evaluated
// as an expression and taken as an immediate.
func ResolveOperand(s string, syms Symtab) (Operand, error) {
	if n, err := strconv.ParseUint(s, 10, 16); err == nil {
		return Operand{Value: uint16(n), Imm: true}, nil
	}

	if r, ok := isa.RegIndex(s); ok {
		return Operand{Value: uint16(r)}, nil
	}

	if _, ok := syms[s]; ok || strings.ContainsAny(s, "+-") {
		v, err := Eval(s, syms)
		if err != nil {
			return Operand{}, errors.Wrap(err, "operand %q", s)
		}

		return Operand{Value: v, Imm: true}, nil
	}

	return Operand{}, InvalidOperandError{Text: s}
}

func (e UnknownSymbolError) Error() string {
	return fmt.Sprintf("unknown constant or label: %q", e.Name)
}

func (e MalformedExpressionError) Error() string {
	return fmt.Sprintf("malformed expression: %q", e.Text)
}

func (e InvalidOperandError) Error() string {
	return fmt.Sprintf("invalid operand: %q", e.Text)
}
