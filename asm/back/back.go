// Package back implements pass 2: it encodes collected instruction lines
// into the 4-word instruction format and appends the trailing halt.
package back

import (
	"context"
	"fmt"
	"strings"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/wordvm/zasm/asm/expr"
	"github.com/wordvm/zasm/asm/front"
	"github.com/wordvm/zasm/asm/isa"
)

type (
	Compiler struct{}

	UnknownMnemonicError struct {
		Name string
	}

	ArityMismatchError struct {
		Name string
		Want int
		Got  int
	}
)

func New() *Compiler {
	return nil
}

// Encode appends the encoded program to b: 4 words per instruction slot in
// order, then the unconditional trailing halt.
//
// A halt line emits nothing. It still owned a slot index in pass 1, so a
// mid-program halt leaves labels behind it numbered as if it had emitted
// words; that skew is part of the format, not repaired here.
func (c *Compiler) Encode(ctx context.Context, b []uint16, syms expr.Symtab, insns []front.Insn) (_ []uint16, err error) {
	for _, in := range insns {
		b, err = c.encode(ctx, b, syms, in)
		if err != nil {
			return nil, errors.Wrap(err, "line %d", in.Line)
		}
	}

	b = append(b, isa.Control(isa.Opcodes["halt"], 0), 0, 0, 0)

	return b, nil
}

func (c *Compiler) encode(ctx context.Context, b []uint16, syms expr.Symtab, in front.Insn) ([]uint16, error) {
	tr := tlog.SpanFromContext(ctx)

	fields := strings.Fields(in.Text)
	name := fields[0]

	op, ok := isa.Opcodes[name]
	if !ok {
		return nil, UnknownMnemonicError{Name: name}
	}

	if name == "halt" {
		return b, nil
	}

	args := splitArgs(fields[1:])
	sh := isa.Shapes[name]

	if len(args) != sh.Args {
		return nil, ArityMismatchError{Name: name, Want: sh.Args, Got: len(args)}
	}

	var slots [3]uint16
	var flags uint16

	for i, arg := range args {
		o, err := expr.ResolveOperand(arg, syms)
		if err != nil {
			return nil, err
		}

		slots[sh.Ops[i].Slot] = o.Value

		if o.Imm {
			flags |= sh.Ops[i].Flag
		}
	}

	tr.V("encode").Printw("instruction",
		"line", in.Line, "op", name, "flags", flags,
		"a", slots[isa.SlotA], "b", slots[isa.SlotB], "c", slots[isa.SlotC])

	return append(b, isa.Control(op, flags), slots[isa.SlotA], slots[isa.SlotB], slots[isa.SlotC]), nil
}

// splitArgs joins the operand fields back together without whitespace and
// splits on commas, so "A , 5" and "A,5" read the same. Empty items are
// dropped.
func splitArgs(fields []string) []string {
	joined := strings.Join(fields, "")
	if joined == "" {
		return nil
	}

	var args []string

	for _, a := range strings.Split(joined, ",") {
		if a != "" {
			args = append(args, a)
		}
	}

	return args
}

func (e UnknownMnemonicError) Error() string {
	return fmt.Sprintf("unknown instruction %q", e.Name)
}

func (e ArityMismatchError) Error() string {
	return fmt.Sprintf("%q needs %d args, got %d", e.Name, e.Want, e.Got)
}
