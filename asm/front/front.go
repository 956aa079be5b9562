// Package front implements pass 1: it normalizes source lines, resolves
// constant definitions in order, assigns labels to instruction slot indexes
// and collects the instruction lines for the encoder.
package front

import (
	"context"
	"strings"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/wordvm/zasm/asm/expr"
	"github.com/wordvm/zasm/asm/isa"
)

type (
	State struct {
		b []byte // all files concatenated

		files []file

		consts expr.Symtab
		labels expr.Symtab

		insns []Insn
	}

	// Insn is one instruction line collected by pass 1, kept as raw text
	// with its 1-based source line for error reporting.
	Insn struct {
		Line int
		Text string
	}

	file struct {
		Name string
		Base int
	}
)

func New() *State {
	return &State{
		consts: expr.Symtab{},
		labels: expr.Symtab{},
	}
}

func (s *State) AddFile(ctx context.Context, name string, text []byte) {
	f := file{
		Name: name,
		Base: len(s.b),
	}

	s.b = append(s.b, text...)

	s.files = append(s.files, f)
}

// Scan runs pass 1 over the added source.
//
// Constant expressions see only the constants defined above them. Labels
// bind to the index the next instruction slot will occupy; a halt line
// occupies a slot like any other instruction even though the encoder emits
// no words for it.
func (s *State) Scan(ctx context.Context) (err error) {
	tr := tlog.SpanFromContext(ctx)

	for i, line := range strings.Split(string(s.b), "\n") {
		line = normalize(line)
		if line == "" {
			continue
		}

		if rest, ok := strings.CutPrefix(line, "const "); ok {
			if name, val, ok := strings.Cut(rest, ":"); ok {
				name = strings.TrimSpace(name)

				v, err := expr.Eval(val, s.consts)
				if err != nil {
					return errors.Wrap(err, "line %d: const %v", i+1, name)
				}

				s.consts[name] = v

				tr.V("sym").Printw("const", "name", name, "value", v)

				continue
			}

			// no colon: not a constant definition, falls through
			// and fails in pass 2 as an unknown mnemonic
		}

		if strings.HasSuffix(line, ":") {
			name := strings.TrimSpace(strings.TrimSuffix(line, ":"))

			s.labels[name] = uint16(len(s.insns))

			tr.V("sym").Printw("label", "name", name, "slot", len(s.insns))

			continue
		}

		s.insns = append(s.insns, Insn{Line: i + 1, Text: line})
	}

	return nil
}

// Symbols returns the flat symbol table: labels, then constants, then the
// fixed register bindings, later insertions overwriting earlier ones.
// A constant or label sharing a register's name is silently shadowed by the
// register; collisions are not rejected.
func (s *State) Symbols() expr.Symtab {
	syms := expr.Symtab{}

	for name, v := range s.labels {
		syms[name] = v
	}

	for name, v := range s.consts {
		syms[name] = v
	}

	for name, r := range isa.Registers {
		syms[name] = uint16(r)
	}

	return syms
}

func (s *State) Insns() []Insn {
	return s.insns
}

// normalize strips the ';' line comment and surrounding whitespace.
func normalize(line string) string {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		line = line[:i]
	}

	return strings.TrimSpace(line)
}
