// Package asm assembles source text for the word machine into its flat
// 16-bit word stream.
//
// Assembly is two passes: front collects constants, labels and instruction
// lines; back resolves operands against the flat symbol table and packs the
// 4-word instructions. One call is fully independent of any other, there is
// no state outside the call.
package asm

import (
	"context"
	"os"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/wordvm/zasm/asm/back"
	"github.com/wordvm/zasm/asm/front"
)

// AssembleFile reads and assembles one source file.
func AssembleFile(ctx context.Context, name string) ([]uint16, error) {
	text, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	tlog.SpanFromContext(ctx).Printw("read file", "size", len(text), "name", name)

	return Assemble(ctx, name, text)
}

// Assemble translates source text into the encoded word stream. The result
// always ends with the 4 words of a halt instruction and its length is a
// multiple of 4. On any error the whole assembly is abandoned, there is no
// partial output.
func Assemble(ctx context.Context, name string, text []byte) (words []uint16, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "assemble", "name", name)
	defer tr.Finish("err", &err)

	st := front.New()

	st.AddFile(ctx, name, text)

	err = st.Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "scan source")
	}

	c := back.New()

	words, err = c.Encode(ctx, nil, st.Symbols(), st.Insns())
	if err != nil {
		return nil, errors.Wrap(err, "encode")
	}

	tr.Printw("assembled", "slots", len(st.Insns()), "words", len(words))

	return words, nil
}
