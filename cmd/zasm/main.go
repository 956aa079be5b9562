package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/wordvm/zasm/asm"
	"github.com/wordvm/zasm/asm/format"
	"github.com/wordvm/zasm/asm/isa"
)

func main() {
	asmCmd := &cli.Command{
		Name:   "asm",
		Action: asmAct,
		Args:   cli.Args{},
	}

	dumpCmd := &cli.Command{
		Name:   "dump",
		Action: dumpAct,
		Args:   cli.Args{},
	}

	app := &cli.Command{
		Name:        "zasm",
		Description: "zasm assembles word machine programs",
		Commands: []*cli.Command{
			asmCmd,
			dumpCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func asmAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	for _, a := range c.Args {
		words, err := asm.AssembleFile(ctx, a)
		if err != nil {
			return errors.Wrap(err, "assemble %v", a)
		}

		out := strings.TrimSuffix(a, filepath.Ext(a)) + ".bin"

		err = os.WriteFile(out, isa.AppendWords(nil, words), 0o644)
		if err != nil {
			return errors.Wrap(err, "write %v", out)
		}

		tlog.Printw("wrote", "file", out, "words", len(words))
	}

	return nil
}

func dumpAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	for _, a := range c.Args {
		words, err := asm.AssembleFile(ctx, a)
		if err != nil {
			return errors.Wrap(err, "assemble %v", a)
		}

		fmt.Printf("%s", format.Listing(nil, words))
	}

	return nil
}
