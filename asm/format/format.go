// Package format renders an encoded word stream as a human-readable listing.
// It splits control word fields, it does not reconstruct source.
package format

import (
	"github.com/nikandfor/hacked/hfmt"

	"github.com/wordvm/zasm/asm/isa"
)

// Listing appends one row per 4-word instruction: word offset, control word,
// mnemonic, flags and the three operand words.
//
//	0000  2000  mov   f=1  a=0000 b=0005 c=0000
func Listing(b []byte, words []uint16) []byte {
	for off := 0; off+4 <= len(words); off += 4 {
		ctl := words[off]

		op := ctl &^ (0x7 << isa.FlagsShift)
		flags := ctl >> isa.FlagsShift

		name := isa.Mnemonic(op)
		if name == "" {
			name = "?"
		}

		b = hfmt.Appendf(b, "%04x  %04x  %-4v  f=%x  a=%04x b=%04x c=%04x\n",
			off, ctl, name, flags, words[off+1], words[off+2], words[off+3])
	}

	return b
}
