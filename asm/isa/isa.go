// Package isa defines the target machine instruction set: the 12 registers,
// the opcode numbering, per-mnemonic operand shapes and the control word layout.
//
// An encoded instruction is 4 words: control, a, b, c. The control word packs
// the immediate flags into bits 13-15 and the opcode into the low bits.
package isa

type (
	Reg uint16

	// Slot is an operand slot of the 4-word instruction format.
	Slot int

	// Shape describes how a mnemonic maps its source operands onto slots.
	Shape struct {
		Args int
		Ops  []OpSlot
	}

	OpSlot struct {
		Slot Slot
		Flag uint16 // immediate flag bit, 0 if the slot is never flagged
	}
)

const (
	SlotA Slot = iota
	SlotB
	SlotC
)

// Immediate flag bits of the control word (before the <<13 shift).
const (
	FlagA = 1 << iota
	FlagB
	FlagC
)

const FlagsShift = 13

const (
	A Reg = iota
	B
	C
	D
	IP
	SS
	SO
	MS
	MO
	I
	O
	ST

	NumRegs = 12
)

var Registers = map[string]Reg{
	"A": A, "B": B, "C": C, "D": D,
	"IP": IP, "SS": SS, "SO": SO,
	"MS": MS, "MO": MO,
	"I": I, "O": O, "ST": ST,
}

// Opcodes maps mnemonics to their 1-based opcode values.
// The encoded control word stores value-1.
var Opcodes = map[string]uint16{
	"mov":  1,
	"add":  2,
	"sub":  3,
	"mul":  4,
	"and":  5,
	"or":   6,
	"xor":  7,
	"not":  8,
	"jmp":  9,
	"jml":  10,
	"jmle": 11,
	"jmb":  12,
	"jmbe": 13,
	"jme":  14,
	"jmne": 15,
	"save": 16,
	"load": 17,
	"push": 18,
	"pop":  19,
	"halt": 20,
	"shl":  21,
	"shr":  22,
}

// Shapes lists arity and slot assignment per mnemonic. halt takes no
// operands and is absent: it never reaches the packer.
var Shapes = map[string]Shape{
	"mov": {Args: 2, Ops: []OpSlot{{SlotA, FlagA}, {SlotB, 0}}},

	"add": shape3,
	"sub": shape3,
	"and": shape3,
	"or":  shape3,
	"xor": shape3,
	"shl": shape3,
	"shr": shape3,

	"mul": {Args: 2, Ops: []OpSlot{{SlotA, FlagA}, {SlotB, FlagB}}},
	"not": {Args: 2, Ops: []OpSlot{{SlotA, FlagA}, {SlotC, 0}}},

	"jmp": {Args: 1, Ops: []OpSlot{{SlotC, FlagC}}},

	"jml":  jump3,
	"jmle": jump3,
	"jmb":  jump3,
	"jmbe": jump3,
	"jme":  jump3,
	"jmne": jump3,

	"save": {Args: 1, Ops: []OpSlot{{SlotA, FlagA}}},
	"push": {Args: 1, Ops: []OpSlot{{SlotA, FlagA}}},
	"load": {Args: 1, Ops: []OpSlot{{SlotC, FlagC}}},
	"pop":  {Args: 1, Ops: []OpSlot{{SlotA, 0}}},
}

var (
	shape3 = Shape{Args: 3, Ops: []OpSlot{{SlotA, FlagA}, {SlotB, FlagB}, {SlotC, 0}}}
	jump3  = Shape{Args: 3, Ops: []OpSlot{{SlotA, FlagA}, {SlotB, FlagB}, {SlotC, FlagC}}}
)

// Control packs immediate flags and a 1-based opcode value into a control word.
func Control(op, flags uint16) uint16 {
	return flags<<FlagsShift | (op - 1)
}

// Mnemonic returns the mnemonic for an encoded (0-based) opcode, or "".
func Mnemonic(op uint16) string {
	for name, v := range Opcodes {
		if v-1 == op {
			return name
		}
	}

	return ""
}

// RegIndex resolves a register name. Operand resolution checks this before
// the symbol table so register names keep their index even when shadowed.
func RegIndex(name string) (Reg, bool) {
	r, ok := Registers[name]
	return r, ok
}

// AppendWords serializes words little-endian, the byte order the machine
// loads its memory image in.
func AppendWords(b []byte, words []uint16) []byte {
	for _, w := range words {
		b = append(b, byte(w), byte(w>>8))
	}

	return b
}
