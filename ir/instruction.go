// Package ir defines the linear intermediate representation produced by the
// compiler and rewritten by the optimizer.
//
// A program is a plain []Instruction. Loop markers carry no jump targets;
// MatchBrackets computes them for consumers that need them.
package ir

import "fmt"

// Kind identifies the operation of an instruction.
type Kind uint8

const (
	// PointerForward moves the data pointer forward by Count cells.
	PointerForward Kind = iota
	// PointerBackward moves the data pointer backward by Count cells.
	PointerBackward
	// ValueIncrement adds Count to the current cell, modulo 256.
	ValueIncrement
	// ValueDecrement subtracts Count from the current cell, modulo 256.
	ValueDecrement
	// OutputByte emits the current cell.
	OutputByte
	// InputByte reads one byte into the current cell.
	InputByte
	// JumpIfZero opens a loop.
	JumpIfZero
	// JumpIfNonZero closes a loop.
	JumpIfNonZero

	numKinds
)

var kindNames = [numKinds]string{
	PointerForward:  "PointerForward",
	PointerBackward: "PointerBackward",
	ValueIncrement:  "ValueIncrement",
	ValueDecrement:  "ValueDecrement",
	OutputByte:      "OutputByte",
	InputByte:       "InputByte",
	JumpIfZero:      "JumpIfZero",
	JumpIfNonZero:   "JumpIfNonZero",
}

var kindLexemes = [numKinds]byte{
	PointerForward:  '>',
	PointerBackward: '<',
	ValueIncrement:  '+',
	ValueDecrement:  '-',
	OutputByte:      '.',
	InputByte:       ',',
	JumpIfZero:      '[',
	JumpIfNonZero:   ']',
}

// Kinds lists every instruction kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, numKinds)
	for k := Kind(0); k < numKinds; k++ {
		kinds = append(kinds, k)
	}

	return kinds
}

func (k Kind) String() string {
	if k >= numKinds {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}

	return kindNames[k]
}

// Lexeme returns the source character that compiles to a unit instruction of
// this kind.
func (k Kind) Lexeme() byte {
	if k >= numKinds {
		return 0
	}

	return kindLexemes[k]
}

// IsCounted reports whether instructions of this kind carry a count.
func (k Kind) IsCounted() bool {
	return k.Width() != 0
}

// Width is the bit width the count of this kind wraps at. Uncounted kinds
// have width 0.
func (k Kind) Width() uint {
	switch k {
	case PointerForward, PointerBackward:
		return 32
	case ValueIncrement, ValueDecrement:
		return 8
	default:
		return 0
	}
}

// Instruction is a single IR operation. Count is only meaningful for counted
// kinds and is zero otherwise.
type Instruction struct {
	Kind  Kind
	Count uint32
}

// Uncounted instructions.
var (
	Output = Instruction{Kind: OutputByte}
	Input  = Instruction{Kind: InputByte}
	Jz     = Instruction{Kind: JumpIfZero}
	Jnz    = Instruction{Kind: JumpIfNonZero}
)

// PtrForward returns a PointerForward instruction.
func PtrForward(n uint32) Instruction {
	return Instruction{Kind: PointerForward, Count: n}
}

// PtrBackward returns a PointerBackward instruction.
func PtrBackward(n uint32) Instruction {
	return Instruction{Kind: PointerBackward, Count: n}
}

// ValueAdd returns a ValueIncrement instruction.
func ValueAdd(n uint8) Instruction {
	return Instruction{Kind: ValueIncrement, Count: uint32(n)}
}

// ValueSub returns a ValueDecrement instruction.
func ValueSub(n uint8) Instruction {
	return Instruction{Kind: ValueDecrement, Count: uint32(n)}
}

func (i Instruction) String() string {
	if i.Kind.IsCounted() {
		return fmt.Sprintf("%s(%d)", i.Kind, i.Count)
	}

	return i.Kind.String()
}
