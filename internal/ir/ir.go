// Package ir defines the extended instruction set the compiler emits and
// the Program the interpreter and JIT lowerer both consume (spec §3).
package ir

import "fmt"

// Op is an extended IR opcode (spec §3's instruction table).
type Op byte

const (
	MoveRight Op = iota
	MoveLeft
	AddImm
	SubImm
	Output
	Input
	LoopStart
	LoopEnd
	ClearCell
	AddToRight
	AddToLeft
	SubFromRight
	SubFromLeft
	FindZeroLeft
	FindZeroRight
)

func (o Op) String() string {
	switch o {
	case MoveRight:
		return "MoveRight"
	case MoveLeft:
		return "MoveLeft"
	case AddImm:
		return "AddImm"
	case SubImm:
		return "SubImm"
	case Output:
		return "Output"
	case Input:
		return "Input"
	case LoopStart:
		return "LoopStart"
	case LoopEnd:
		return "LoopEnd"
	case ClearCell:
		return "ClearCell"
	case AddToRight:
		return "AddToRight"
	case AddToLeft:
		return "AddToLeft"
	case SubFromRight:
		return "SubFromRight"
	case SubFromLeft:
		return "SubFromLeft"
	case FindZeroLeft:
		return "FindZeroLeft"
	case FindZeroRight:
		return "FindZeroRight"
	default:
		return "Unknown"
	}
}

// Instr is one extended IR instruction. Every opcode in spec §3 carries at
// most one operand (a count, a jump target, or a neighbor distance/step),
// so a single Arg field is enough; ClearCell leaves it unused.
type Instr struct {
	Op  Op
	Arg int
}

// Stats mirrors the Program's compilation statistics (spec §3).
type Stats struct {
	LoopCount          int
	OptimizedLoopCount int
}

// Program is the compiled, immutable-after-compile instruction stream plus
// the raw/compiled instruction counts and optimization stats (spec §3
// "Program" and "Lifecycle").
type Program struct {
	Instrs   []Instr
	RawCount int
	Stats    Stats
}

// New returns an empty Program ready for the compiler to populate.
func New() *Program {
	return &Program{Instrs: make([]Instr, 0, 64)}
}

// RawInstructionCount is the number of raw BF commands consumed (pre-fusion,
// pre-optimization), used by the driver to report reduction percentages.
func (p *Program) RawInstructionCount() int { return p.RawCount }

// CompiledInstructionCount is the length of the final instruction stream.
func (p *Program) CompiledInstructionCount() int { return len(p.Instrs) }

// Disassemble renders a human-readable listing of the compiled IR, the
// "dump_ir()" debug accessor mentioned in spec §6.
func (p *Program) Disassemble() string {
	out := make([]byte, 0, len(p.Instrs)*12)
	buf := []byte{}
	for i, instr := range p.Instrs {
		buf = appendInstr(buf[:0], i, instr)
		out = append(out, buf...)
	}
	return string(out)
}

func appendInstr(buf []byte, idx int, instr Instr) []byte {
	return append(buf, []byte(fmt.Sprintf("%4d  %-14s %d\n", idx, instr.Op, instr.Arg))...)
}
