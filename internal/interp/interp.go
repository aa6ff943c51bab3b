// Package interp implements the direct interpreter over the extended IR
// (spec component D): a jump-threaded dispatch loop with locally cached
// pc/dp, in the same hot-loop shape as the teacher's register VM
// (internal/vmregister/vm.go's run()), generalized from NaN-boxed register
// opcodes down to BF's fifteen tape opcodes.
package interp

import (
	"io"
	"os"

	"brainfork/internal/bferrors"
	"brainfork/internal/ir"
	"brainfork/internal/stdio"
	"brainfork/internal/tape"
)

// Interpreter holds the tape and instruction-pointer/data-pointer state for
// one Program (spec §4.D "State: (pc, dp, tape, stats)").
type Interpreter struct {
	Prog *ir.Program
	Tape *tape.Tape

	pc int
	dp int

	// Diagnostics receives non-fatal I/O error reports (spec §7 items 4-5).
	// Defaults to os.Stderr if nil.
	Diagnostics io.Writer

	// LoopHook, if set, is invoked with the current pc every time a LoopEnd
	// is dispatched, before the branch decision — the hook point the
	// loop-frequency histogram (internal/debugger) attaches to.
	LoopHook func(pc int)
}

// New returns an Interpreter over prog and tp, starting at pc=0, dp=0.
func New(prog *ir.Program, tp *tape.Tape) *Interpreter {
	return &Interpreter{Prog: prog, Tape: tp}
}

// Reset swaps in a new Program and rewinds the instruction pointer to 0,
// while leaving the data pointer where it was — the REPL's "run the next
// line against whatever cursor position the last one left behind"
// semantics (spec §6 "Lifecycle... may be invoked repeatedly").
func (in *Interpreter) Reset(prog *ir.Program) {
	in.Prog = prog
	in.pc = 0
}

// Run executes the program to completion (or to a fatal error), reading
// ',' input from stdin and writing '.' output to stdout. It acquires the
// process-wide stdio lock for its duration (spec §5) and may be called
// multiple times on the same Interpreter (spec §6).
func (in *Interpreter) Run(stdin io.Reader, stdout io.Writer) error {
	release := stdio.Acquire()
	defer release()

	diag := in.Diagnostics
	if diag == nil {
		diag = os.Stderr
	}

	instrs := in.Prog.Instrs
	tp := in.Tape
	pc := in.pc
	dp := in.dp
	n := len(instrs)

	oob := func() error {
		return bferrors.AtCursor(bferrors.OutOfBounds, pc, dp, "data pointer out of bounds")
	}

	for pc < n {
		instr := instrs[pc]

		switch instr.Op {
		case ir.MoveRight:
			dp += instr.Arg
		case ir.MoveLeft:
			dp -= instr.Arg

		case ir.AddImm:
			if !tp.InBounds(dp) {
				return oob()
			}
			tp.AddImm(dp, uint64(instr.Arg))

		case ir.SubImm:
			if !tp.InBounds(dp) {
				return oob()
			}
			tp.SubImm(dp, uint64(instr.Arg))

		case ir.Output:
			if !tp.InBounds(dp) {
				return oob()
			}
			v := tp.Get(dp)
			buf := [1]byte{v}
			for i := 0; i < instr.Arg; i++ {
				if _, err := stdout.Write(buf[:]); err != nil {
					reportIO(diag, bferrors.IOWriteError, err)
					break
				}
			}

		case ir.Input:
			if !tp.InBounds(dp) {
				return oob()
			}
			var buf [1]byte
			for i := 0; i < instr.Arg; i++ {
				_, err := io.ReadFull(stdin, buf[:])
				if err != nil {
					reportIO(diag, bferrors.IOReadError, err)
					break
				}
				tp.Set(dp, buf[0])
			}

		case ir.LoopStart:
			if !tp.InBounds(dp) {
				return oob()
			}
			if tp.Get(dp) == 0 {
				pc = instr.Arg
			}

		case ir.LoopEnd:
			if in.LoopHook != nil {
				in.LoopHook(pc)
			}
			if !tp.InBounds(dp) {
				return oob()
			}
			if tp.Get(dp) != 0 {
				pc = instr.Arg
			}

		case ir.ClearCell:
			if !tp.InBounds(dp) {
				return oob()
			}
			tp.Set(dp, 0)

		case ir.AddToRight:
			if !tp.InBounds(dp) {
				return oob()
			}
			if tp.Get(dp) != 0 {
				dst := dp + instr.Arg
				if !tp.InBounds(dst) {
					return oob()
				}
				tp.AddCell(dst, dp)
				tp.Set(dp, 0)
			}

		case ir.AddToLeft:
			if !tp.InBounds(dp) {
				return oob()
			}
			if tp.Get(dp) != 0 {
				dst := dp - instr.Arg
				if !tp.InBounds(dst) {
					return oob()
				}
				tp.AddCell(dst, dp)
				tp.Set(dp, 0)
			}

		case ir.SubFromRight:
			if !tp.InBounds(dp) {
				return oob()
			}
			if tp.Get(dp) != 0 {
				dst := dp + instr.Arg
				if !tp.InBounds(dst) {
					return oob()
				}
				tp.SubCell(dst, dp)
				tp.Set(dp, 0)
			}

		case ir.SubFromLeft:
			if !tp.InBounds(dp) {
				return oob()
			}
			if tp.Get(dp) != 0 {
				dst := dp - instr.Arg
				if !tp.InBounds(dst) {
					return oob()
				}
				tp.SubCell(dst, dp)
				tp.Set(dp, 0)
			}

		case ir.FindZeroLeft:
			for {
				if !tp.InBounds(dp) {
					return oob()
				}
				if tp.Get(dp) == 0 {
					break
				}
				dp -= instr.Arg
			}

		case ir.FindZeroRight:
			for {
				if !tp.InBounds(dp) {
					return oob()
				}
				if tp.Get(dp) == 0 {
					break
				}
				dp += instr.Arg
			}
		}

		pc++
	}

	// Rewind pc so a later Run executes the program again; dp persists.
	in.pc, in.dp = 0, dp
	return nil
}

// DataPointer returns the current data pointer, e.g. for tests asserting
// the end-to-end scenarios of spec §8.
func (in *Interpreter) DataPointer() int { return in.dp }

func reportIO(w io.Writer, kind bferrors.Kind, cause error) {
	e := bferrors.Wrap(kind, cause, "I/O error")
	io.WriteString(w, e.Error()+"\n")
}
