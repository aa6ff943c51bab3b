// Package compiler implements the extended-IR compiler and its peephole
// optimizer (spec component C). It keeps the teacher's compiler shape — a
// small stateful type that walks a token stream and appends to a growing
// instruction vector, back-patching jump targets — generalized from an
// expression-tree visitor to BF's flat fused-token stream.
package compiler

import (
	"io"

	"brainfork/internal/bferrors"
	"brainfork/internal/ir"
	"brainfork/internal/lexer"
)

// Compiler turns a stream of fused BF tokens into an extended-IR Program,
// maintaining the loop-bracket stack described in spec §4.C.
type Compiler struct {
	prog      *ir.Program
	loopStack []int
	optimize  bool
	compiled  bool
}

// New returns a Compiler. When optimize is false the peephole pass is
// skipped entirely (spec §4.C "Optimization is off when a nooptim build
// configuration is selected"), which is also how the JIT lowerer obtains
// the unoptimized, parsed instruction stream it needs per spec §4.E.
func New(optimize bool) *Compiler {
	return &Compiler{
		prog:     ir.New(),
		optimize: optimize,
	}
}

// Compile reads BF source from src, fuses and compiles it, and returns the
// resulting Program. It may be called only once per Compiler.
func (c *Compiler) Compile(src io.Reader) (*ir.Program, error) {
	if c.compiled {
		return nil, bferrors.New(bferrors.AlreadyCompiled, "Compile called more than once on the same Compiler")
	}
	c.compiled = true

	f := lexer.NewFuser()
	err := f.Run(src, func(tok lexer.Token) error {
		return c.emit(tok)
	})
	if err != nil {
		return nil, err
	}
	if len(c.loopStack) > 0 {
		return nil, bferrors.At(bferrors.UnmatchedOpen, c.loopStack[len(c.loopStack)-1],
			"unmatched '[' at end of source")
	}
	return c.prog, nil
}

// emit applies the per-token emit rules of spec §4.C.
func (c *Compiler) emit(tok lexer.Token) error {
	p := c.prog
	switch tok.Cmd {
	case '>':
		p.Instrs = append(p.Instrs, ir.Instr{Op: ir.MoveRight, Arg: tok.Count})
		p.RawCount += tok.Count
	case '<':
		p.Instrs = append(p.Instrs, ir.Instr{Op: ir.MoveLeft, Arg: tok.Count})
		p.RawCount += tok.Count
	case '+':
		p.Instrs = append(p.Instrs, ir.Instr{Op: ir.AddImm, Arg: tok.Count})
		p.RawCount += tok.Count
	case '-':
		p.Instrs = append(p.Instrs, ir.Instr{Op: ir.SubImm, Arg: tok.Count})
		p.RawCount += tok.Count
	case '.':
		p.Instrs = append(p.Instrs, ir.Instr{Op: ir.Output, Arg: tok.Count})
		p.RawCount += tok.Count
	case ',':
		p.Instrs = append(p.Instrs, ir.Instr{Op: ir.Input, Arg: tok.Count})
		p.RawCount += tok.Count
	case '[':
		for i := 0; i < tok.Count; i++ {
			c.loopStack = append(c.loopStack, len(p.Instrs))
			p.Instrs = append(p.Instrs, ir.Instr{Op: ir.LoopStart, Arg: 0}) // back-patched below
			p.RawCount++
		}
	case ']':
		for i := 0; i < tok.Count; i++ {
			if len(c.loopStack) == 0 {
				return bferrors.At(bferrors.UnmatchedClose, len(p.Instrs), "unmatched ']'")
			}
			start := c.loopStack[len(c.loopStack)-1]
			c.loopStack = c.loopStack[:len(c.loopStack)-1]
			p.Instrs[start].Arg = len(p.Instrs)
			p.Instrs = append(p.Instrs, ir.Instr{Op: ir.LoopEnd, Arg: start})
			p.RawCount++
			p.Stats.LoopCount++
			if c.optimize && c.peephole(start) {
				p.Stats.OptimizedLoopCount++
			}
		}
	}
	return nil
}

// peephole tries the canonical rewriters in order against the loop body
// that just closed (strictly between the two bracket instructions at
// indices start and len(instrs)-1), replacing the whole loop with a single
// specialized instruction on the first match (spec §4.C).
func (c *Compiler) peephole(start int) bool {
	p := c.prog
	body := p.Instrs[start+1 : len(p.Instrs)-1]

	for _, rw := range rewriters {
		if instr, ok := rw(body); ok {
			p.Instrs = append(p.Instrs[:start], instr)
			return true
		}
	}
	return false
}

// rewriter is a pure function from a loop body window to a single
// replacement instruction, per spec §9's pluggability note.
type rewriter func(body []ir.Instr) (ir.Instr, bool)

// rewriters is evaluated in this order as the canonical tie-break: find-zero
// before clear-cell, since a length-1 body cannot match both, but the
// contract fixes the order regardless (spec §4.C).
var rewriters = []rewriter{rewriteFindZero, rewriteClearCell, rewriteMoveData}

func rewriteFindZero(body []ir.Instr) (ir.Instr, bool) {
	if len(body) != 1 {
		return ir.Instr{}, false
	}
	switch body[0].Op {
	case ir.MoveLeft:
		return ir.Instr{Op: ir.FindZeroLeft, Arg: body[0].Arg}, true
	case ir.MoveRight:
		return ir.Instr{Op: ir.FindZeroRight, Arg: body[0].Arg}, true
	default:
		return ir.Instr{}, false
	}
}

func rewriteClearCell(body []ir.Instr) (ir.Instr, bool) {
	if len(body) != 1 {
		return ir.Instr{}, false
	}
	instr := body[0]
	if instr.Op == ir.ClearCell {
		return ir.Instr{Op: ir.ClearCell}, true // catches [[-]]
	}
	if instr.Op == ir.SubImm && instr.Arg == 1 {
		return ir.Instr{Op: ir.ClearCell}, true
	}
	return ir.Instr{}, false
}

func rewriteMoveData(body []ir.Instr) (ir.Instr, bool) {
	if len(body) != 4 {
		return ir.Instr{}, false
	}
	if body[0].Op != ir.SubImm || body[0].Arg != 1 {
		return ir.Instr{}, false
	}
	a, b, c := body[1], body[2], body[3]

	sameDist := func(x, y ir.Instr) bool { return x.Arg == y.Arg }

	switch {
	case a.Op == ir.MoveRight && b.Op == ir.AddImm && b.Arg == 1 && c.Op == ir.MoveLeft && sameDist(a, c):
		return ir.Instr{Op: ir.AddToRight, Arg: a.Arg}, true
	case a.Op == ir.MoveLeft && b.Op == ir.AddImm && b.Arg == 1 && c.Op == ir.MoveRight && sameDist(a, c):
		return ir.Instr{Op: ir.AddToLeft, Arg: a.Arg}, true
	case a.Op == ir.MoveRight && b.Op == ir.SubImm && b.Arg == 1 && c.Op == ir.MoveLeft && sameDist(a, c):
		return ir.Instr{Op: ir.SubFromRight, Arg: a.Arg}, true
	case a.Op == ir.MoveLeft && b.Op == ir.SubImm && b.Arg == 1 && c.Op == ir.MoveRight && sameDist(a, c):
		return ir.Instr{Op: ir.SubFromLeft, Arg: a.Arg}, true
	default:
		return ir.Instr{}, false
	}
}
