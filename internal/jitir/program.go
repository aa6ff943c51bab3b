package jitir

import (
	"io"

	bfir "brainfork/internal/ir"
)

// Program is the JIT-path counterpart of internal/interp.Interpreter: it
// owns a lowered Module and a tape, and runs the module's basic blocks to
// completion (spec §4.E "Lifecycle: parse -> lower to LLVM IR -> interpret
// the constructed module").
type Program struct {
	Mod  *Module
	tape []byte
}

// Compile lowers prog (produced by a non-optimizing compiler) into a
// Module backed by the given tape storage.
func Compile(prog *bfir.Program, tape []byte) (*Program, error) {
	mod, err := Lower(prog)
	if err != nil {
		return nil, err
	}
	return &Program{Mod: mod, tape: tape}, nil
}

// Run interprets the lowered module once, starting the data pointer at
// tape offset 0 (spec §6, JIT runs always start fresh — no cross-call
// resumable pc/dp state, since the call boundary is the function itself).
func (p *Program) Run(stdin io.Reader, stdout io.Writer) error {
	var eng Engine
	return eng.Run(p.Mod, p.tape, stdin, stdout)
}

// DumpIR renders the lowered module's textual LLVM IR.
func (p *Program) DumpIR() string { return p.Mod.String() }
