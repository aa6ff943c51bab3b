// Package debugger provides read-only diagnostics over a compiled program:
// a loop-frequency histogram and an IR dump. Spec §1 carves out interactive
// debugger/step-through facilities as a non-goal; these are reporting
// hooks, not an attach/breakpoint/step facility, grounded in
// original_source/src/bf.rs's own loop-iteration counter and
// bfllvm.rs's dump_llvm_ir.
package debugger

import (
	"fmt"
	"sort"

	"brainfork/internal/ir"
)

// LoopProfiler counts how many times each LoopEnd instruction is reached,
// keyed by its IR index. The interpreter calls Hit on every LoopEnd
// dispatch (internal/interp.Interpreter.LoopHook) only when the CLI's
// -stats flag wires one up; there is no cost when nil.
type LoopProfiler struct {
	hits map[int]int
}

// NewLoopProfiler returns an empty profiler.
func NewLoopProfiler() *LoopProfiler {
	return &LoopProfiler{hits: make(map[int]int)}
}

// Hit records one pass through the LoopEnd at pc. Safe to pass directly as
// an Interpreter.LoopHook.
func (p *LoopProfiler) Hit(pc int) {
	p.hits[pc]++
}

// Entry is one row of the loop-frequency histogram, sorted by descending
// hit count.
type Entry struct {
	PC   int
	Hits int
}

// Report returns the recorded loop-end hit counts sorted from hottest to
// coldest loop, breaking ties by ascending PC for deterministic output.
func (p *LoopProfiler) Report() []Entry {
	entries := make([]Entry, 0, len(p.hits))
	for pc, n := range p.hits {
		entries = append(entries, Entry{PC: pc, Hits: n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Hits != entries[j].Hits {
			return entries[i].Hits > entries[j].Hits
		}
		return entries[i].PC < entries[j].PC
	})
	return entries
}

// String renders the histogram as a fixed-width table, written to the
// CLI's stats output when -stats is set.
func (p *LoopProfiler) String() string {
	out := ""
	for _, e := range p.Report() {
		out += fmt.Sprintf("loop@%-6d %d iterations\n", e.PC, e.Hits)
	}
	return out
}

// DumpIR renders prog's compiled instruction listing, the interpreter-path
// counterpart of the JIT module's own String() (spec §6 "Optional:
// dump_ir() for debug").
func DumpIR(prog *ir.Program) string {
	return prog.Disassemble()
}
