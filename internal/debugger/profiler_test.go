package debugger

import (
	"strings"
	"testing"

	"brainfork/internal/compiler"
	"brainfork/internal/interp"
	"brainfork/internal/tape"
)

func TestLoopProfilerCountsHottestFirst(t *testing.T) {
	// An unoptimized program so its LoopEnd instructions survive to be hit.
	prog, err := compiler.New(false).Compile(strings.NewReader("+++[>+<-]++[>+<-]"))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	tp := tape.New(tape.DefaultSize)
	it := interp.New(prog, tp)
	profiler := NewLoopProfiler()
	it.LoopHook = profiler.Hit

	if err := it.Run(strings.NewReader(""), &strings.Builder{}); err != nil {
		t.Fatalf("run: %v", err)
	}

	entries := profiler.Report()
	if len(entries) != 2 {
		t.Fatalf("got %d distinct loops, want 2: %+v", len(entries), entries)
	}
	if entries[0].Hits < entries[1].Hits {
		t.Fatalf("entries should be sorted hottest-first: %+v", entries)
	}
	if entries[0].Hits != 3 || entries[1].Hits != 2 {
		t.Fatalf("got hits %+v, want [3 2]", entries)
	}
}

func TestDumpIRListsEveryInstruction(t *testing.T) {
	prog, err := compiler.New(true).Compile(strings.NewReader("+>-"))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	dump := DumpIR(prog)
	for _, want := range []string{"AddImm", "MoveRight", "SubImm"} {
		if !strings.Contains(dump, want) {
			t.Errorf("dump missing %q:\n%s", want, dump)
		}
	}
}
