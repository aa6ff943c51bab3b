package interp

import (
	"strings"
	"testing"

	"brainfork/internal/compiler"
	"brainfork/internal/tape"
)

func runSource(t *testing.T, src, in string) (string, *Interpreter) {
	t.Helper()
	prog, err := compiler.New(true).Compile(strings.NewReader(src))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	tp := tape.New(tape.DefaultSize)
	it := New(prog, tp)
	var out strings.Builder
	if err := it.Run(strings.NewReader(in), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	return out.String(), it
}

func TestHelloWorld(t *testing.T) {
	src := "++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++."
	out, _ := runSource(t, src, "")
	if out != "Hello World!\n" {
		t.Fatalf("got %q", out)
	}
}

func TestClearCellOptimizationMatchesUnoptimized(t *testing.T) {
	src := "++++++++[-]+++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++."
	optOut, _ := runSource(t, src, "")

	prog, err := compiler.New(false).Compile(strings.NewReader(src))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	tp := tape.New(tape.DefaultSize)
	var raw strings.Builder
	if err := New(prog, tp).Run(strings.NewReader(""), &raw); err != nil {
		t.Fatalf("run: %v", err)
	}

	if optOut != raw.String() || optOut != "A" {
		t.Fatalf("optimized=%q unoptimized=%q, want both 'A'", optOut, raw.String())
	}
}

func TestMoveDataOptimization(t *testing.T) {
	out, _ := runSource(t, "+++++[->+<]>.", "")
	if out != string(rune(5)) {
		t.Fatalf("got %q, want byte 5", out)
	}
}

func TestFindZero(t *testing.T) {
	out, _ := runSource(t, "+>++>+++><<<[>]+.", "")
	if out != string(rune(1)) {
		t.Fatalf("got %q, want byte 1", out)
	}
}

func TestEcho(t *testing.T) {
	out, _ := runSource(t, ",.", "Q")
	if out != "Q" {
		t.Fatalf("got %q", out)
	}
}

func TestWrapAround(t *testing.T) {
	out, _ := runSource(t, "-.", "")
	if out != "\xff" {
		t.Fatalf("got %q, want byte 255", out)
	}
}

func TestDataPointerOutOfBoundsErrors(t *testing.T) {
	prog, err := compiler.New(true).Compile(strings.NewReader("<."))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	tp := tape.New(4)
	var out strings.Builder
	if err := New(prog, tp).Run(strings.NewReader(""), &out); err == nil {
		t.Fatal("expected an out-of-bounds error reading the cell left of 0")
	}
}

func TestResetKeepsDataPointerAcrossPrograms(t *testing.T) {
	tp := tape.New(tape.DefaultSize)
	first, err := compiler.New(true).Compile(strings.NewReader("+++>"))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	it := New(first, tp)
	if err := it.Run(strings.NewReader(""), &strings.Builder{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if it.DataPointer() != 1 {
		t.Fatalf("got dp %d, want 1", it.DataPointer())
	}

	second, err := compiler.New(true).Compile(strings.NewReader("."))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	it.Reset(second)
	var out strings.Builder
	if err := it.Run(strings.NewReader(""), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if it.DataPointer() != 1 {
		t.Fatalf("Reset should preserve the data pointer, got %d", it.DataPointer())
	}
	if out.String() != "\x00" {
		t.Fatalf("got %q, want a single NUL byte from the fresh cell", out.String())
	}
}
