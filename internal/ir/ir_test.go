package ir

import "testing"

func TestNewProgramIsEmpty(t *testing.T) {
	p := New()
	if p.RawInstructionCount() != 0 || p.CompiledInstructionCount() != 0 {
		t.Fatalf("got raw=%d compiled=%d, want both 0", p.RawInstructionCount(), p.CompiledInstructionCount())
	}
}

func TestDisassembleListsIndexOpcodeAndArg(t *testing.T) {
	p := New()
	p.Instrs = append(p.Instrs, Instr{Op: MoveRight, Arg: 3}, Instr{Op: ClearCell})
	dump := p.Disassemble()
	want := "   0  MoveRight      3\n   1  ClearCell      0\n"
	if dump != want {
		t.Fatalf("got:\n%q\nwant:\n%q", dump, want)
	}
}

func TestOpStringCoversAllOpcodes(t *testing.T) {
	ops := []Op{MoveRight, MoveLeft, AddImm, SubImm, Output, Input, LoopStart, LoopEnd,
		ClearCell, AddToRight, AddToLeft, SubFromRight, SubFromLeft, FindZeroLeft, FindZeroRight}
	seen := map[string]bool{}
	for _, op := range ops {
		s := op.String()
		if s == "Unknown" {
			t.Errorf("Op %d stringified as Unknown", op)
		}
		if seen[s] {
			t.Errorf("duplicate String() %q", s)
		}
		seen[s] = true
	}
}
