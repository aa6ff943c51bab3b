package tape

import "testing"

func TestNewDefaultSize(t *testing.T) {
	tp := New(0)
	if tp.Len() != DefaultSize {
		t.Fatalf("got len %d, want %d", tp.Len(), DefaultSize)
	}
}

func TestInBounds(t *testing.T) {
	tp := New(10)
	if !tp.InBounds(0) || !tp.InBounds(9) {
		t.Fatal("expected 0 and 9 to be in bounds")
	}
	if tp.InBounds(-1) || tp.InBounds(10) {
		t.Fatal("expected -1 and 10 to be out of bounds")
	}
}

func TestAddSubWrap(t *testing.T) {
	tp := New(1)
	tp.Set(0, 255)
	tp.AddImm(0, 1)
	if tp.Get(0) != 0 {
		t.Fatalf("expected wraparound to 0, got %d", tp.Get(0))
	}
	tp.SubImm(0, 1)
	if tp.Get(0) != 255 {
		t.Fatalf("expected underflow wrap to 255, got %d", tp.Get(0))
	}
}

func TestAddSubCell(t *testing.T) {
	tp := New(2)
	tp.Set(0, 10)
	tp.Set(1, 5)
	tp.AddCell(1, 0)
	if tp.Get(1) != 15 {
		t.Fatalf("got %d, want 15", tp.Get(1))
	}
	tp.SubCell(1, 0)
	if tp.Get(1) != 5 {
		t.Fatalf("got %d, want 5", tp.Get(1))
	}
}

func TestReset(t *testing.T) {
	tp := New(4)
	tp.Set(0, 1)
	tp.Set(3, 9)
	tp.Reset()
	for i := 0; i < tp.Len(); i++ {
		if tp.Get(i) != 0 {
			t.Fatalf("cell %d not reset, got %d", i, tp.Get(i))
		}
	}
}

func TestBytesSharesBackingArray(t *testing.T) {
	tp := New(4)
	b := tp.Bytes()
	b[2] = 42
	if tp.Get(2) != 42 {
		t.Fatal("Bytes() should expose the same backing array as Get/Set")
	}
}
