package lexer

import (
	"errors"
	"io"
	"strings"
	"testing"
)

var errBoom = errors.New("boom")

func scanAll(t *testing.T, src string) []Token {
	t.Helper()
	var toks []Token
	f := NewFuser()
	if err := f.Run(strings.NewReader(src), func(tok Token) error {
		toks = append(toks, tok)
		return nil
	}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	return toks
}

func TestFusesRuns(t *testing.T) {
	toks := scanAll(t, "+++>><")
	want := []Token{{'+', 3}, {'>', 2}, {'<', 1}}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i] != w {
			t.Fatalf("token %d: got %+v, want %+v", i, toks[i], w)
		}
	}
}

func TestIgnoresNonCommandBytes(t *testing.T) {
	toks := scanAll(t, "+ hello world\n++")
	if len(toks) != 1 || toks[0] != (Token{'+', 3}) {
		t.Fatalf("got %+v, want a single fused run of 3 '+'s", toks)
	}
}

func TestFlushesPendingRunAtEOF(t *testing.T) {
	toks := scanAll(t, "...")
	if len(toks) != 1 || toks[0] != (Token{'.', 3}) {
		t.Fatalf("got %+v", toks)
	}
}

func TestEmptyInputEmitsNoTokens(t *testing.T) {
	toks := scanAll(t, "")
	if len(toks) != 0 {
		t.Fatalf("got %+v, want no tokens", toks)
	}
}

// chunkReader serves src one chunkSize-byte (or smaller) slice per Read
// call, forcing Fuser.Run's internal read loop to iterate many times even
// for a short source, so a run can land astride two separate Read calls.
type chunkReader struct {
	src       string
	chunkSize int
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.src) == 0 {
		return 0, io.EOF
	}
	n := r.chunkSize
	if n > len(p) {
		n = len(p)
	}
	if n > len(r.src) {
		n = len(r.src)
	}
	copy(p, r.src[:n])
	r.src = r.src[n:]
	return n, nil
}

func TestFusesRunSplitAcrossChunkBoundary(t *testing.T) {
	// "+++++" read one byte at a time must still fuse into a single run,
	// and the '>' that immediately follows (in its own chunk) must start a
	// fresh run rather than being folded into the '+' run (spec §4.B).
	src := "+++++>>>"
	f := NewFuser()
	var toks []Token
	if err := f.Run(&chunkReader{src: src, chunkSize: 1}, func(tok Token) error {
		toks = append(toks, tok)
		return nil
	}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	want := []Token{{'+', 5}, {'>', 3}}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i] != w {
			t.Fatalf("token %d: got %+v, want %+v", i, toks[i], w)
		}
	}

	// Reading the same source whole must produce the identical fusion,
	// proving chunking does not change behavior.
	wholeToks := scanAll(t, src)
	if len(wholeToks) != len(toks) {
		t.Fatalf("chunked/whole token counts differ: %v vs %v", toks, wholeToks)
	}
	for i := range toks {
		if toks[i] != wholeToks[i] {
			t.Fatalf("chunked/whole token %d differ: %+v vs %+v", i, toks[i], wholeToks[i])
		}
	}
}

func TestEmitErrorAborts(t *testing.T) {
	f := NewFuser()
	calls := 0
	err := f.Run(strings.NewReader("+>+"), func(tok Token) error {
		calls++
		if calls == 1 {
			return errBoom
		}
		return nil
	})
	if err != errBoom {
		t.Fatalf("got %v, want errBoom", err)
	}
	if calls != 1 {
		t.Fatalf("expected emit to stop after first error, got %d calls", calls)
	}
}
