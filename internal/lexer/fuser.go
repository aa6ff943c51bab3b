// Package lexer implements the BF source reader and run-length fuser
// (spec component B). It mirrors the teacher's scanner.go in shape — a
// small stateful scanner fed bytes and emitting tokens — generalized from
// a whole-language tokenizer to BF's eight-command fusion rule.
package lexer

import (
	"io"

	"brainfork/internal/bferrors"
)

// bufSize is the chunk size used to read the source; correctness must not
// (and does not) depend on this value, since run state survives across
// reads (spec §4.B).
const bufSize = 4096

// Token is a fused (command, run-length) pair (spec §3 "Fused token").
type Token struct {
	Cmd   byte
	Count int
}

func isCommand(b byte) bool {
	switch b {
	case '>', '<', '+', '-', '.', ',', '[', ']':
		return true
	default:
		return false
	}
}

// Fuser coalesces runs of identical BF commands read from a byte stream,
// emitting each run to emit as soon as it is known to have ended.
type Fuser struct {
	lastCmd byte
	runLen  int
}

// NewFuser returns a Fuser with no pending run.
func NewFuser() *Fuser {
	return &Fuser{}
}

// Run reads src to EOF, emitting fused tokens via emit. Bytes that are not
// one of the eight BF commands are discarded silently (spec §3, §4.B).
// emit returning an error aborts the scan and propagates the error.
func (f *Fuser) Run(src io.Reader, emit func(Token) error) error {
	buf := make([]byte, bufSize)
	for {
		n, err := src.Read(buf)
		for i := 0; i < n; i++ {
			c := buf[i]
			if !isCommand(c) {
				continue
			}
			if f.runLen == 0 {
				f.lastCmd, f.runLen = c, 1
				continue
			}
			if c == f.lastCmd {
				f.runLen++
				continue
			}
			if e := emit(Token{f.lastCmd, f.runLen}); e != nil {
				return e
			}
			f.lastCmd, f.runLen = c, 1
		}
		if err == io.EOF {
			return f.flush(emit)
		}
		if err != nil {
			return bferrors.Wrap(bferrors.SourceReadError, err, "reading BF source")
		}
	}
}

// flush emits any pending run at EOF (spec §4.B "At EOF, emit any pending run").
func (f *Fuser) flush(emit func(Token) error) error {
	if f.runLen == 0 {
		return nil
	}
	tok := Token{f.lastCmd, f.runLen}
	f.lastCmd, f.runLen = 0, 0
	return emit(tok)
}
