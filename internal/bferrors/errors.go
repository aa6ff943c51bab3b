// Package bferrors defines the diagnostic error type shared by the
// compiler, interpreter and JIT lowerer.
package bferrors

import "fmt"

// Kind classifies a brainfork error.
type Kind string

const (
	SourceReadError Kind = "SourceReadError"
	UnmatchedOpen   Kind = "UnmatchedOpen"
	UnmatchedClose  Kind = "UnmatchedClose"
	IOWriteError    Kind = "IOWriteError"
	IOReadError     Kind = "IOReadError"
	OutOfBounds     Kind = "OutOfBounds"
	AlreadyCompiled Kind = "AlreadyCompiled"
	NotCompiled     Kind = "NotCompiled"
	Internal        Kind = "Internal"
)

// Error is a diagnostic carrying enough context to name the failing
// instruction and tape position, per spec §7.
type Error struct {
	Kind    Kind
	Message string
	PC      int // -1 when not applicable
	DP      int // -1 when not applicable
	Cause   error
}

func (e *Error) Error() string {
	switch {
	case e.PC >= 0 && e.DP >= 0:
		return fmt.Sprintf("%s: %s (pc=%d dp=%d)", e.Kind, e.Message, e.PC, e.DP)
	case e.PC >= 0:
		return fmt.Sprintf("%s: %s (pc=%d)", e.Kind, e.Message, e.PC)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds a fatal diagnostic with no PC/DP context.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), PC: -1, DP: -1}
}

// At builds a fatal diagnostic naming an IR index.
func At(kind Kind, pc int, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), PC: pc, DP: -1}
}

// AtCursor builds a fatal diagnostic naming both the PC and DP (spec §7 item 6).
func AtCursor(kind Kind, pc, dp int, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), PC: pc, DP: dp}
}

// Wrap builds a fatal diagnostic around an underlying cause (spec §7 item 1).
func Wrap(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), PC: -1, DP: -1, Cause: cause}
}
