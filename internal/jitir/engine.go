package jitir

import (
	"io"
	"os"

	"brainfork/internal/bferrors"
	"brainfork/internal/stdio"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/value"
)

// ptrVal is the runtime representation of an i8* SSA value: either an
// offset into the tape backing array, or one of the two opaque stdio
// handles. A real execution engine would hold an actual machine address;
// since ours never leaves the Go heap, a tagged offset does the same job.
type ptrVal struct {
	tape   []byte
	offset int
	kind   handleKind
}

type handleKind int

const (
	kindTape handleKind = iota
	kindStdin
	kindStdout
)

// Engine interprets a Module's single function directly over its
// constructed basic blocks, in lieu of a real machine-code JIT (see the
// package doc comment in lower.go for why).
type Engine struct {
	// Diagnostics receives non-fatal I/O error reports (spec §7 items 4-5).
	// Defaults to os.Stderr if nil.
	Diagnostics io.Writer
}

// Run executes mod.Fn against tape, starting at offset 0, reading ','
// input from stdin and writing '.' output to stdout. It acquires the
// shared stdio lock for its duration, same as internal/interp (spec §5).
func (e Engine) Run(mod *Module, tape []byte, stdin io.Reader, stdout io.Writer) error {
	release := stdio.Acquire()
	defer release()

	diag := e.Diagnostics
	if diag == nil {
		diag = os.Stderr
	}

	mem := map[ir.Instruction]interface{}{}
	vals := map[value.Value]interface{}{}

	vals[mod.Fn.Params[0]] = ptrVal{tape: tape, offset: 0, kind: kindTape}
	vals[mod.Fn.Params[1]] = ptrVal{kind: kindStdin}
	vals[mod.Fn.Params[2]] = ptrVal{kind: kindStdout}

	resolvePtr := func(v value.Value) ptrVal {
		if p, ok := vals[v].(ptrVal); ok {
			return p
		}
		return ptrVal{}
	}
	resolveByte := func(v value.Value) byte {
		if ci, ok := v.(*constant.Int); ok {
			return byte(ci.X.Int64())
		}
		return vals[v].(byte)
	}
	resolveOffset := func(v value.Value) int {
		if ci, ok := v.(*constant.Int); ok {
			return int(ci.X.Int64())
		}
		return int(vals[v].(int64))
	}
	resolveBool := func(v value.Value) bool {
		return vals[v].(bool)
	}

	block := mod.Fn.Blocks[0]
	for block != nil {
		for _, inst := range block.Insts {
			switch in := inst.(type) {
			case *ir.InstAlloca:
				mem[in] = nil

			case *ir.InstStore:
				// A store targets one of the three fixed alloca slots
				// (data_ptr/stdin/stdout) or, via the pointer they hold,
				// the tape cell those slots currently point at.
				if dstSlot, ok := in.Dst.(*ir.InstAlloca); ok {
					if p, isPtr := vals[in.Src].(ptrVal); isPtr {
						mem[dstSlot] = p
					} else {
						mem[dstSlot] = resolveByte(in.Src)
					}
				} else {
					p := resolvePtr(in.Dst)
					p.tape[p.offset] = resolveByte(in.Src)
				}

			case *ir.InstLoad:
				if slot, ok := in.Src.(*ir.InstAlloca); ok {
					vals[in] = mem[slot]
				} else {
					p := resolvePtr(in.Src)
					vals[in] = p.tape[p.offset]
				}

			case *ir.InstGetElementPtr:
				base := resolvePtr(in.Src)
				idx := resolveOffset(in.Indices[0])
				np := base
				np.offset += idx
				vals[in] = np

			case *ir.InstAdd:
				vals[in] = resolveByte(in.X) + resolveByte(in.Y)

			case *ir.InstSub:
				vals[in] = resolveByte(in.X) - resolveByte(in.Y)

			case *ir.InstICmp:
				x, y := resolveByte(in.X), resolveByte(in.Y)
				switch in.Pred {
				case enum.IPredEQ:
					vals[in] = x == y
				case enum.IPredNE:
					vals[in] = x != y
				default:
					return bferrors.New(bferrors.Internal, "jitir: unsupported icmp predicate")
				}

			case *ir.InstCall:
				switch in.Callee {
				case value.Value(mod.PrintFn):
					ch := resolveByte(in.Args[1])
					if _, err := stdout.Write([]byte{ch}); err != nil {
						return bferrors.Wrap(bferrors.IOWriteError, err, "JIT output write failed")
					}
				case value.Value(mod.InputFn):
					var buf [1]byte
					if _, err := io.ReadFull(stdin, buf[:]); err != nil {
						// __bf_get_input returns 0 on error or EOF (spec §6);
						// unlike the interpreter path, the cell becomes 0
						// rather than being left unchanged (spec §7 item 5).
						reportIO(diag, bferrors.IOReadError, err)
						buf[0] = 0
					}
					vals[in] = buf[0]
				default:
					return bferrors.New(bferrors.Internal, "jitir: call to unknown function")
				}
			}
		}

		switch term := block.Term.(type) {
		case *ir.TermBr:
			block = term.Target
		case *ir.TermCondBr:
			if resolveBool(term.Cond) {
				block = term.TargetTrue
			} else {
				block = term.TargetFalse
			}
		case *ir.TermRet:
			block = nil
		default:
			return bferrors.New(bferrors.Internal, "jitir: unsupported terminator")
		}
	}

	return nil
}

// reportIO writes a non-fatal I/O diagnostic, mirroring internal/interp's
// reportIO (spec §7 items 4-5).
func reportIO(w io.Writer, kind bferrors.Kind, cause error) {
	e := bferrors.Wrap(kind, cause, "I/O error")
	io.WriteString(w, e.Error()+"\n")
}
