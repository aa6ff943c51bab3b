// Package commands implements the brainfork CLI's subcommands, grounded on
// sentra's cmd/sentra/commands package (one function per subcommand,
// taking the subcommand's argv tail and returning an error for main to
// report via log.Fatalf).
package commands

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"brainfork/internal/bftest"
	"brainfork/internal/compiler"
	"brainfork/internal/debugger"
	"brainfork/internal/interp"
	"brainfork/internal/jitir"
	"brainfork/internal/repl"
	"brainfork/internal/tape"
)

// runFlags are shared between "run" and "build".
type runFlags struct {
	debug    bool
	timing   bool
	llvm     bool
	nooptim  bool
	stats    bool
	tapeSize int
}

func parseRunFlags(name string, args []string, withStats bool) (*runFlags, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	f := &runFlags{}
	fs.BoolVar(&f.debug, "d", false, "print debug information")
	fs.BoolVar(&f.timing, "t", false, "print timing information")
	fs.BoolVar(&f.llvm, "l", false, "use the LLVM-IR JIT path")
	fs.BoolVar(&f.nooptim, "nooptim", false, "disable the peephole optimizer")
	fs.IntVar(&f.tapeSize, "tape-size", tape.DefaultSize, "tape length in cells")
	if withStats {
		fs.BoolVar(&f.stats, "stats", false, "print the loop-frequency histogram")
	}
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func asMillis(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

// RunCommand compiles and executes a BF source file, per
// original_source/src/main.rs's run_bf_program/run_bf_program_llvm.
func RunCommand(args []string) error {
	f, rest, err := parseRunFlags("run", args, true)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return fmt.Errorf("usage: brainfork run [flags] <file.bf>")
	}

	src, err := os.Open(rest[0])
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer src.Close()

	if f.llvm {
		return runLLVM(src, f)
	}
	return runInterpreter(src, f)
}

func runInterpreter(src *os.File, f *runFlags) error {
	c := compiler.New(!f.nooptim)

	start := time.Now()
	prog, err := c.Compile(src)
	compileDur := time.Since(start)
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}

	if f.debug {
		fmt.Printf("Program Size: %d instructions [%d after reduction]\n",
			prog.RawInstructionCount(), prog.CompiledInstructionCount())
		fmt.Printf("Loop Count: %d (%d optimized)\n", prog.Stats.LoopCount, prog.Stats.OptimizedLoopCount)
		fmt.Println("IR:")
		fmt.Print(debugger.DumpIR(prog))
	}

	tp := tape.New(f.tapeSize)
	in := interp.New(prog, tp)

	var profiler *debugger.LoopProfiler
	if f.stats {
		profiler = debugger.NewLoopProfiler()
		in.LoopHook = profiler.Hit
	}

	if f.timing {
		fmt.Printf("Compiled In: %.2fms\n", asMillis(compileDur))
		fmt.Println("Running...")
	}
	start = time.Now()
	runErr := in.Run(os.Stdin, os.Stdout)
	runDur := time.Since(start)
	if f.timing {
		fmt.Printf("\nFinished Running In: %.2fms\n", asMillis(runDur))
	}
	if runErr != nil {
		return fmt.Errorf("run: %w", runErr)
	}

	if profiler != nil {
		fmt.Println("Loop frequency histogram:")
		fmt.Print(profiler.String())
	}
	return nil
}

func runLLVM(src *os.File, f *runFlags) error {
	// The JIT path always lowers the unoptimized parse (spec §4.E).
	c := compiler.New(false)

	start := time.Now()
	prog, err := c.Compile(src)
	compileDur := time.Since(start)
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}

	tp := tape.New(f.tapeSize)
	jitProg, err := jitir.Compile(prog, tp.Bytes())
	if err != nil {
		return fmt.Errorf("lower: %w", err)
	}

	if f.debug {
		fmt.Println("LLVM IR:")
		fmt.Println("==============")
		fmt.Println(jitProg.DumpIR())
		fmt.Println("==============")
	}

	if f.timing {
		fmt.Printf("Compiled In: %.2fms\n", asMillis(compileDur))
		fmt.Println("Running...")
	}
	start = time.Now()
	runErr := jitProg.Run(os.Stdin, os.Stdout)
	runDur := time.Since(start)
	if f.timing {
		fmt.Printf("\nFinished Running In: %.2fms\n", asMillis(runDur))
	}
	if runErr != nil {
		return fmt.Errorf("run: %w", runErr)
	}
	return nil
}

// BuildCommand compiles a BF source file and reports its size/stats
// without running it — a dry-run check, not AOT object emission (spec's
// Non-goals explicitly exclude the latter).
func BuildCommand(args []string) error {
	f, rest, err := parseRunFlags("build", args, false)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return fmt.Errorf("usage: brainfork build [flags] <file.bf>")
	}

	src, err := os.Open(rest[0])
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer src.Close()

	c := compiler.New(!f.nooptim)
	prog, err := c.Compile(src)
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}

	fmt.Printf("Program Size: %d instructions [%d after reduction]\n",
		prog.RawInstructionCount(), prog.CompiledInstructionCount())
	fmt.Printf("Loop Count: %d (%d optimized)\n", prog.Stats.LoopCount, prog.Stats.OptimizedLoopCount)
	if f.debug {
		fmt.Print(debugger.DumpIR(prog))
	}
	return nil
}

// ReplCommand starts the interactive BF shell.
func ReplCommand(args []string) error {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	tapeSize := fs.Int("tape-size", tape.DefaultSize, "tape length in cells")
	if err := fs.Parse(args); err != nil {
		return err
	}
	repl.Start(os.Stdin, os.Stdout, *tapeSize)
	return nil
}

// TestCommand runs the golden fixture corpus, checking the interpreter's
// output against each fixture's expected output and asserting interpreter/JIT
// agreement (spec §8 P5), mirroring sentra's own built-in "test" command
// shape without needing to shell out to `go test`.
func TestCommand(args []string) error {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	dir := fs.String("dir", "internal/bftest/testdata", "fixture directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fixtures, err := bftest.Load(*dir)
	if err != nil {
		return fmt.Errorf("loading fixtures: %w", err)
	}

	failed := 0
	for _, fx := range fixtures {
		if err := runFixture(fx); err != nil {
			fmt.Printf("FAIL %s: %v\n", fx.Name, err)
			failed++
		} else {
			fmt.Printf("PASS %s\n", fx.Name)
		}
	}

	fmt.Printf("%d/%d passed\n", len(fixtures)-failed, len(fixtures))
	if failed > 0 {
		return fmt.Errorf("%d fixture(s) failed", failed)
	}
	return nil
}

func runFixture(fx bftest.Fixture) error {
	prog, err := compiler.New(true).Compile(strings.NewReader(fx.Source))
	if err != nil {
		return err
	}
	tp := tape.New(tape.DefaultSize)
	var out strings.Builder
	if err := interp.New(prog, tp).Run(strings.NewReader(fx.Input), &out); err != nil {
		return err
	}
	if out.String() != fx.Output {
		return fmt.Errorf("output mismatch: got %q want %q", out.String(), fx.Output)
	}

	unopt, err := compiler.New(false).Compile(strings.NewReader(fx.Source))
	if err != nil {
		return err
	}
	jitProg, err := jitir.Compile(unopt, tape.New(tape.DefaultSize).Bytes())
	if err != nil {
		return err
	}
	var jitOut strings.Builder
	if err := jitProg.Run(strings.NewReader(fx.Input), &jitOut); err != nil {
		return err
	}
	if jitOut.String() != out.String() {
		return fmt.Errorf("JIT/interpreter mismatch: got %q want %q", jitOut.String(), out.String())
	}
	return nil
}
