// Command brainfork is the CLI driver: it wires the core packages
// together but stays out of the spec's scope itself (spec §1 "top-level
// timing/debug printing ... is a driver concern, not core"). Command
// dispatch follows the teacher's cmd/sentra/main.go shape — a bare
// os.Args[1] subcommand switch delegating to commands.XCommand(args)
// functions that return an error for log.Fatalf to report — narrowed from
// sentra's dozen build-tool subcommands down to the four this domain
// needs.
package main

import (
	"fmt"
	"log"
	"os"

	"brainfork/cmd/brainfork/commands"
)

const version = "1.0.0"

func main() {
	log.SetFlags(0)
	args := os.Args[1:]
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	cmd := args[0]
	rest := args[1:]

	var err error
	switch cmd {
	case "run":
		err = commands.RunCommand(rest)
	case "build":
		err = commands.BuildCommand(rest)
	case "repl":
		err = commands.ReplCommand(rest)
	case "test":
		err = commands.TestCommand(rest)
	case "-v", "--version", "version":
		fmt.Println("brainfork", version)
		return
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		usage()
		os.Exit(1)
	}

	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func usage() {
	fmt.Println(`brainfork - an optimizing Brainfuck executor

Usage:
  brainfork run   [-d] [-t] [-l] [-nooptim] [-stats] [-tape-size N] <file.bf>
  brainfork build [-d] [-nooptim] [-tape-size N] <file.bf>
  brainfork repl  [-tape-size N]
  brainfork test  [-dir path]

Flags:
  -d           print debug info (instruction counts, IR dump)
  -t           print compile/run timing
  -l           execute via the LLVM-IR JIT path instead of the interpreter
  -nooptim     disable the peephole optimizer
  -stats       print the loop-frequency histogram after running
  -tape-size   tape length in cells (default 3000)
  -dir         fixture directory for the test subcommand`)
}
