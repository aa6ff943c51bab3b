// Package repl implements an interactive BF shell: each line is compiled
// and run against one Tape kept alive across lines, in the same
// read-compile-run-repeat shape as the teacher's REPL loop
// (sentra's internal/repl.Start), generalized from a language shell to a
// single persistent tape and data pointer.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"brainfork/internal/compiler"
	"brainfork/internal/interp"
	"brainfork/internal/tape"
)

// Start runs the REPL loop: read a line from in, compile it as a BF
// fragment, execute it against the tape left over from the previous line,
// and print the cursor position, until in is exhausted or the user types
// "exit".
func Start(in io.Reader, out io.Writer, tapeSize int) {
	fmt.Fprintln(out, "brainfork REPL | type 'exit' to quit")
	scanner := bufio.NewScanner(in)

	tp := tape.New(tapeSize)
	interpreter := interp.New(nil, tp)

	for {
		fmt.Fprint(out, ">>> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "exit" {
			break
		}
		if line == "" {
			continue
		}

		prog, err := compiler.New(true).Compile(strings.NewReader(line))
		if err != nil {
			fmt.Fprintln(out, "error:", err)
			continue
		}

		interpreter.Reset(prog)
		if err := interpreter.Run(in, out); err != nil {
			fmt.Fprintln(out, "error:", err)
			continue
		}
		dp := interpreter.DataPointer()
		if tp.InBounds(dp) {
			fmt.Fprintf(out, "dp=%d cell=%d\n", dp, tp.Get(dp))
		} else {
			fmt.Fprintf(out, "dp=%d cell=<out of bounds>\n", dp)
		}
	}
}
