package repl

import (
	"strings"
	"testing"
)

func TestPersistsDataPointerAcrossLines(t *testing.T) {
	in := strings.NewReader("+++>\n.\nexit\n")
	var out strings.Builder
	Start(in, &out, 0)

	// The second line ('.') should print the NUL byte of the fresh cell
	// the first line's '>' moved onto, proving the tape outlives the line.
	if !strings.Contains(out.String(), "\x00dp=1 cell=0") {
		t.Fatalf("expected a NUL byte followed by dp=1 cell=0 in transcript, got:\n%q", out.String())
	}
}

func TestReportsCompileErrorsWithoutCrashing(t *testing.T) {
	in := strings.NewReader("[[[\nexit\n")
	var out strings.Builder
	Start(in, &out, 0)
	if !strings.Contains(out.String(), "error:") {
		t.Fatalf("expected an error line for unbalanced brackets, got:\n%s", out.String())
	}
}
