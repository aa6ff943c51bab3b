// Package bftest is a golden-fixture runner: each fixture is a `.bf`
// source file paired with a `.in` (stdin) and `.out` (expected stdout)
// file sharing the same basename under testdata/. It exists to assert
// spec §8's P5 ("interpreter and JIT agree on output for every fixture
// program") alongside ordinary correctness, in the same load-a-directory-
// of-cases shape as the teacher's test framework's suite/case model,
// collapsed down from a general assertion DSL to a single input/output
// comparison since that is all a batch BF program needs.
package bftest

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Fixture is one golden test case.
type Fixture struct {
	Name   string // basename, e.g. "hello"
	Source string // .bf contents
	Input  string // .in contents, "" if absent
	Output string // .out contents (expected)
}

// Load reads every *.bf file in dir and pairs it with its .in/.out
// siblings, sorted by name for deterministic test ordering.
func Load(dir string) ([]Fixture, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".bf") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".bf"))
	}
	sort.Strings(names)

	fixtures := make([]Fixture, 0, len(names))
	for _, name := range names {
		src, err := os.ReadFile(filepath.Join(dir, name+".bf"))
		if err != nil {
			return nil, err
		}
		in, _ := os.ReadFile(filepath.Join(dir, name+".in"))
		out, err := os.ReadFile(filepath.Join(dir, name+".out"))
		if err != nil {
			return nil, err
		}
		fixtures = append(fixtures, Fixture{
			Name:   name,
			Source: string(src),
			Input:  string(in),
			Output: string(out),
		})
	}
	return fixtures, nil
}
