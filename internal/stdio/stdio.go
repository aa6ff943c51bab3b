// Package stdio provides the process-wide exclusive lock over standard
// input/output that both the interpreter and the JIT engine acquire for
// the duration of a run (spec §5 "Shared resources").
package stdio

import "sync"

var mu sync.Mutex

// Acquire takes the process-wide stdio lock and returns a release function.
// Callers should defer the release immediately so the lock is dropped on
// both normal and abnormal return, per spec §5's "scoped acquisition with
// guaranteed release".
func Acquire() (release func()) {
	mu.Lock()
	return mu.Unlock
}
