package logging

import (
	"fmt"
	"sync"
)

// Recorder is a Logger that keeps every line in memory. Fatalf panics
// instead of exiting so tests can observe it.
type Recorder struct {
	mu    sync.Mutex
	lines []string
}

func (r *Recorder) Infof(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

func (r *Recorder) Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.mu.Lock()
	r.lines = append(r.lines, msg)
	r.mu.Unlock()
	panic(msg)
}

// Lines returns a copy of everything logged so far.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}
