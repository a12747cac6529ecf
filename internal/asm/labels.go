package asm

import (
	"fmt"
	"sync"
)

// labelTable is a mutex-protected map of label name to resolved address,
// scoped to a single Assemble call (never package-level state). Every
// label is resolved synchronously during the first pass before any
// second-pass goroutine is spawned, but second-pass code still waits on
// the shared condition variable so a future multi-phase first pass can
// resolve labels out of order without changing this API.
type labelTable struct {
	mu   sync.Mutex
	cond *sync.Cond

	addrs map[string]uint16
	done  bool // true once the first pass has recorded every label
}

func newLabelTable() *labelTable {
	lt := &labelTable{addrs: make(map[string]uint16)}
	lt.cond = sync.NewCond(&lt.mu)
	return lt
}

// define records a label's resolved address and wakes any waiters.
func (lt *labelTable) define(name string, addr uint16) {
	lt.mu.Lock()
	lt.addrs[name] = addr
	lt.mu.Unlock()
	lt.cond.Broadcast()
}

// closeFirstPass marks that every label the source defines has now been
// recorded; any name absent from the table after this point can never
// resolve.
func (lt *labelTable) closeFirstPass() {
	lt.mu.Lock()
	lt.done = true
	lt.mu.Unlock()
	lt.cond.Broadcast()
}

// wait blocks until name is resolved, returning its address, or returns
// an error once the first pass has closed without ever defining it.
func (lt *labelTable) wait(name string) (uint16, error) {
	lt.mu.Lock()
	defer lt.mu.Unlock()
	for {
		if addr, ok := lt.addrs[name]; ok {
			return addr, nil
		}
		if lt.done {
			return 0, fmt.Errorf("undefined label %q", name)
		}
		lt.cond.Wait()
	}
}
