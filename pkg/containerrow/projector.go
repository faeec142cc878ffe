package containerrow

import (
	"sync"

	v1 "k8s.io/api/core/v1"
)

// Projector caches the result of Project for the last pod slice it was given.
// The cache is keyed on the slice identity (its backing array and length), not
// its contents, so callers must replace the slice rather than mutate it in
// place when pods change.
//
// A Projector is safe for concurrent use.
type Projector struct {
	mu    sync.Mutex
	key   sliceKey
	rows  []Row
	valid bool
}

type sliceKey struct {
	first *v1.Pod
	len   int
}

func keyOf(pods []v1.Pod) sliceKey {
	if len(pods) == 0 {
		return sliceKey{}
	}
	return sliceKey{first: &pods[0], len: len(pods)}
}

// Project returns the rows for the given pods, reusing the previous result if
// the same slice was passed last time.
func (p *Projector) Project(pods []v1.Pod) []Row {
	key := keyOf(pods)
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.valid && p.key == key {
		return p.rows
	}
	p.rows = Project(pods)
	p.key = key
	p.valid = true
	return p.rows
}

// Reset drops the cached rows.
func (p *Projector) Reset() {
	p.mu.Lock()
	p.rows = nil
	p.valid = false
	p.mu.Unlock()
}
