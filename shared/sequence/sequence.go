// Package sequence issues request ids for store loads so that only the most recently
// issued load may overwrite a list.
package sequence

import "sync/atomic"

type Tracker struct {
	latest atomic.Uint64
}

// Issue returns a new id that supersedes every id issued before it.
func (t *Tracker) Issue() uint64 {
	return t.latest.Add(1)
}

// IsLatest reports whether id is still the newest issued id.
func (t *Tracker) IsLatest(id uint64) bool {
	return t.latest.Load() == id
}

// Latest returns the newest issued id, 0 when none was issued.
func (t *Tracker) Latest() uint64 {
	return t.latest.Load()
}
