// Package corpus owns the drop-table document lifecycle: fetching it through
// a provider, flattening it to the text form the parsing core consumes, and
// publishing immutable snapshots behind an atomic holder.
package corpus

import (
	"sync/atomic"
	"time"

	"github.com/rotisserie/eris"
)

// ErrNotReady is returned when a query is attempted before any snapshot has
// been published.
var ErrNotReady = eris.New("corpus: drop tables not loaded")

// Snapshot is one immutable flattened rendering of the drop-table document.
// Every query is a pure function of a snapshot, so concurrent queries need no
// synchronization beyond holding a reference.
type Snapshot struct {
	Text      string
	ETag      string
	FetchedAt time.Time
}

// Holder publishes the current snapshot. The lifecycle is two-phase:
// uninitialized (Load returns ErrNotReady) then loaded, with reloads swapping
// in a whole new snapshot. In-flight queries keep the snapshot they captured;
// a snapshot is never mutated field by field.
type Holder struct {
	current atomic.Pointer[Snapshot]
}

// NewHolder returns an empty holder.
func NewHolder() *Holder {
	return &Holder{}
}

// Load returns the current snapshot, or ErrNotReady before the first Replace.
func (h *Holder) Load() (*Snapshot, error) {
	s := h.current.Load()
	if s == nil {
		return nil, ErrNotReady
	}
	return s, nil
}

// Ready reports whether a snapshot has been published.
func (h *Holder) Ready() bool {
	return h.current.Load() != nil
}

// Replace atomically publishes a new snapshot.
func (h *Holder) Replace(s *Snapshot) {
	h.current.Store(s)
}
