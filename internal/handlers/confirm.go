package handlers

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// DeleteConfirmations implements the two-phase delete at the API boundary:
// a deletion is first requested, yielding a token, then confirmed with that
// token or cancelled. The registry's delete itself stays unconditional.
type DeleteConfirmations struct {
	mu      sync.Mutex
	pending map[string]string
}

// NewDeleteConfirmations creates an empty confirmation tracker.
func NewDeleteConfirmations() *DeleteConfirmations {
	return &DeleteConfirmations{
		pending: make(map[string]string),
	}
}

func pendingKey(kind string, id int64) string {
	return fmt.Sprintf("%s:%d", kind, id)
}

// Request registers a pending deletion and returns its confirmation token.
// A repeated request replaces the previous token.
func (d *DeleteConfirmations) Request(kind string, id int64) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	token := uuid.NewString()
	d.pending[pendingKey(kind, id)] = token
	return token
}

// Confirm consumes the pending deletion if the token matches.
func (d *DeleteConfirmations) Confirm(kind string, id int64, token string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	key := pendingKey(kind, id)
	expected, ok := d.pending[key]
	if !ok || token == "" || token != expected {
		return false
	}
	delete(d.pending, key)
	return true
}

// Cancel discards a pending deletion. The boolean reports whether one
// existed.
func (d *DeleteConfirmations) Cancel(kind string, id int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	key := pendingKey(kind, id)
	if _, ok := d.pending[key]; !ok {
		return false
	}
	delete(d.pending, key)
	return true
}
