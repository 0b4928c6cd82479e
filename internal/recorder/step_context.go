package recorder

import "sync"

// stepContext tracks the single current step name for a recorder.
// Setting a new step replaces the previous one unconditionally (overwrite,
// not push); there is no automatic nesting or restore. Every logging call
// takes a read-only snapshot at the moment of the call, so changing the
// current step later never alters earlier entries.
type stepContext struct {
	mu      sync.RWMutex
	current string
}

// set replaces the current step. No error if a step is already active.
func (c *stepContext) set(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = name
}

// clear removes the current step. Idempotent: clearing with no active step
// is a no-op.
func (c *stepContext) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = ""
}

// snapshot returns the active step name, or "" if none. Pure read.
func (c *stepContext) snapshot() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}
