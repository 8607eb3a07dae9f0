package billing

import "time"

// Change is what happened to a client: it was added, updated, or removed.
// It is a closed set; the fold switches exhaustively over the variants.
type Change interface {
	change() // marker: only types in this package are changes
}

// Added creates a brand-new client under the event's key.
type Added struct {
	Name    string
	Address string
}

// Updated carries one validated update to an existing client.
type Updated struct{ Update Update }

// Removed deletes the client from the live set. The event log keeps its
// history; only the projection forgets the client.
type Removed struct{}

func (Added) change()   {}
func (Updated) change() {}
func (Removed) change() {}

// Event is a single, immutable fact in the client history: at a point in
// time, one change happened to one client. Events are strictly append-only
// and are the sole source of truth; every aggregate is a fold over them.
type Event struct {
	Key       string
	Timestamp time.Time // UTC
	Change    Change
}

// NewEvent creates an event stamped with the given instant.
func NewEvent(key string, at time.Time, change Change) Event {
	return Event{Key: key, Timestamp: at.UTC(), Change: change}
}

// NewUpdateEvent creates an event wrapping an update to an existing client.
func NewUpdateEvent(key string, at time.Time, update Update) Event {
	return NewEvent(key, at, Updated{Update: update})
}
