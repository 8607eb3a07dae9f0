package billing

import (
	"fmt"
	"iter"
	"maps"
	"slices"
)

// Clients is the live registry of clients, derived by folding the event log.
// It is a disposable projection: it never mutates the underlying log and can
// always be rebuilt from it.
type Clients struct {
	byKey map[string]*Client
}

// NewClients creates an empty registry.
func NewClients() *Clients { return &Clients{byKey: make(map[string]*Client)} }

// FromEvents folds events, in file order, into the current set of clients.
//
// An Added event for an existing key silently replaces the client
// (re-adding semantics). An update addressed to a key absent from the live
// set is an error: it means the log lost or never had the client's Added
// event, and dropping the update would silently lose data.
func FromEvents(events []Event) (*Clients, error) {
	clients := NewClients()
	for _, event := range events {
		if err := clients.ApplyEvent(event); err != nil {
			return nil, err
		}
	}
	return clients, nil
}

// ApplyEvent folds a single event into the registry.
func (cs *Clients) ApplyEvent(event Event) error {
	switch v := event.Change.(type) {
	case Added:
		cs.byKey[event.Key] = NewClient(event.Key, v.Name, v.Address)
	case Updated:
		client, ok := cs.byKey[event.Key]
		if !ok {
			return fmt.Errorf("update for client %q: %w", event.Key, ErrNotFound)
		}
		if err := client.Apply(v.Update); err != nil {
			return fmt.Errorf("client %q: %w", event.Key, err)
		}
	case Removed:
		delete(cs.byKey, event.Key)
	default:
		return fmt.Errorf("unsupported change type: %T", event.Change)
	}
	return nil
}

// Get returns the client for a key.
func (cs *Clients) Get(key string) (*Client, error) {
	client, ok := cs.byKey[key]
	if !ok {
		return nil, fmt.Errorf("client %q: %w", key, ErrNotFound)
	}
	return client, nil
}

// Has reports whether a client exists under the key.
func (cs *Clients) Has(key string) bool { _, ok := cs.byKey[key]; return ok }

// Len returns the number of live clients.
func (cs *Clients) Len() int { return len(cs.byKey) }

// All returns an iterator over clients in key order.
func (cs *Clients) All() iter.Seq[*Client] {
	return func(yield func(*Client) bool) {
		keys := slices.Collect(maps.Keys(cs.byKey))
		slices.Sort(keys)
		for _, key := range keys {
			if !yield(cs.byKey[key]) {
				return
			}
		}
	}
}
