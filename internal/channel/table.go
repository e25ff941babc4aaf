package channel

import (
	"fmt"
	"sort"
)

// Table indexes channels by identifier for the relay's command lookup.
// Build it once at startup; it is read-only afterwards.
type Table struct {
	channels map[string]*Channel
}

// NewTable builds a table from a list of channels.
// Duplicate identifiers are rejected.
func NewTable(channels []*Channel) (*Table, error) {
	t := &Table{channels: make(map[string]*Channel, len(channels))}
	for _, c := range channels {
		if _, exists := t.channels[c.ID()]; exists {
			return nil, fmt.Errorf("duplicate channel id %q", c.ID())
		}
		t.channels[c.ID()] = c
	}
	return t, nil
}

// Lookup returns the channel for an identifier, or nil if unknown.
func (t *Table) Lookup(id string) *Channel {
	return t.channels[id]
}

// IDs returns the channel identifiers in sorted order.
func (t *Table) IDs() []string {
	ids := make([]string, 0, len(t.channels))
	for id := range t.channels {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of channels in the table.
func (t *Table) Len() int {
	return len(t.channels)
}
