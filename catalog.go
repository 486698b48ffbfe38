package pmuevents

import (
	"fmt"
	"strings"
	"sync"

	"github.com/zyedidia/pmuevents/pkg/cpuid"
	"github.com/zyedidia/pmuevents/pkg/tables"
)

// A Catalog looks up events in the table selected by the CPU model key.
type Catalog struct {
	set *tables.Set
	key func() (string, error)
}

// NewCatalog returns a catalog over set. modelKey is called at most once, on
// first use; a nil modelKey makes every lookup fail.
func NewCatalog(set *tables.Set, modelKey func() (string, error)) *Catalog {
	if modelKey == nil {
		modelKey = func() (string, error) {
			return "", cpuid.ErrUnavailable
		}
	}
	return &Catalog{
		set: set,
		key: sync.OnceValues(modelKey),
	}
}

// ModelKey returns the CPU model key the catalog selects tables with.
func (c *Catalog) ModelKey() (string, error) {
	return c.key()
}

func (c *Catalog) table() (*tables.Table, error) {
	key, err := c.key()
	if err != nil {
		return nil, fmt.Errorf("%w: PMU unsupported on this host: %v", ErrNotFound, err)
	}
	t, ok := c.set.Table(key)
	if !ok {
		return nil, fmt.Errorf("%w: no event table for CPU %q", ErrNotFound, key)
	}
	return t, nil
}

// Supported reports whether a table matches the CPU model key.
func (c *Catalog) Supported() bool {
	_, err := c.table()
	return err == nil
}

// Lookup returns the first event named name, ignoring case, and its index in
// the table. Aliases recorded in the table are not followed.
func (c *Catalog) Lookup(name string) (tables.Event, int, error) {
	t, err := c.table()
	if err != nil {
		return tables.Event{}, -1, err
	}
	ev, idx, ok := t.Find(name)
	if !ok {
		return tables.Event{}, -1, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return ev, idx, nil
}

// Resolve is like Lookup but follows an event's AliasOf once, returning the
// target event and its index.
func (c *Catalog) Resolve(name string) (tables.Event, int, error) {
	ev, idx, err := c.Lookup(name)
	if err != nil {
		return ev, idx, err
	}
	if ev.AliasOf == "" {
		return ev, idx, nil
	}
	target, tidx, err := c.Lookup(ev.AliasOf)
	if err != nil {
		return tables.Event{}, -1, fmt.Errorf("%s is an alias of %s: %w", name, ev.AliasOf, err)
	}
	return target, tidx, nil
}

// NameByIndex returns the name of the event at index idx.
func (c *Catalog) NameByIndex(idx int) (string, error) {
	t, err := c.table()
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(t.Events) || t.Events[idx].Name == "" {
		return "", fmt.Errorf("%w: no event at index %d", ErrNotFound, idx)
	}
	return t.Events[idx].Name, nil
}

// Search returns the named events whose name contains substr, ignoring case,
// in table order. An empty substr matches every named event.
func (c *Catalog) Search(substr string) []tables.Event {
	t, err := c.table()
	if err != nil {
		return nil
	}
	substr = strings.ToLower(substr)
	var evs []tables.Event
	for _, ev := range t.Events {
		if ev.Name == "" {
			continue
		}
		if strings.Contains(strings.ToLower(ev.Name), substr) {
			evs = append(evs, ev)
		}
	}
	return evs
}
