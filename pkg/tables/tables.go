// Package tables holds the architecture-partitioned event tables that map
// event names to raw descriptor strings.
package tables

import "strings"

// An Event is one entry of an event table. Fields that a table does not
// provide are empty.
type Event struct {
	Name            string
	Descriptor      string // e.g. "event=0x2e,umask=0x41,period=100003"
	Description     string
	LongDescription string
	AliasOf         string // Name of the event supplying the encoding
	Topic           string
	PMU             string
	Unit            string
	PerPkg          string
	MetricExpr      string
	MetricName      string
	MetricGroup     string
}

// A Table is the event list of a single CPU model. Events keep their table
// order: an event's position is its stable per-architecture index.
type Table struct {
	CPUID   string
	Version string
	Type    string
	Events  []Event
}

// Set is an immutable collection of tables keyed by CPU model key.
type Set struct {
	tables map[string]*Table
	order  []string
}

// NewSet returns a Set holding the given tables. A later table with the same
// CPU model key replaces an earlier one.
func NewSet(tables ...*Table) *Set {
	s := &Set{tables: make(map[string]*Table, len(tables))}
	for _, t := range tables {
		if _, ok := s.tables[t.CPUID]; !ok {
			s.order = append(s.order, t.CPUID)
		}
		s.tables[t.CPUID] = t
	}
	return s
}

// Table returns the table whose CPU model key equals cpuid exactly.
func (s *Set) Table(cpuid string) (*Table, bool) {
	if s == nil {
		return nil, false
	}
	t, ok := s.tables[cpuid]
	return t, ok
}

// CPUIDs returns the model keys in the set, in insertion order.
func (s *Set) CPUIDs() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.order...)
}

// Find returns the first event whose name equals name, ignoring case, and its
// index in the table. Unnamed entries are skipped but still occupy an index.
func (t *Table) Find(name string) (Event, int, bool) {
	for i, ev := range t.Events {
		if ev.Name == "" {
			continue
		}
		if strings.EqualFold(ev.Name, name) {
			return ev, i, true
		}
	}
	return Event{}, -1, false
}
