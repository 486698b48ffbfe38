// Package pmuevents resolves hardware performance event names into the
// register encodings used to program CPU performance counters.
package pmuevents

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/zyedidia/pmuevents/internal/config"
	"github.com/zyedidia/pmuevents/pkg/cpuid"
	"github.com/zyedidia/pmuevents/pkg/tables"
)

// DefaultSampleCount is the sample period used when an event's period cannot
// be determined.
const DefaultSampleCount = 65536

var statModeCounters = []string{
	"cpu_clk_unhalted.thread_any",
	"inst_retired.any",
	"br_inst_retired.all_branches",
	"br_misp_retired.all_branches",
	"longest_lat_cache.reference",
	"longest_lat_cache.miss",
}

// A PMU resolves and encodes events for one CPU model.
type PMU struct {
	catalog *Catalog
	parser  Parser
}

// Options configure New.
type Options struct {
	Tables *tables.Set
	// ModelKey returns the CPU model key. It is called at most once.
	ModelKey func() (string, error)
	// Debug reports unrecognized descriptor keys through Logger.
	Debug  bool
	Logger *zap.Logger
}

func New(o Options) *PMU {
	return &PMU{
		catalog: NewCatalog(o.Tables, o.ModelKey),
		parser:  Parser{Debug: o.Debug, Logger: o.Logger},
	}
}

// FromConfig builds a PMU from c: tables from c.Tables or the compiled-in
// set, and the model key from c.CPUID or the host.
func FromConfig(c *config.Config) (*PMU, error) {
	var (
		set *tables.Set
		err error
	)
	if c.Tables != "" {
		set, err = tables.Load(os.DirFS(c.Tables))
	} else {
		set, err = tables.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("load event tables: %w", err)
	}
	key := cpuid.ModelKey
	if c.CPUID != "" {
		id := c.CPUID
		key = func() (string, error) { return id, nil }
	}
	return New(Options{
		Tables:   set,
		ModelKey: key,
		Debug:    c.Debug,
	}), nil
}

// Default returns the process-wide PMU configured from the environment.
var Default = sync.OnceValue(func() *PMU {
	p, err := FromConfig(config.FromEnv())
	if err != nil {
		Logger.Warn("pmu tables unavailable", zap.Error(err))
		return New(Options{ModelKey: cpuid.ModelKey})
	}
	return p
})

func (p *PMU) Catalog() *Catalog {
	return p.catalog
}

// Enabled reports whether the host's CPU has an event table.
func (p *PMU) Enabled() bool {
	return p.catalog.Supported()
}

// ParseDescriptor decodes s, honoring the PMU's debug setting.
func (p *PMU) ParseDescriptor(s string) Descriptor {
	return p.parser.Parse(s)
}

// SampleRate returns the sample period recorded for an event, or
// DefaultSampleCount if the event cannot be resolved.
func (p *PMU) SampleRate(name string) uint64 {
	ev, _, err := p.catalog.Resolve(ResolveAlias(name))
	if err != nil || ev.Descriptor == "" {
		return DefaultSampleCount
	}
	return p.parser.Parse(ev.Descriptor).Period
}

// Allocate resolves, classifies and encodes an event. caps are the
// capabilities the caller requests; CapInterrupt enables overflow
// interrupts.
func (p *PMU) Allocate(name string, caps Caps) (*AllocationRecord, error) {
	ev, idx, err := p.catalog.Resolve(ResolveAlias(name))
	if err != nil {
		return nil, err
	}
	if ev.Descriptor == "" {
		return nil, fmt.Errorf("%w: %s has no encoding", ErrNotFound, ev.Name)
	}
	d := p.parser.Parse(ev.Descriptor)
	r, err := Encode(ev, idx, d, Classify(ev.Name), caps)
	if err != nil {
		return nil, err
	}
	Logger.Debug("allocated event",
		zap.String("name", name),
		zap.String("event", ev.Name),
		zap.Stringer("class", r.Class),
		zap.Int("index", r.Index))
	return r, nil
}

// AllocateList allocates each name. Names that fail are skipped and their
// errors joined into a *MultiError.
func (p *PMU) AllocateList(names []string, caps Caps) ([]*AllocationRecord, error) {
	var (
		records []*AllocationRecord
		errs    []error
	)
	for _, name := range names {
		r, err := p.Allocate(name, caps)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		records = append(records, r)
	}
	return records, MultiErr(errs)
}

// NameByIndex returns the name of the event at a table index.
func (p *PMU) NameByIndex(idx int) (string, error) {
	return p.catalog.NameByIndex(idx)
}

// Search returns the events whose name contains substr, ignoring case.
func (p *PMU) Search(substr string) []tables.Event {
	return p.catalog.Search(substr)
}

// StatModeCounters returns the events counted by default in counting mode.
func (p *PMU) StatModeCounters() ([]string, error) {
	if !p.Enabled() {
		return nil, ErrUnsupported
	}
	return append([]string(nil), statModeCounters...), nil
}

// SampleRate calls SampleRate on the default PMU.
func SampleRate(name string) uint64 {
	return Default().SampleRate(name)
}

// Enabled calls Enabled on the default PMU.
func Enabled() bool {
	return Default().Enabled()
}

// Allocate calls Allocate on the default PMU.
func Allocate(name string, caps Caps) (*AllocationRecord, error) {
	return Default().Allocate(name, caps)
}
