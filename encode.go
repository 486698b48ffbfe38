package pmuevents

import (
	"fmt"

	"github.com/zyedidia/pmuevents/pkg/tables"
)

// Caps are the capabilities requested of, and granted to, a counter.
type Caps uint32

const (
	CapInterrupt Caps = 1 << iota
	CapUser
	CapSystem
	CapEdge
	CapThreshold
	CapRead
	CapWrite
	CapInvert
	CapQualifier
	CapPrecise
	CapTagging
	CapCascade
)

// Programmable counter event-select bits.
const (
	ConfigUSR  uint64 = 1 << 16
	ConfigOS   uint64 = 1 << 17
	ConfigEdge uint64 = 1 << 18
	ConfigInt  uint64 = 1 << 20
	ConfigAny  uint64 = 1 << 21
)

func configEvSel(v uint32) uint64 { return uint64(v) & 0xff }
func configUmask(v uint8) uint64  { return uint64(v) << 8 }
func configCmask(v uint8) uint64  { return uint64(v) << 24 }

// Fixed counter control bits.
const (
	FixedOS  uint32 = 0x1
	FixedUSR uint32 = 0x2
	FixedAny uint32 = 0x4
	FixedPMI uint32 = 0x8
)

// FixedCounter selects one of the fixed-function counters.
type FixedCounter int

const (
	FixedInstrRetired FixedCounter = iota
	FixedCoreCycles
	FixedRefCycles
)

func (f FixedCounter) String() string {
	switch f {
	case FixedInstrRetired:
		return "INSTR_RETIRED_ANY"
	case FixedCoreCycles:
		return "CPU_CLK_UNHALTED_CORE"
	case FixedRefCycles:
		return "CPU_CLK_UNHALTED_REF"
	}
	return fmt.Sprintf("FixedCounter(%d)", int(f))
}

type FixedConfig struct {
	Counter FixedCounter
	Flags   uint32
}

type ProgrammableConfig struct {
	Config uint64 // Event-select register value
	Rsp    uint64 // Off-core response register value
}

// An AllocationRecord is the encoding handed to the counter allocator. Fixed
// is set for Fixed records and Programmable for Programmable records; Uncore
// records carry neither.
type AllocationRecord struct {
	Name  string
	Class Class
	Caps  Caps
	// Index is the event's position in the CPU's event table.
	Index        int
	Fixed        *FixedConfig
	Programmable *ProgrammableConfig
}

// fixedCounterFor picks the fixed counter from the event description. The
// substrings are checked in order; "core" also matches reference cycle
// descriptions such as "Reference cycles when the core is not in halt state".
func fixedCounterFor(desc string) (FixedCounter, bool) {
	switch {
	case containsFold(desc, "retired"):
		return FixedInstrRetired, true
	case containsFold(desc, "core") || containsFold(desc, "unhalted"):
		return FixedCoreCycles, true
	case containsFold(desc, "ref"):
		return FixedRefCycles, true
	}
	return 0, false
}

// Encode packs a parsed descriptor into an allocation record. idx is the
// event's table index and caps the capabilities requested by the caller;
// only CapInterrupt changes the encoding.
func Encode(ev tables.Event, idx int, d Descriptor, class Class, caps Caps) (*AllocationRecord, error) {
	if ev.Descriptor == "" {
		return nil, fmt.Errorf("%w: %s has no encoding", ErrNotFound, ev.Name)
	}
	r := &AllocationRecord{
		Name:  ev.Name,
		Class: class,
		Caps:  caps | CapRead | CapWrite,
	}

	switch class {
	case Fixed:
		counter, ok := fixedCounterFor(ev.Description)
		if !ok {
			return nil, fmt.Errorf("%w: no fixed counter matches %s (%q)", ErrNotFound, ev.Name, ev.Description)
		}
		fc := &FixedConfig{Counter: counter, Flags: FixedUSR | FixedOS}
		if d.Any != 0 {
			fc.Flags |= FixedAny
		}
		if caps&CapInterrupt != 0 {
			fc.Flags |= FixedPMI
		}
		r.Index = int(counter)
		r.Fixed = fc
		return r, nil
	case Uncore:
		r.Index = idx
		return r, nil
	}

	r.Caps |= CapQualifier
	r.Index = idx
	pc := &ProgrammableConfig{
		Config: configEvSel(d.Event) | configUmask(d.Umask) | configCmask(d.Cmask),
		Rsp:    d.OffcoreRsp,
	}
	pc.Config |= ConfigUSR | ConfigOS
	// Invert shares the edge bit in this encoding.
	if d.Edge != 0 || d.Inv != 0 {
		pc.Config |= ConfigEdge
	}
	if d.Any != 0 {
		pc.Config |= ConfigAny
	}
	if caps&CapInterrupt != 0 {
		pc.Config |= ConfigInt
	}
	r.Programmable = pc
	return r, nil
}
