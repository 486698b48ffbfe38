package pmuevents

import (
	"fmt"

	"github.com/zyedidia/perf"
)

// Raw perf encodings of the fixed-function events.
var fixedRawConfig = map[FixedCounter]uint64{
	FixedInstrRetired: 0x00c0,
	FixedCoreCycles:   0x003c,
	FixedRefCycles:    0x0300,
}

// Configure fills attr with the record's raw encoding so that it can be
// opened with perf.Open. Privilege level filtering comes from the USR and OS
// bits, which perf manages itself.
func (r *AllocationRecord) Configure(attr *perf.Attr) error {
	var user, kernel bool
	switch r.Class {
	case Programmable:
		if r.Programmable == nil {
			return fmt.Errorf("%s: missing programmable config", r.Name)
		}
		cfg := r.Programmable.Config
		user, kernel = cfg&ConfigUSR != 0, cfg&ConfigOS != 0
		attr.Type = perf.RawEvent
		attr.Config = cfg &^ (ConfigUSR | ConfigOS | ConfigInt)
		attr.Config1 = r.Programmable.Rsp
	case Fixed:
		if r.Fixed == nil {
			return fmt.Errorf("%s: missing fixed config", r.Name)
		}
		user, kernel = r.Fixed.Flags&FixedUSR != 0, r.Fixed.Flags&FixedOS != 0
		attr.Type = perf.RawEvent
		attr.Config = fixedRawConfig[r.Fixed.Counter]
		if r.Fixed.Flags&FixedAny != 0 {
			attr.Config |= ConfigAny
		}
	default:
		return fmt.Errorf("%w: %s events have no raw cpu encoding", ErrUnsupported, r.Class)
	}
	attr.Options.ExcludeUser = !user
	attr.Options.ExcludeKernel = !kernel
	attr.Label = r.Name
	return nil
}

// Attr allocates name and converts the record to a perf attribute. With
// CapInterrupt the event's sample period is set as well; an event without a
// period samples every DefaultSampleCount events.
func (p *PMU) Attr(name string, caps Caps) (*perf.Attr, error) {
	r, err := p.Allocate(name, caps)
	if err != nil {
		return nil, err
	}
	attr := new(perf.Attr)
	if err := r.Configure(attr); err != nil {
		return nil, err
	}
	if caps&CapInterrupt != 0 {
		period := p.SampleRate(name)
		if period == 0 {
			period = DefaultSampleCount
		}
		attr.SetSamplePeriod(period)
	}
	return attr, nil
}
