package pmuevents

import "strings"

// Class is the kind of counter an event is counted on.
type Class int

const (
	Programmable Class = iota
	Fixed
	Uncore
)

func (c Class) String() string {
	switch c {
	case Programmable:
		return "programmable"
	case Fixed:
		return "fixed"
	case Uncore:
		return "uncore"
	}
	return "unknown"
}

// FixedCounters are the events counted on fixed-function counters.
var FixedCounters = []string{
	"inst_retired.any",
	"cpu_clk_unhalted.thread",
	"cpu_clk_unhalted.thread_any",
	"cpu_clk_unhalted.ref_tsc",
}

// Classify decides the counter class from the event name. Fixed-function
// names win over the uncore heuristics.
func Classify(name string) Class {
	for _, f := range FixedCounters {
		if strings.EqualFold(name, f) {
			return Fixed
		}
	}
	if hasPrefixFold(name, "UNC_") || containsFold(name, "uncore") {
		return Uncore
	}
	return Programmable
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
