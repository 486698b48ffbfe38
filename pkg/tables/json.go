package tables

import (
	"fmt"
	"strconv"
	"strings"
)

// jsonEvent is an entry of a perfmon style JSON event file, as found in the
// Linux pmu-events tree.
type jsonEvent struct {
	EventName         string
	BriefDescription  string
	PublicDescription string
	ArchStdEvent      string
	Topic             string

	EventCode        string
	ExtSel           string
	ConfigCode       string
	UMask            string
	CounterMask      string
	EdgeDetect       string
	Invert           string
	AnyThread        string
	SampleAfterValue string
	FCMask           string
	PortMask         string
	MSRIndex         string
	MSRValue         string
	Filter           string

	Unit        string
	ScaleUnit   string
	PerPkg      string
	MetricExpr  string
	MetricName  string
	MetricGroup string
}

// descriptorFields are appended after the event code, in this order, when
// present and non-zero. Values are copied verbatim.
var descriptorFields = []struct {
	key   string
	value func(*jsonEvent) string
}{
	{"any", func(j *jsonEvent) string { return j.AnyThread }},
	{"ch_mask", func(j *jsonEvent) string { return j.PortMask }},
	{"cmask", func(j *jsonEvent) string { return j.CounterMask }},
	{"edge", func(j *jsonEvent) string { return j.EdgeDetect }},
	{"fc_mask", func(j *jsonEvent) string { return j.FCMask }},
	{"inv", func(j *jsonEvent) string { return j.Invert }},
	{"period", func(j *jsonEvent) string { return j.SampleAfterValue }},
	{"umask", func(j *jsonEvent) string { return j.UMask }},
}

// msrFields maps auxiliary MSR addresses to the descriptor key that carries
// the MSR value.
var msrFields = map[uint64]string{
	0x3f6: "ldlat",
	0x1a6: "offcore_rsp",
	0x1a7: "offcore_rsp",
	0x3f7: "frontend",
}

var uncoreUnits = map[string]string{
	"CBO":    "cbox",
	"QPI LL": "qpi",
	"SBO":    "sbox",
	"IMPH-U": "cbox",
	"NCU":    "cbox",
}

func parseCode(s string) (uint64, error) {
	// Some events list one code per counter, e.g. "0xB7, 0xBB".
	first, _, _ := strings.Cut(s, ",")
	return strconv.ParseUint(strings.TrimSpace(first), 0, 64)
}

// descriptor encodes the record as a descriptor string. Records without an
// event or config code carry no encoding and yield "".
func (j *jsonEvent) descriptor() (string, error) {
	var b strings.Builder
	switch {
	case j.ConfigCode != "":
		code, err := parseCode(j.ConfigCode)
		if err != nil {
			return "", fmt.Errorf("bad ConfigCode %q: %w", j.ConfigCode, err)
		}
		fmt.Fprintf(&b, "config=0x%x", code)
	case j.EventCode != "":
		code, err := parseCode(j.EventCode)
		if err != nil {
			return "", fmt.Errorf("bad EventCode %q: %w", j.EventCode, err)
		}
		if j.ExtSel != "" {
			ext, err := strconv.ParseUint(j.ExtSel, 0, 64)
			if err != nil {
				return "", fmt.Errorf("bad ExtSel %q: %w", j.ExtSel, err)
			}
			code |= ext << 8
		}
		fmt.Fprintf(&b, "event=0x%x", code)
	default:
		return "", nil
	}

	for _, f := range descriptorFields {
		if v := f.value(j); v != "" && v != "0" {
			b.WriteString("," + f.key + "=" + v)
		}
	}
	if j.MSRIndex != "" && j.MSRValue != "" {
		msr, err := parseCode(j.MSRIndex)
		if err != nil {
			return "", fmt.Errorf("bad MSRIndex %q: %w", j.MSRIndex, err)
		}
		if key, ok := msrFields[msr]; ok {
			b.WriteString("," + key + "=" + j.MSRValue)
		}
	}
	if j.Filter != "" {
		b.WriteString("," + j.Filter)
	}
	return b.String(), nil
}

func (j *jsonEvent) pmu() string {
	if j.Unit == "" {
		return ""
	}
	if u, ok := uncoreUnits[j.Unit]; ok {
		return "uncore_" + u
	}
	return "uncore_" + strings.ToLower(j.Unit)
}

// toEvent converts the JSON record. topic is used when the record does not
// name its own.
func (j *jsonEvent) toEvent(topic string) (Event, error) {
	desc, err := j.descriptor()
	if err != nil {
		return Event{}, fmt.Errorf("event %q: %w", j.EventName, err)
	}
	ev := Event{
		Name:            j.EventName,
		Descriptor:      desc,
		Description:     j.BriefDescription,
		LongDescription: j.PublicDescription,
		Topic:           j.Topic,
		PMU:             j.pmu(),
		Unit:            j.ScaleUnit,
		PerPkg:          j.PerPkg,
		MetricExpr:      j.MetricExpr,
		MetricName:      j.MetricName,
		MetricGroup:     j.MetricGroup,
	}
	if ev.Topic == "" {
		ev.Topic = topic
	}
	if ev.LongDescription == ev.Description {
		ev.LongDescription = ""
	}
	switch {
	case j.ArchStdEvent == "":
	case ev.Name == "" || strings.EqualFold(ev.Name, j.ArchStdEvent):
		// A plain reference to the standard event under its own name.
		ev.Name = j.ArchStdEvent
	default:
		ev.AliasOf = j.ArchStdEvent
	}
	return ev, nil
}
