package pmuevents

import "github.com/zyedidia/pmuevents/pkg/tables"

// Detail selects how much of each event WriteEvents shows.
type Detail int

const (
	// DetailName lists event names only.
	DetailName Detail = iota
	// DetailDesc lists events that have a short description.
	DetailDesc
	// DetailLongDesc prefers the long description, falling back to the
	// short one.
	DetailLongDesc
	// DetailFull lists every non-empty field of each event.
	DetailFull
)

// WriteEvents renders evs to w. It returns the writer's error, if any.
func WriteEvents(w TableWriter, evs []tables.Event, detail Detail) error {
	switch detail {
	case DetailName:
		w.SetHeader([]string{"Event"})
		for _, ev := range evs {
			w.Append([]string{ev.Name})
		}
	case DetailDesc, DetailLongDesc:
		w.SetHeader([]string{"Event", "Description"})
		for _, ev := range evs {
			desc := ev.Description
			if detail == DetailLongDesc && ev.LongDescription != "" {
				desc = ev.LongDescription
			}
			if desc == "" {
				continue
			}
			w.Append([]string{ev.Name, desc})
		}
	case DetailFull:
		w.SetHeader([]string{"Event", "Field", "Value"})
		for _, ev := range evs {
			desc := ev.LongDescription
			if desc == "" {
				desc = ev.Description
			}
			fields := []struct{ k, v string }{
				{"name", ev.Name},
				{"desc", desc},
				{"event", ev.Descriptor},
				{"alias_of", ev.AliasOf},
				{"topic", ev.Topic},
				{"pmu", ev.PMU},
				{"unit", ev.Unit},
				{"perpkg", ev.PerPkg},
				{"metric_expr", ev.MetricExpr},
				{"metric_name", ev.MetricName},
				{"metric_group", ev.MetricGroup},
			}
			for _, f := range fields {
				if f.v != "" {
					w.Append([]string{ev.Name, f.k, f.v})
				}
			}
		}
	}
	return renderErr(w)
}
