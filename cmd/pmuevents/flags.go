package main

import (
	"strings"

	"github.com/zyedidia/pmuevents"
)

var opts struct {
	List     bool   `short:"l" long:"list" description:"List events whose name contains the optional argument"`
	Desc     bool   `short:"d" long:"desc" description:"Show short descriptions when listing"`
	LongDesc bool   `long:"long-desc" description:"Show long descriptions when listing"`
	Full     bool   `long:"full" description:"Show every field of each listed event"`
	Encode   string `short:"e" long:"encode" description:"Comma-separated list of events to encode"`
	Period   string `short:"p" long:"period" description:"Comma-separated list of events to show sample periods for"`
	Index    []int  `long:"index" description:"Show the name of the event at a table index"`
	Stat     bool   `long:"stat" description:"Encode the default counting mode events"`
	Intr     bool   `short:"i" long:"interrupt" description:"Request overflow interrupts when encoding"`
	Csv      bool   `long:"csv" description:"Write output in CSV format"`
	Tables   string `long:"tables" description:"Directory holding a mapfile.csv event table tree"`
	CPUID    string `long:"cpuid" description:"CPU model key to use instead of the host's"`
	Config   string `long:"config" description:"Configuration file"`
	Debug    bool   `long:"debug" description:"Report unrecognized descriptor keys"`
	Verbose  bool   `short:"V" long:"verbose" description:"Show verbose debug information"`
	Version  bool   `short:"v" long:"version" description:"Show version information"`
	Help     bool   `short:"h" long:"help" description:"Show this help message"`
}

func detail() pmuevents.Detail {
	switch {
	case opts.Full:
		return pmuevents.DetailFull
	case opts.LongDesc:
		return pmuevents.DetailLongDesc
	case opts.Desc:
		return pmuevents.DetailDesc
	}
	return pmuevents.DetailName
}

func caps() pmuevents.Caps {
	var c pmuevents.Caps
	if opts.Intr {
		c |= pmuevents.CapInterrupt
	}
	return c
}

// splitEventList splits a comma-separated list of event names, dropping
// empty entries.
func splitEventList(s string) []string {
	var names []string
	for _, n := range strings.Split(s, ",") {
		n = strings.TrimSpace(n)
		if n != "" {
			names = append(names, n)
		}
	}
	return names
}
