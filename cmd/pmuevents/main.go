package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/zyedidia/pmuevents"
	"github.com/zyedidia/pmuevents/internal/config"
)

// Version is set at link time.
var Version = "dev"

func fatal(a ...interface{}) {
	fmt.Fprintln(os.Stderr, a...)
	os.Exit(1)
}

func must(desc string, err error) {
	if err != nil {
		fatal(desc, ":", err)
	}
}

func tableWriter(w io.Writer) pmuevents.TableWriter {
	if opts.Csv {
		return pmuevents.NewCSVWriter(w)
	}
	return pmuevents.NewTableWriter(w)
}

func loadConfig() *config.Config {
	cfg, err := config.Load(opts.Config)
	must("config", err)
	if opts.Tables != "" {
		cfg.Tables = opts.Tables
	}
	if opts.CPUID != "" {
		cfg.CPUID = opts.CPUID
	}
	if opts.Debug {
		cfg.Debug = true
	}
	return cfg
}

func main() {
	flagparser := flags.NewParser(&opts, flags.PassDoubleDash|flags.PrintErrors)
	flagparser.Usage = "[OPTIONS] [SUBSTR]"
	args, err := flagparser.Parse()
	if err != nil {
		os.Exit(1)
	}

	if opts.Version {
		fmt.Println("pmuevents version", Version)
		os.Exit(0)
	}

	if opts.Help || !(opts.List || opts.Encode != "" || opts.Period != "" || len(opts.Index) > 0 || opts.Stat) {
		flagparser.WriteHelp(os.Stdout)
		os.Exit(0)
	}

	cfg := loadConfig()
	if opts.Verbose || cfg.Debug {
		logger, err := zap.NewDevelopment()
		must("logger", err)
		defer logger.Sync()
		pmuevents.SetLogger(logger)
	}

	pmu, err := pmuevents.FromConfig(cfg)
	must("tables", err)
	must("error", supported(pmu))

	out := os.Stdout
	if opts.List {
		substr := ""
		if len(args) > 0 {
			substr = args[0]
		}
		must("list", list(out, pmu, substr, cfg.Debug))
	}
	if len(opts.Index) > 0 {
		must("index", index(out, pmu, opts.Index))
	}
	if opts.Period != "" {
		must("period", period(out, pmu, splitEventList(opts.Period)))
	}
	if opts.Encode != "" {
		must("encode", encode(out, pmu, splitEventList(opts.Encode)))
	}
	if opts.Stat {
		names, err := pmu.StatModeCounters()
		must("stat", err)
		must("stat", encode(out, pmu, names))
	}
}

// supported reports why pmu cannot resolve events on this host, if it cannot.
func supported(pmu *pmuevents.PMU) error {
	if pmu.Enabled() {
		return nil
	}
	key, err := pmu.Catalog().ModelKey()
	if err != nil {
		return fmt.Errorf("PMU unsupported on this host: %w", err)
	}
	return fmt.Errorf("no event table for CPU %s", key)
}

// render flushes w and returns the CSV write error, if any.
func render(w pmuevents.TableWriter) error {
	w.Render()
	if c, ok := w.(*pmuevents.CSVWriter); ok {
		return c.Err()
	}
	return nil
}

func list(out io.Writer, pmu *pmuevents.PMU, substr string, debug bool) error {
	evs := pmu.Search(substr)
	if len(evs) == 0 {
		fmt.Fprintln(out, "No events found")
		return nil
	}
	if debug {
		// Parsing reports keys the encoder does not understand.
		for _, ev := range evs {
			pmu.ParseDescriptor(ev.Descriptor)
		}
	}
	return pmuevents.WriteEvents(tableWriter(out), evs, detail())
}

func index(out io.Writer, pmu *pmuevents.PMU, idxs []int) error {
	w := tableWriter(out)
	w.SetHeader([]string{"Index", "Event"})
	var errs []error
	for _, idx := range idxs {
		name, err := pmu.NameByIndex(idx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		w.Append([]string{strconv.Itoa(idx), name})
	}
	if err := render(w); err != nil {
		return err
	}
	return pmuevents.MultiErr(errs)
}

func period(out io.Writer, pmu *pmuevents.PMU, names []string) error {
	w := tableWriter(out)
	w.SetHeader([]string{"Event", "Period"})
	for _, name := range names {
		w.Append([]string{name, strconv.FormatUint(pmu.SampleRate(name), 10)})
	}
	return render(w)
}

// encode prints the records that could be allocated and then reports the
// names that could not.
func encode(out io.Writer, pmu *pmuevents.PMU, names []string) error {
	records, err := pmu.AllocateList(names, caps())
	w := tableWriter(out)
	w.SetHeader([]string{"Event", "Class", "Index", "Caps", "Config", "Extra"})
	for _, r := range records {
		var word, extra string
		switch {
		case r.Fixed != nil:
			word = r.Fixed.Counter.String()
			extra = fmt.Sprintf("flags=%#x", r.Fixed.Flags)
		case r.Programmable != nil:
			word = fmt.Sprintf("%#x", r.Programmable.Config)
			if r.Programmable.Rsp != 0 {
				extra = fmt.Sprintf("rsp=%#x", r.Programmable.Rsp)
			}
		}
		w.Append([]string{
			r.Name,
			r.Class.String(),
			strconv.Itoa(r.Index),
			capString(r.Caps),
			word,
			extra,
		})
	}
	if rerr := render(w); rerr != nil {
		return rerr
	}
	return err
}

var capNames = []struct {
	c    pmuevents.Caps
	name string
}{
	{pmuevents.CapInterrupt, "INT"},
	{pmuevents.CapUser, "USER"},
	{pmuevents.CapSystem, "SYSTEM"},
	{pmuevents.CapEdge, "EDGE"},
	{pmuevents.CapThreshold, "THRESHOLD"},
	{pmuevents.CapRead, "READ"},
	{pmuevents.CapWrite, "WRITE"},
	{pmuevents.CapInvert, "INVERT"},
	{pmuevents.CapQualifier, "QUALIFIER"},
	{pmuevents.CapPrecise, "PRECISE"},
	{pmuevents.CapTagging, "TAGGING"},
	{pmuevents.CapCascade, "CASCADE"},
}

func capString(c pmuevents.Caps) string {
	var parts []string
	for _, cn := range capNames {
		if c&cn.c != 0 {
			parts = append(parts, cn.name)
		}
	}
	return strings.Join(parts, "|")
}
