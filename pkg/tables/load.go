package tables

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/blang/semver"
)

// MapFile is the name of the index file at the root of a table tree. Each
// record is "Family-model,Version,Filename,EventType"; Filename names a
// directory of JSON event files.
const MapFile = "mapfile.csv"

type mapEntry struct {
	cpuid   string
	version semver.Version
	raw     string
	dir     string
	typ     string
}

func readMapFile(fsys fs.FS) ([]mapEntry, error) {
	f, err := fsys.Open(MapFile)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", MapFile, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comment = '#'
	r.FieldsPerRecord = 4
	r.TrimLeadingSpace = true

	var entries []mapEntry
	for line := 0; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", MapFile, err)
		}
		if line == 0 && rec[0] == "Family-model" {
			continue
		}
		v, err := semver.ParseTolerant(rec[1])
		if err != nil {
			return nil, fmt.Errorf("%s: %s: bad version %q: %w", MapFile, rec[0], rec[1], err)
		}
		entries = append(entries, mapEntry{
			cpuid:   rec[0],
			version: v,
			raw:     rec[1],
			dir:     rec[2],
			typ:     rec[3],
		})
	}
	return entries, nil
}

// Load reads a table tree from fsys. When several map file records share a CPU
// model key, the one with the highest version is used.
func Load(fsys fs.FS) (*Set, error) {
	entries, err := readMapFile(fsys)
	if err != nil {
		return nil, err
	}

	best := make(map[string]mapEntry)
	var order []string
	for _, e := range entries {
		cur, ok := best[e.cpuid]
		if !ok {
			order = append(order, e.cpuid)
		}
		if !ok || e.version.GT(cur.version) {
			best[e.cpuid] = e
		}
	}

	tables := make([]*Table, 0, len(order))
	for _, cpuid := range order {
		e := best[cpuid]
		events, err := loadDir(fsys, e.dir)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", cpuid, err)
		}
		tables = append(tables, &Table{
			CPUID:   cpuid,
			Version: e.raw,
			Type:    e.typ,
			Events:  events,
		})
	}
	return NewSet(tables...), nil
}

// loadDir concatenates the events of every JSON file in dir, in file name
// order.
func loadDir(fsys fs.FS, dir string) ([]Event, error) {
	ents, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	var events []Event
	for _, ent := range ents {
		if ent.IsDir() || !strings.HasSuffix(ent.Name(), ".json") {
			continue
		}
		file := path.Join(dir, ent.Name())
		evs, err := loadFile(fsys, file)
		if err != nil {
			return nil, err
		}
		events = append(events, evs...)
	}
	if len(events) == 0 {
		return nil, errors.New("no events in " + dir)
	}
	return events, nil
}

func loadFile(fsys fs.FS, file string) ([]Event, error) {
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return nil, err
	}
	var list []jsonEvent
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", file, err)
	}
	topic := strings.TrimSuffix(path.Base(file), ".json")
	events := make([]Event, 0, len(list))
	for i := range list {
		ev, err := list[i].toEvent(topic)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		events = append(events, ev)
	}
	return events, nil
}
