// Package cpuid identifies the running CPU by the model key used to select an
// architecture's event table, e.g. "GenuineIntel-6-55-4".
package cpuid

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// ErrUnavailable is returned when the host does not expose a CPU model key.
var ErrUnavailable = errors.New("cpu model key unavailable")

// ModelKey returns the model key of the running CPU. The host is queried at
// most once per process and the result, including a failure, is cached.
var ModelKey = sync.OnceValues(query)

// parseCPUInfo builds a model key from the first processor entry of a
// /proc/cpuinfo style listing. The format matches the hwpmc driver:
// vendor, decimal family, two-digit hex model and hex stepping.
func parseCPUInfo(r io.Reader) (string, error) {
	var (
		vendor                  string
		family, model, stepping = -1, -1, -1
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			if vendor != "" {
				// End of the first processor block.
				break
			}
			continue
		}
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		v = strings.TrimSpace(v)
		var err error
		switch k {
		case "vendor_id":
			vendor = v
		case "cpu family":
			family, err = strconv.Atoi(v)
		case "model":
			model, err = strconv.Atoi(v)
		case "stepping":
			stepping, err = strconv.Atoi(v)
		}
		if err != nil {
			return "", fmt.Errorf("cpuinfo: bad %s %q: %w", k, v, err)
		}
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	if vendor == "" || family < 0 || model < 0 || stepping < 0 {
		return "", ErrUnavailable
	}
	return fmt.Sprintf("%s-%d-%02X-%X", vendor, family, model, stepping), nil
}

// parseMIDR normalizes the contents of an arm64 midr_el1 register file.
func parseMIDR(data string) (string, error) {
	data = strings.TrimSpace(data)
	v, err := strconv.ParseUint(data, 0, 64)
	if err != nil {
		return "", fmt.Errorf("midr: %w", err)
	}
	return fmt.Sprintf("0x%016x", v), nil
}
