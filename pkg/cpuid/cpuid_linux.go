//go:build linux

package cpuid

import (
	"bytes"
	"os"

	"golang.org/x/sys/unix"
)

var (
	cpuinfoPath = "/proc/cpuinfo"
	midrPath    = "/sys/devices/system/cpu/cpu0/regs/identification/midr_el1"
)

func machine() string {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return ""
	}
	return string(bytes.TrimRight(uts.Machine[:], "\x00"))
}

func query() (string, error) {
	switch machine() {
	case "x86_64", "i386", "i686":
		f, err := os.Open(cpuinfoPath)
		if err != nil {
			return "", ErrUnavailable
		}
		defer f.Close()
		return parseCPUInfo(f)
	case "aarch64":
		data, err := os.ReadFile(midrPath)
		if err != nil {
			return "", ErrUnavailable
		}
		return parseMIDR(string(data))
	}
	return "", ErrUnavailable
}
