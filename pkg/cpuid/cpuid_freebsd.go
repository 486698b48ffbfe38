//go:build freebsd

package cpuid

import "golang.org/x/sys/unix"

func query() (string, error) {
	s, err := unix.Sysctl("kern.hwpmc.cpuid")
	if err != nil || s == "" {
		return "", ErrUnavailable
	}
	return s, nil
}
