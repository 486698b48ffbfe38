//go:build !linux && !freebsd

package cpuid

func query() (string, error) {
	return "", ErrUnavailable
}
