package pmuevents

import (
	"bytes"
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports that an event could not be resolved to an
	// encoding: no CPU model key, no table for it, no such event, a dangling
	// alias or an event without a descriptor.
	ErrNotFound = errors.New("event not found")

	// ErrUnsupported reports that the host has no usable PMU tables.
	ErrUnsupported = errors.New("pmu unsupported")
)

// A MalformedDescriptorError is the panic value raised when a descriptor
// string contains an empty key. Descriptors come from the compiled-in tables,
// so this indicates a corrupt table rather than bad user input.
type MalformedDescriptorError struct {
	Descriptor string
	Token      string
}

func (e *MalformedDescriptorError) Error() string {
	return fmt.Sprintf("malformed descriptor %q: empty key in %q", e.Descriptor, e.Token)
}

type MultiError struct {
	errs []error
}

func (e *MultiError) Error() string {
	b := &bytes.Buffer{}
	for i, err := range e.errs {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(err.Error())
	}
	return b.String()
}

// Unwrap lets errors.Is match any of the collected errors.
func (e *MultiError) Unwrap() []error {
	return e.errs
}

func MultiErr(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return &MultiError{
		errs: errs,
	}
}
