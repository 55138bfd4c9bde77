// Package jxlcore provides a pure Go implementation of the core of the
// JPEG XL (JXL) image decoder: bitstream parsing, entropy decoding,
// modular-image reconstruction, the XYB color pipeline, the
// render-pipeline stage catalog, and JPEG-reconstruction metadata
// replay. Container/box parsing, the VarDCT frequency-domain engine, ICC
// parsing, and Brotli decompression itself are external collaborators
// specified only via the interfaces this package consumes.
package jxlcore

// StatusKind classifies a failed operation's cause, per spec.md §6's
// JxlStatus contract.
type StatusKind int

const (
	// StatusOK indicates success; operations returning a Status use nil
	// for this, not StatusOK, so StatusKind is only inspected via
	// Status.Kind on a non-nil error.
	StatusOK StatusKind = iota
	StatusGenericError
	StatusNotEnoughBytes
	StatusUnsupported
)

func (k StatusKind) String() string {
	switch k {
	case StatusGenericError:
		return "GenericError"
	case StatusNotEnoughBytes:
		return "NotEnoughBytes"
	case StatusUnsupported:
		return "Unsupported"
	default:
		return "OK"
	}
}

// Status is the error type every fallible decoder operation returns,
// carrying a StatusKind alongside the usual wrapped-error chain.
type Status struct {
	Kind StatusKind
	msg  string
	err  error
}

func (s *Status) Error() string {
	if s.err != nil {
		return s.msg + ": " + s.err.Error()
	}
	return s.msg
}

func (s *Status) Unwrap() error { return s.err }

// NewStatus builds a Status of the given kind, wrapping err if non-nil.
func NewStatus(kind StatusKind, msg string, err error) *Status {
	return &Status{Kind: kind, msg: msg, err: err}
}
