package download

import (
	"bytes"
	"errors"
	"fmt"
)

const defaultChunkSize = 32 << 10 // 32KB

// maxPrealloc caps the buffer grown up front from a server-supplied
// Content-Length.
const maxPrealloc = 64 << 20 // 64MB

var (
	ErrChecksumMismatch     = errors.New("checksum mismatch")
	ErrDownloadCancelled    = errors.New("download cancelled")
	ErrConsumed             = errors.New("download sequence already consumed")
	ErrStreamingUnsupported = errors.New("streaming unsupported: response has no body reader")
	ErrInvalidChunkSize     = errors.New("chunk size must be greater than zero")
)

// Error wraps a sentinel error with additional detail.
type Error struct {
	Detail string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Kind identifies which variant an [Event] holds.
type Kind uint8

const (
	KindProgress Kind = iota + 1
	KindResponse
)

func (k Kind) String() string {
	switch k {
	case KindProgress:
		return "progress"
	case KindResponse:
		return "response"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Event is one step of a download. Only the field matching Kind is set:
// Fraction for [KindProgress], Data for [KindResponse].
type Event struct {
	Kind     Kind
	Fraction float64
	Data     []byte
}

// Progress reports the fraction of the expected length received so far.
func Progress(fraction float64) Event {
	return Event{Kind: KindProgress, Fraction: fraction}
}

// Response carries the complete body.
func Response(data []byte) Event {
	return Event{Kind: KindResponse, Data: data}
}

// Equal reports whether e and other are the same variant with the same payload.
func (e Event) Equal(other Event) bool {
	return e.Kind == other.Kind && e.Fraction == other.Fraction && bytes.Equal(e.Data, other.Data)
}

func (e Event) String() string {
	switch e.Kind {
	case KindProgress:
		return fmt.Sprintf("progress(%.4f)", e.Fraction)
	case KindResponse:
		return fmt.Sprintf("response(%d bytes)", len(e.Data))
	default:
		return e.Kind.String()
	}
}
