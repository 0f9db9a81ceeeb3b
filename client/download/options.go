package download

import (
	"errors"
	"fmt"
	"hash"
)

// Option defines optional settings for streaming a download.
//
// WithChecksum verifies the complete body against a hex-encoded digest
// before the [Response] event is emitted.
//
// WithProgressLog enables periodic progress logging via the logger supplied
// to Stream.
//
// WithChunkSize sets the read buffer size, which bounds how much data
// arrives between two [Progress] events.
type Option func(*options) error

type options struct {
	checksum    *checksumVerifier
	progressLog bool
	chunkSize   int
}

func newOptions(optFns []Option) (options, error) {
	opts := options{chunkSize: defaultChunkSize}
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return options{}, fmt.Errorf("applying option: %w", err)
		}
	}

	return opts, nil
}

// ValidateOptions reports the first invalid option without streaming
// anything, so callers can fail before issuing a request.
func ValidateOptions(optFns ...Option) error {
	_, err := newOptions(optFns)
	return err
}

func WithChecksum(h hash.Hash, expected string) Option {
	return func(opts *options) error {
		if h == nil {
			return errors.New("hash must not be nil")
		}

		if expected == "" {
			return errors.New("expected checksum must not be empty")
		}

		opts.checksum = &checksumVerifier{hash: h, expected: expected}
		return nil
	}
}

func WithProgressLog() Option {
	return func(opts *options) error {
		opts.progressLog = true
		return nil
	}
}

func WithChunkSize(n int) Option {
	return func(opts *options) error {
		if n <= 0 {
			return ErrInvalidChunkSize
		}

		opts.chunkSize = n
		return nil
	}
}
