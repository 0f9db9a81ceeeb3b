package client

import (
	"hash"

	"github.com/adamwoolhether/reqkit/client/download"
)

// ————————————————————————————————————————————————————————————————————
// Type aliases – re-export user-facing types from [download].
// ————————————————————————————————————————————————————————————————————

type (
	// DownloadEvent is one step of a download: progress or the full response.
	DownloadEvent = download.Event

	// DownloadError wraps a sentinel error with additional detail.
	DownloadError = download.Error
)

// ————————————————————————————————————————————————————————————————————
// Sentinel errors
// ————————————————————————————————————————————————————————————————————

var (
	// ErrChecksumMismatch indicates the body checksum did not match the expected value.
	ErrChecksumMismatch = download.ErrChecksumMismatch

	// ErrDownloadCancelled indicates the download was cancelled via context.
	ErrDownloadCancelled = download.ErrDownloadCancelled
)

// ————————————————————————————————————————————————————————————————————
// Download option forwarding functions
//
// Only [Client.Download] reads these; Fetch, FetchJSON and FetchAll
// reject them with [ErrGeneric].
// ————————————————————————————————————————————————————————————————————

func withDownload(opt download.Option) RequestOption {
	return func(opts *requestOpts) error {
		opts.download = append(opts.download, opt)
		return nil
	}
}

// WithChecksum verifies the downloaded body before the response event.
// h is a [hash.Hash] instance (e.g. sha256.New()), and expected is the
// hex-encoded expected checksum string. Only [Client.Download] reads it.
func WithChecksum(h hash.Hash, expected string) RequestOption {
	return withDownload(download.WithChecksum(h, expected))
}

// WithProgressLog enables periodic download progress logging. Only
// [Client.Download] reads it.
func WithProgressLog() RequestOption { return withDownload(download.WithProgressLog()) }

// WithChunkSize sets the download read size, bounding the data between
// two progress events. Only [Client.Download] reads it.
func WithChunkSize(n int) RequestOption { return withDownload(download.WithChunkSize(n)) }
