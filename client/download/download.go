package download

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"sync/atomic"
)

// Stream returns a single-use sequence of events read from body.
//
// When contentLength is positive, every non-empty read yields a [Progress]
// event with the received fraction; otherwise no progress is reported.
// Exhausting body yields one [Response] event with all bytes in order. A
// read failure ends the sequence with that error and no Response. Reads
// happen only as the consumer pulls events, and stopping early stops
// reading; closing body stays with the caller.
//
// Option errors and a nil body are reported before the sequence is built.
func Stream(ctx context.Context, body io.Reader, contentLength int64, logger *slog.Logger, optFns ...Option) (iter.Seq2[Event, error], error) {
	if body == nil {
		return nil, ErrStreamingUnsupported
	}

	opts, err := newOptions(optFns)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	var consumed atomic.Bool

	seq := func(yield func(Event, error) bool) {
		if consumed.Swap(true) {
			yield(Event{}, ErrConsumed)
			return
		}

		var buf bytes.Buffer
		if contentLength > 0 {
			buf.Grow(int(min(contentLength, maxPrealloc)))
		}

		var writer io.Writer = &buf
		if opts.checksum != nil {
			writer = io.MultiWriter(writer, opts.checksum)
		}

		var pl *progressLog
		if opts.progressLog {
			pl = newProgressLog(logger, contentLength)
		}

		r := &contextReader{ctx: ctx, r: body}
		chunk := make([]byte, opts.chunkSize)
		var received int64

		for {
			n, err := r.Read(chunk)
			if n > 0 {
				// bytes.Buffer and hash.Hash writes never fail.
				_, _ = writer.Write(chunk[:n])
				received += int64(n)

				if pl != nil {
					pl.update(ctx, received)
				}

				if contentLength > 0 {
					if !yield(Progress(fraction(received, contentLength)), nil) {
						return
					}
				}
			}

			if errors.Is(err, io.EOF) {
				break
			}

			if err != nil {
				if errors.Is(err, context.Canceled) {
					err = fmt.Errorf("%w: %w", ErrDownloadCancelled, err)
				} else {
					err = fmt.Errorf("reading body: %w", err)
				}

				yield(Event{}, err)
				return
			}
		}

		if err := opts.checksum.Verify(); err != nil {
			yield(Event{}, err)
			return
		}

		if pl != nil {
			pl.emit(ctx, "download complete", received)
		}

		yield(Response(buf.Bytes()), nil)
	}

	return seq, nil
}

// contextReader stops reading once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr *contextReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}

	return cr.r.Read(p)
}
