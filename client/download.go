package client

import (
	"context"
	"iter"
	"sync/atomic"

	"github.com/adamwoolhether/reqkit/client/download"
	"github.com/adamwoolhether/reqkit/endpoint"
)

// Download returns a single-use sequence of download events for the
// resource described by b.
//
// The URL, request options and download options are checked up front:
// failures are returned before the sequence exists, [ErrInvalidURL] for a
// builder that does not resolve. The request itself is sent when iteration
// starts, and its response is classified as in [Client.Fetch]; a non-2xx
// status ends the sequence with that error.
//
// With a known Content-Length every chunk yields a progress event, and the
// body is delivered in one final response event. A read failure ends the
// sequence with that error instead. Breaking out of the loop closes the
// connection. Ranging over the sequence a second time yields a single
// [ErrGeneric] and sends nothing; call Download again to retry.
//
//	events, err := c.Download(ctx, b)
//	if err != nil {
//		return err
//	}
//	for ev, err := range events {
//		...
//	}
func (c *Client) Download(ctx context.Context, b *endpoint.Builder, opts ...RequestOption) (iter.Seq2[DownloadEvent, error], error) {
	settings, err := newRequestOpts(opts)
	if err != nil {
		return nil, err
	}

	if err := download.ValidateOptions(settings.download...); err != nil {
		return nil, &Error{Err: ErrGeneric, Detail: err.Error(), Cause: err}
	}

	req, err := newRequest(ctx, b, settings)
	if err != nil {
		return nil, err
	}

	var consumed atomic.Bool

	seq := func(yield func(DownloadEvent, error) bool) {
		if consumed.Swap(true) {
			yield(DownloadEvent{}, &Error{Err: ErrGeneric, Detail: download.ErrConsumed.Error(), Cause: download.ErrConsumed})
			return
		}

		req, span := c.startSpan(req, "client.download")

		var (
			code    int
			spanErr error
		)
		defer func() { endSpan(span, code, spanErr) }()

		resp, err := c.roundTrip(req)
		if err != nil {
			code, spanErr = statusCode(err), err
			yield(DownloadEvent{}, err)
			return
		}
		defer c.closeBody(resp.Body, false)
		code = resp.StatusCode

		events, err := download.Stream(req.Context(), resp.Body, resp.ContentLength, c.logger, settings.download...)
		if err != nil {
			spanErr = &Error{Err: ErrGeneric, Detail: err.Error(), StatusCode: resp.StatusCode, Cause: err}
			yield(DownloadEvent{}, spanErr)
			return
		}

		for ev, err := range events {
			if err != nil {
				spanErr = err
				yield(DownloadEvent{}, err)
				return
			}

			if ev.Kind == download.KindResponse {
				c.metrics.addDownloaded(len(ev.Data))
			}

			if !yield(ev, nil) {
				return
			}
		}
	}

	return seq, nil
}
