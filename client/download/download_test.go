package download_test

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"iter"
	"log/slog"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/adamwoolhether/reqkit/client/download"
	"github.com/google/go-cmp/cmp"
)

func collect(t *testing.T, stream iter.Seq2[download.Event, error]) ([]download.Event, error) {
	t.Helper()

	var events []download.Event
	for ev, err := range stream {
		if err != nil {
			return events, err
		}
		events = append(events, ev)
	}

	return events, nil
}

func TestStream_KnownLength(t *testing.T) {
	body := []byte("0123456789abcdef") // 16 bytes, 4 chunks of 4

	seq, err := download.Stream(t.Context(), bytes.NewReader(body), int64(len(body)), slog.Default(), download.WithChunkSize(4))
	if err != nil {
		t.Fatalf("creating stream: %v", err)
	}

	events, err := collect(t, seq)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	exp := []download.Event{
		download.Progress(0.25),
		download.Progress(0.5),
		download.Progress(0.75),
		download.Progress(1),
		download.Response(body),
	}

	if diff := cmp.Diff(exp, events); diff != "" {
		t.Errorf("unexpected events (-exp +got):\n%s", diff)
	}
}

func TestStream_ProgressStrictlyIncreasing(t *testing.T) {
	body := bytes.Repeat([]byte("abcdefghij"), 1000) // 10KB

	seq, err := download.Stream(t.Context(), iotest.HalfReader(bytes.NewReader(body)), int64(len(body)), nil, download.WithChunkSize(333))
	if err != nil {
		t.Fatalf("creating stream: %v", err)
	}

	events, err := collect(t, seq)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(events) < 2 {
		t.Fatalf("expected progress and response events, got %d", len(events))
	}

	last := 0.0
	for i, ev := range events[:len(events)-1] {
		if ev.Kind != download.KindProgress {
			t.Fatalf("event %d: expected progress, got %v", i, ev)
		}
		if ev.Fraction <= last {
			t.Errorf("event %d: fraction %v not greater than previous %v", i, ev.Fraction, last)
		}
		last = ev.Fraction
	}

	if last != 1 {
		t.Errorf("expected final progress of 1, got %v", last)
	}

	final := events[len(events)-1]
	if final.Kind != download.KindResponse {
		t.Fatalf("expected terminal response, got %v", final)
	}
	if !bytes.Equal(final.Data, body) {
		t.Errorf("response mismatch; got %d bytes, want %d", len(final.Data), len(body))
	}
}

func TestStream_UnknownLength(t *testing.T) {
	body := []byte("no content length")

	for _, length := range []int64{-1, 0} {
		seq, err := download.Stream(t.Context(), iotest.OneByteReader(bytes.NewReader(body)), length, nil)
		if err != nil {
			t.Fatalf("creating stream: %v", err)
		}

		events, err := collect(t, seq)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}

		exp := []download.Event{download.Response(body)}
		if diff := cmp.Diff(exp, events); diff != "" {
			t.Errorf("length %d: unexpected events (-exp +got):\n%s", length, diff)
		}
	}
}

func TestStream_OverlongBodyClamped(t *testing.T) {
	body := []byte("12345678")

	seq, err := download.Stream(t.Context(), bytes.NewReader(body), 4, nil, download.WithChunkSize(4))
	if err != nil {
		t.Fatalf("creating stream: %v", err)
	}

	events, err := collect(t, seq)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	exp := []download.Event{
		download.Progress(1),
		download.Progress(1),
		download.Response(body),
	}
	if diff := cmp.Diff(exp, events); diff != "" {
		t.Errorf("unexpected events (-exp +got):\n%s", diff)
	}
}

func TestStream_MidStreamFailure(t *testing.T) {
	boom := errors.New("connection reset")
	body := io.MultiReader(strings.NewReader("partial"), iotest.ErrReader(boom))

	seq, err := download.Stream(t.Context(), body, 100, nil)
	if err != nil {
		t.Fatalf("creating stream: %v", err)
	}

	events, err := collect(t, seq)
	if !errors.Is(err, boom) {
		t.Fatalf("expected %v, got: %v", boom, err)
	}

	for _, ev := range events {
		if ev.Kind == download.KindResponse {
			t.Errorf("expected no response event after failure, got %v", ev)
		}
	}

	exp := []download.Event{download.Progress(0.07)}
	if diff := cmp.Diff(exp, events); diff != "" {
		t.Errorf("unexpected events (-exp +got):\n%s", diff)
	}
}

func TestStream_SingleUse(t *testing.T) {
	seq, err := download.Stream(t.Context(), strings.NewReader("once"), -1, nil)
	if err != nil {
		t.Fatalf("creating stream: %v", err)
	}

	if _, err := collect(t, seq); err != nil {
		t.Fatalf("first consumption: expected no error, got: %v", err)
	}

	events, err := collect(t, seq)
	if !errors.Is(err, download.ErrConsumed) {
		t.Errorf("second consumption: expected ErrConsumed, got: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("second consumption: expected no events, got %v", events)
	}
}

type countingReader struct {
	r     io.Reader
	reads int
}

func (c *countingReader) Read(p []byte) (int, error) {
	c.reads++
	return c.r.Read(p)
}

func TestStream_EarlyBreakStopsReading(t *testing.T) {
	body := bytes.Repeat([]byte("x"), 100)
	cr := &countingReader{r: bytes.NewReader(body)}

	seq, err := download.Stream(t.Context(), cr, int64(len(body)), nil, download.WithChunkSize(10))
	if err != nil {
		t.Fatalf("creating stream: %v", err)
	}

	var seen int
	for ev, err := range seq {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ev.Kind != download.KindProgress {
			t.Fatalf("expected progress, got %v", ev)
		}
		seen++
		if seen == 2 {
			break
		}
	}

	if cr.reads != 2 {
		t.Errorf("expected reading to stop after 2 reads, got %d", cr.reads)
	}
}

func TestStream_Checksum(t *testing.T) {
	body := []byte("checksum me")
	sum := sha256.Sum256(body)
	good := hex.EncodeToString(sum[:])

	testCases := map[string]struct {
		expected string
		err      error
	}{
		"match":          {expected: good},
		"matchUppercase": {expected: strings.ToUpper(good)},
		"mismatch":       {expected: strings.Repeat("0", 64), err: download.ErrChecksumMismatch},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			seq, err := download.Stream(t.Context(), bytes.NewReader(body), -1, nil, download.WithChecksum(sha256.New(), tc.expected))
			if err != nil {
				t.Fatalf("creating stream: %v", err)
			}

			events, err := collect(t, seq)
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Fatalf("expected %v, got: %v", tc.err, err)
				}

				var dlErr *download.Error
				if !errors.As(err, &dlErr) || dlErr.Detail == "" {
					t.Errorf("expected *download.Error with detail, got: %v", err)
				}

				if len(events) != 0 {
					t.Errorf("expected no response on mismatch, got %v", events)
				}
				return
			}

			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if diff := cmp.Diff([]download.Event{download.Response(body)}, events); diff != "" {
				t.Errorf("unexpected events (-exp +got):\n%s", diff)
			}
		})
	}
}

func TestStream_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	seq, err := download.Stream(ctx, strings.NewReader("never read"), 10, nil)
	if err != nil {
		t.Fatalf("creating stream: %v", err)
	}

	_, err = collect(t, seq)
	if !errors.Is(err, download.ErrDownloadCancelled) {
		t.Errorf("expected ErrDownloadCancelled, got: %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled in chain, got: %v", err)
	}
}

func TestStream_SetupErrors(t *testing.T) {
	testCases := map[string]struct {
		body io.Reader
		opts []download.Option
		err  error
	}{
		"nilBody": {
			body: nil,
			err:  download.ErrStreamingUnsupported,
		},
		"zeroChunkSize": {
			body: strings.NewReader("x"),
			opts: []download.Option{download.WithChunkSize(0)},
			err:  download.ErrInvalidChunkSize,
		},
		"nilHash": {
			body: strings.NewReader("x"),
			opts: []download.Option{download.WithChecksum(nil, "abc")},
		},
		"emptyChecksum": {
			body: strings.NewReader("x"),
			opts: []download.Option{download.WithChecksum(sha256.New(), "")},
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			seq, err := download.Stream(t.Context(), tc.body, -1, nil, tc.opts...)
			if err == nil {
				t.Fatal("expected setup error, got nil")
			}
			if seq != nil {
				t.Error("expected no sequence on setup error")
			}
			if tc.err != nil && !errors.Is(err, tc.err) {
				t.Errorf("expected %v, got: %v", tc.err, err)
			}
		})
	}
}

func TestStream_ProgressLog(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	body := bytes.Repeat([]byte("z"), 2048)
	seq, err := download.Stream(t.Context(), bytes.NewReader(body), int64(len(body)), logger, download.WithProgressLog())
	if err != nil {
		t.Fatalf("creating stream: %v", err)
	}

	if _, err := collect(t, seq); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	out := logs.String()
	for _, want := range []string{"downloading", "download complete", "transferred=2048", "progress=100.0%"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected log output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestEvent_Equal(t *testing.T) {
	if !download.Response([]byte("a")).Equal(download.Response([]byte("a"))) {
		t.Error("expected equal responses")
	}
	if download.Response([]byte("a")).Equal(download.Response([]byte("b"))) {
		t.Error("expected different responses")
	}
	if download.Progress(0.5).Equal(download.Response(nil)) {
		t.Error("expected different kinds to differ")
	}
	if got := download.Progress(0.5).String(); got != "progress(0.5000)" {
		t.Errorf("unexpected string %q", got)
	}
}
