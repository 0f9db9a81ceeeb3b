// Package download turns a response body into a single-use sequence of
// progress and response events.
//
// # Streaming
//
// [Stream] reads the body in chunks, accumulating it in memory. When the
// content length is known, each chunk yields a [Progress] event; once the
// body is exhausted a single [Response] event carries every byte read:
//
//	events, err := download.Stream(ctx, resp.Body, resp.ContentLength, logger)
//	for ev, err := range events {
//		if err != nil {
//			return err
//		}
//		switch ev.Kind {
//		case download.KindProgress:
//			fmt.Printf("%.0f%%\n", ev.Fraction*100)
//		case download.KindResponse:
//			return os.WriteFile(path, ev.Data, 0o644)
//		}
//	}
//
// Most callers should use [github.com/adamwoolhether/reqkit/client.Client.Download],
// which issues the request and re-exports the options as client.With* functions.
package download
