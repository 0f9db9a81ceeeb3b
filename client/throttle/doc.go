// Package throttle limits the rate of outbound requests with a token
// bucket from [golang.org/x/time/rate].
//
// [NewRoundTripper] wraps a transport; [client.WithThrottle] installs it
// on a client. A request that finds the bucket empty waits for a token
// or for its context to end, whichever comes first.
//
// [client.WithThrottle]: https://pkg.go.dev/github.com/adamwoolhether/reqkit/client#WithThrottle
package throttle
