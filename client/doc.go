// Package client executes requests described by an [endpoint.Builder] on
// top of [net/http].
//
// # Building a Client
//
// Use [Build] to create a [Client] with functional options:
//
//	c, err := client.Build(
//		client.WithTimeout(10 * time.Second),
//		client.WithUserAgent("myapp/1.0"),
//	)
//
// The same options can come from the environment with [LoadConfig]:
//
//	cfg, err := client.LoadConfig("APP")
//	c, err := client.Build(cfg.Options()...)
//
// # Making Requests
//
// Describe the URL with an [endpoint.Builder] and pass per-request
// settings as [RequestOption] values:
//
//	b := endpoint.New(endpoint.Scheme("https"), endpoint.Host("api.example.com"), endpoint.Path("v1"), endpoint.Path("users"))
//	body, err := c.Fetch(ctx, b,
//		client.WithMethod(client.MethodPost),
//		client.WithHeaders(client.Authorization(token)),
//		client.WithJSONBody(newUser),
//	)
//
// [FetchJSON] decodes the body into a typed value:
//
//	user, err := client.FetchJSON[User](ctx, c, b)
//
// Every failure is an [*Error] matching one sentinel; [Kind] turns it into
// an [ErrorKind] for switches.
//
// # Downloading
//
// [Client.Download] returns a single-use sequence of progress events
// followed by the full body:
//
//	events, err := c.Download(ctx, b, client.WithChecksum(sha256.New(), expectedHex))
//	for ev, err := range events {
//		if err != nil {
//			return err
//		}
//		switch ev.Kind {
//		case download.KindProgress:
//			fmt.Printf("%.0f%%\n", ev.Fraction*100)
//		case download.KindResponse:
//			save(ev.Data)
//		}
//	}
//
// # Batches
//
// [Client.FetchAll] runs several fetches with bounded concurrency. For
// lower-level control see the
// [github.com/adamwoolhether/reqkit/client/batch] package.
package client
