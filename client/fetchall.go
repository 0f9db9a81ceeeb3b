package client

import (
	"context"
	"fmt"

	"github.com/adamwoolhether/reqkit/client/batch"
	"github.com/adamwoolhether/reqkit/endpoint"
)

// FetchAll runs [Client.Fetch] for every builder with at most limit
// requests in flight (unlimited if limit <= 0). Bodies are returned in
// builder order; a failed fetch leaves a nil entry and its error, tagged
// with the builder index, is joined into the returned error.
func (c *Client) FetchAll(ctx context.Context, limit int, builders []*endpoint.Builder, opts ...RequestOption) ([][]byte, error) {
	settings, err := newRequestOpts(opts)
	if err != nil {
		return nil, err
	}
	if err := settings.forFetch(); err != nil {
		return nil, err
	}

	bodies := make([][]byte, len(builders))
	g := batch.New(limit)

	for i, b := range builders {
		g.Go(ctx, func(ctx context.Context) error {
			data, err := c.fetch(ctx, b, settings)
			if err != nil {
				return fmt.Errorf("fetch[%d] %s: %w", i, b, err)
			}

			bodies[i] = data

			return nil
		})
	}

	return bodies, g.Wait()
}
