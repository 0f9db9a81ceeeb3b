// Package batch runs independent units of work concurrently under an
// optional concurrency limit and collects their errors.
//
//	g := batch.New(4)
//	for _, b := range builders {
//		g.Go(ctx, func(ctx context.Context) error { ... })
//	}
//	err := g.Wait() // all errors, joined
package batch
