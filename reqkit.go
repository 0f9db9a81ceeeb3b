// Package reqkit exposes the client builder.
//
// Requests are described with [github.com/adamwoolhether/reqkit/endpoint]
// and executed with [github.com/adamwoolhether/reqkit/client].
package reqkit

import (
	"fmt"

	"github.com/adamwoolhether/reqkit/client"
)

// NewClient instantiates a new *client.Client with the provided options.
// If not specified, the default http.Client and http.Transport are used.
func NewClient(opts ...client.Option) (*client.Client, error) {
	return client.Build(opts...)
}

// NewClientFromEnv loads [client.Config] from environment variables named
// with prefix, then applies opts on top.
func NewClientFromEnv(prefix string, opts ...client.Option) (*client.Client, error) {
	cfg, err := client.LoadConfig(prefix)
	if err != nil {
		return nil, err
	}

	c, err := client.Build(append(cfg.Options(), opts...)...)
	if err != nil {
		return nil, fmt.Errorf("building client from %s env: %w", prefix, err)
	}

	return c, nil
}
