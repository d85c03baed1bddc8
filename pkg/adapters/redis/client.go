package redis

import (
	"context"
	"fmt"

	backend "github.com/redis/go-redis/v9"
)

// Connect parses a redis address or URL and checks the server is reachable.
// A plain host:port is accepted as well as redis:// URLs.
func Connect(ctx context.Context, addr string) (*backend.Client, error) {
	opts, err := backend.ParseURL(addr)
	if err != nil {
		opts = &backend.Options{Addr: addr}
	}
	client := backend.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis unreachable at %s: %w", addr, err)
	}
	return client, nil
}
