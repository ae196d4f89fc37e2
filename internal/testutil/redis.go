package testutil

import (
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/ctclostio/MojaveAdventure/internal/storage/redis"
)

// NewRedis starts an in-memory redis server and returns a client for it.
// Both are closed when the test ends.
func NewRedis(t *testing.T) (redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := redis.NewClient(mr.Addr(), nil)
	if err != nil {
		t.Fatalf("connecting to miniredis: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}
