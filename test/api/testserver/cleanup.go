//go:build api

package testserver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// CleanupBetweenTests empties every service database and Redis. Tests call
// it first so that each starts from an empty deployment; indexes survive.
func (ts *TestServer) CleanupBetweenTests(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return ts.MongoDB.CleanupCollections(ctx) })
	// Cached users and progress sequences.
	g.Go(func() error { return ts.Redis.FlushDB(ctx) })
	require.NoError(t, g.Wait(), "reset deployment")
}
