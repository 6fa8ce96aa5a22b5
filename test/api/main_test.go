//go:build api

// Package api drives the Team, Project and Task services end to end. Each
// service runs behind its own httptest server, the three call each other
// over HTTP, and all of them share one MongoDB and one Redis started with
// testcontainers.
//
//	go test -tags=api ./test/api/...
package api

import (
	"context"
	"fmt"
	"os"
	"testing"

	"teamtrack/internal/validator"
	"teamtrack/test/api/testserver"
)

var testServer *testserver.TestServer

func TestMain(m *testing.M) {
	os.Exit(run(m))
}

// run keeps deferred cleanup ahead of os.Exit.
func run(m *testing.M) int {
	validator.RegisterCustomValidators()

	ctx := context.Background()
	ts, err := testserver.New(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "start deployment: %v\n", err)
		return 1
	}
	defer ts.Cleanup(ctx)

	testServer = ts
	return m.Run()
}
