// Package natstest runs an in-process JetStream server for tests.
package natstest

import (
	"testing"

	"github.com/nats-io/nats-server/v2/server"
	natsserver "github.com/nats-io/nats-server/v2/test"
	natspkg "github.com/piresc/fleetwatch/internal/pkg/nats"
	"github.com/stretchr/testify/require"
)

// RunJetStream starts a JetStream-enabled server on a random port and returns it with a
// connected client. Both are shut down when the test ends.
func RunJetStream(t *testing.T) (*server.Server, *natspkg.Client) {
	t.Helper()

	opts := natsserver.DefaultTestOptions
	opts.Port = -1
	opts.JetStream = true
	opts.StoreDir = t.TempDir()
	srv := natsserver.RunServer(&opts)

	client, err := natspkg.NewClient(srv.ClientURL())
	require.NoError(t, err)

	t.Cleanup(func() {
		client.GetConn().Close()
		srv.Shutdown()
	})
	return srv, client
}

// RunJetStreamWithStreams is RunJetStream with the default fleet streams created
func RunJetStreamWithStreams(t *testing.T) (*server.Server, *natspkg.Client) {
	t.Helper()

	srv, client := RunJetStream(t)
	require.NoError(t, client.EnsureStreams(natspkg.DefaultStreamConfigs()))
	return srv, client
}
