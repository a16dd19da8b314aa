// Package integration wires a real Manager and several real Storage
// nodes over loopback gRPC connections and drives them through a
// client, exercising the full stack end to end.
package integration

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"github.com/dreamware/kvstore/internal/client"
	"github.com/dreamware/kvstore/internal/manager"
	"github.com/dreamware/kvstore/internal/storage"
	"github.com/dreamware/kvstore/internal/wire"
)

// testCluster runs a Manager and N Storage nodes on loopback sockets,
// tearing everything down via t.Cleanup.
type testCluster struct {
	managerAddr string
}

func startManager(t *testing.T) *testCluster {
	t.Helper()

	mgr := manager.New(wire.DialStorage, zerolog.Nop())
	srv := grpc.NewServer()
	wire.RegisterManagerServer(srv, manager.NewServer(mgr))

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	return &testCluster{managerAddr: lis.Addr().String()}
}

func startStorageNode(t *testing.T, managerAddr string) *storage.Node {
	t.Helper()
	ctx := context.Background()

	managerClient, closeManager, err := wire.DialManager(managerAddr)
	require.NoError(t, err)
	t.Cleanup(func() { closeManager() })

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	host, port, err := net.SplitHostPort(lis.Addr().String())
	require.NoError(t, err)

	resp, err := managerClient.Online(ctx, &wire.OnlineRequest{Host: host, Port: port})
	require.NoError(t, err)
	require.True(t, resp.Errno)

	node, err := storage.New(resp.ServerID, t.TempDir(), 5, managerClient, zerolog.Nop())
	require.NoError(t, err)

	srv := grpc.NewServer()
	wire.RegisterStorageServer(srv, storage.NewServer(node))
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)
	return node
}

func newTestClient(t *testing.T, managerAddr string) *client.Client {
	t.Helper()
	ctx := context.Background()

	managerClient, closeManager, err := wire.DialManager(managerAddr)
	require.NoError(t, err)
	t.Cleanup(func() { closeManager() })

	c, err := client.Connect(ctx, managerClient, wire.DialStorage, zerolog.Nop())
	require.NoError(t, err)
	return c
}

func TestSingleNodePutGetDel(t *testing.T) {
	tc := startManager(t)
	startStorageNode(t, tc.managerAddr)

	c := newTestClient(t, tc.managerAddr)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "testkey", []byte("testvalue")))

	v, err := c.Get(ctx, "testkey")
	require.NoError(t, err)
	require.Equal(t, []byte("testvalue"), v)

	require.NoError(t, c.Del(ctx, "testkey"))

	_, err = c.Get(ctx, "testkey")
	require.Error(t, err)
}

func TestPutReplicatesToEveryNode(t *testing.T) {
	tc := startManager(t)
	var nodes []*storage.Node
	for i := 0; i < 3; i++ {
		nodes = append(nodes, startStorageNode(t, tc.managerAddr))
	}

	c := newTestClient(t, tc.managerAddr)
	ctx := context.Background()
	require.NoError(t, c.Put(ctx, "k", []byte("v")))

	// Put returns only after the Manager has sent Commit to every
	// prepared node, so each node now holds the value locally.
	for _, n := range nodes {
		v, err := n.MaGet("k")
		require.NoError(t, err)
		require.Equal(t, []byte("v"), v)
	}

	// the client's own node serves the read from its local copy.
	require.Eventually(t, func() bool {
		v, err := c.Get(ctx, "k")
		return err == nil && string(v) == "v"
	}, 2*time.Second, 20*time.Millisecond)
}

func TestTwoNodeClusterRoundTrip(t *testing.T) {
	tc := startManager(t)
	startStorageNode(t, tc.managerAddr)
	startStorageNode(t, tc.managerAddr)

	c := newTestClient(t, tc.managerAddr)
	ctx := context.Background()
	require.NoError(t, c.Put(ctx, "k", []byte("v")))

	v, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("v"), v)
}
