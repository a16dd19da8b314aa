package manager

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"github.com/dreamware/kvstore/internal/storage"
	"github.com/dreamware/kvstore/internal/wire"
)

// inprocStorage wraps a storage.Server so tests can exercise the
// Manager's coordination logic without a real network listener.
type inprocStorage struct {
	srv *storage.Server
}

func newInprocStorage(t *testing.T) *inprocStorage {
	t.Helper()
	node, err := storage.New(1, t.TempDir(), 5, nil, zerolog.Nop())
	require.NoError(t, err)
	return &inprocStorage{srv: storage.NewServer(node)}
}

func (s *inprocStorage) GetData(ctx context.Context, in *wire.GetDataRequest, _ ...grpc.CallOption) (*wire.GetDataResponse, error) {
	return s.srv.GetData(ctx, in)
}
func (s *inprocStorage) PutData(ctx context.Context, in *wire.PutDataRequest, _ ...grpc.CallOption) (*wire.PutDataResponse, error) {
	return s.srv.PutData(ctx, in)
}
func (s *inprocStorage) DelData(ctx context.Context, in *wire.DelDataRequest, _ ...grpc.CallOption) (*wire.DelDataResponse, error) {
	return s.srv.DelData(ctx, in)
}
func (s *inprocStorage) MaGet(ctx context.Context, in *wire.MaGetRequest, _ ...grpc.CallOption) (*wire.MaGetResponse, error) {
	return s.srv.MaGet(ctx, in)
}
func (s *inprocStorage) MaPut(ctx context.Context, in *wire.MaPutRequest, _ ...grpc.CallOption) (*wire.MaPutResponse, error) {
	return s.srv.MaPut(ctx, in)
}
func (s *inprocStorage) MaDel(ctx context.Context, in *wire.MaDelRequest, _ ...grpc.CallOption) (*wire.MaDelResponse, error) {
	return s.srv.MaDel(ctx, in)
}
func (s *inprocStorage) Commit(ctx context.Context, in *wire.CommitRequest, _ ...grpc.CallOption) (*wire.CommitResponse, error) {
	return s.srv.Commit(ctx, in)
}
func (s *inprocStorage) Abort(ctx context.Context, in *wire.AbortRequest, _ ...grpc.CallOption) (*wire.AbortResponse, error) {
	return s.srv.Abort(ctx, in)
}
func (s *inprocStorage) Live(ctx context.Context, in *wire.LiveRequest, _ ...grpc.CallOption) (*wire.LiveResponse, error) {
	return s.srv.Live(ctx, in)
}

// newTestManager wires a Manager whose dialer hands back in-memory
// storage stubs keyed by endpoint string, so Online("h","p") where
// p uniquely identifies a backing inprocStorage works end to end.
func newTestManager(t *testing.T, backing map[string]*inprocStorage) *Manager {
	t.Helper()
	dial := func(ep string) (wire.StorageClient, func() error, error) {
		b, ok := backing[ep]
		require.True(t, ok, "no backing storage for endpoint %s", ep)
		return b, func() error { return nil }, nil
	}
	return New(dial, zerolog.Nop())
}

func TestOnlineOffline(t *testing.T) {
	m := newTestManager(t, nil)
	sid := m.Online("localhost", "50051")
	require.True(t, m.authorized(sid))

	m.Offline(sid)
	require.False(t, m.authorized(sid))
}

func TestAuthorizationRejectsUnknownServer(t *testing.T) {
	m := newTestManager(t, nil)
	_, err := m.Get(context.Background(), "k", 999)
	require.ErrorIs(t, err, ErrUnauthorized)

	err = m.Put(context.Background(), "k", []byte("v"), 999)
	require.ErrorIs(t, err, ErrUnauthorized)

	err = m.Del(context.Background(), "k", 999)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestPutCommitsAcrossAllReplicas(t *testing.T) {
	a, b := &inprocStorage{}, &inprocStorage{}
	nodeA, err := storage.New(1, t.TempDir(), 5, nil, zerolog.Nop())
	require.NoError(t, err)
	nodeB, err := storage.New(2, t.TempDir(), 5, nil, zerolog.Nop())
	require.NoError(t, err)
	a.srv, b.srv = storage.NewServer(nodeA), storage.NewServer(nodeB)

	m := newTestManager(t, map[string]*inprocStorage{"a:1": a, "b:2": b})
	sidA := m.Online("a", "1")
	_ = m.Online("b", "2")

	require.NoError(t, m.Put(context.Background(), "k", []byte("v"), sidA))

	va, err := nodeA.MaGet("k")
	require.NoError(t, err)
	require.Equal(t, []byte("v"), va)

	vb, err := nodeB.MaGet("k")
	require.NoError(t, err)
	require.Equal(t, []byte("v"), vb)
}

func TestQuorumReadMajority(t *testing.T) {
	m := newTestManager(t, nil)
	caller := m.Online("caller", "0")

	// three other replicas hold "x","x","y" for key k.
	for i, v := range []string{"x", "x", "y"} {
		node, err := storage.New(int32(10+i), t.TempDir(), 5, nil, zerolog.Nop())
		require.NoError(t, err)
		require.NoError(t, node.MaPut("k", []byte(v)))
		require.NoError(t, node.Commit("k", false))

		ep := endpointKey(i)
		m.registryMu.Lock()
		m.servers[int32(20+i)] = endpoint{host: ep, port: "0"}
		m.endpoints[endpoint{host: ep, port: "0"}.String()] = struct{}{}
		m.registryMu.Unlock()
		m.connsMu.Lock()
		m.conns[endpoint{host: ep, port: "0"}.String()] = &inprocStorage{srv: storage.NewServer(node)}
		m.connsMu.Unlock()
	}

	got, err := m.Get(context.Background(), "k", caller)
	require.NoError(t, err)
	require.Equal(t, []byte("x"), got)
}

func TestQuorumReadNoAgreement(t *testing.T) {
	m := newTestManager(t, nil)
	caller := m.Online("caller", "0")

	for i, v := range []string{"x", "y", "z"} {
		node, err := storage.New(int32(10+i), t.TempDir(), 5, nil, zerolog.Nop())
		require.NoError(t, err)
		require.NoError(t, node.MaPut("k", []byte(v)))
		require.NoError(t, node.Commit("k", false))

		ep := endpointKey(i)
		m.registryMu.Lock()
		m.servers[int32(20+i)] = endpoint{host: ep, port: "0"}
		m.endpoints[endpoint{host: ep, port: "0"}.String()] = struct{}{}
		m.registryMu.Unlock()
		m.connsMu.Lock()
		m.conns[endpoint{host: ep, port: "0"}.String()] = &inprocStorage{srv: storage.NewServer(node)}
		m.connsMu.Unlock()
	}

	_, err := m.Get(context.Background(), "k", caller)
	var noAgreement ErrNoAgreement
	require.ErrorAs(t, err, &noAgreement)
}

func endpointKey(i int) string {
	return [...]string{"r0", "r1", "r2"}[i]
}

func TestChangeServerRejectsUnknownEndpoint(t *testing.T) {
	m := newTestManager(t, nil)
	m.Online("a", "1")
	clientID, _, _, err := m.Connect()
	require.NoError(t, err)

	err = m.ChangeServer(clientID, "bogus", "0")
	require.ErrorIs(t, err, ErrNoSuchServer)
}
