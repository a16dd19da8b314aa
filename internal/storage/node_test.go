package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"github.com/dreamware/kvstore/internal/wire"
)

// fakeManager answers Get with a canned response, recording the last
// request it saw; every other method is unused by these tests.
type fakeManager struct {
	wire.ManagerClient
	getResp *wire.GetResponse
	getErr  error
	lastGet *wire.GetRequest
}

func (f *fakeManager) Get(ctx context.Context, in *wire.GetRequest, opts ...grpc.CallOption) (*wire.GetResponse, error) {
	f.lastGet = in
	return f.getResp, f.getErr
}

func newNode(t *testing.T, manager wire.ManagerClient) *Node {
	t.Helper()
	n, err := New(1, t.TempDir(), 5, manager, zerolog.Nop())
	require.NoError(t, err)
	return n
}

func TestPutGetDelRoundTrip(t *testing.T) {
	n := newNode(t, nil)

	require.NoError(t, n.MaPut("k", []byte("v1")))
	require.NoError(t, n.Commit("k", false))

	v, err := n.MaGet("k")
	require.NoError(t, err)
	require.Equal(t, []byte("v1"), v)

	require.NoError(t, n.MaDel("k"))
	require.NoError(t, n.Commit("k", true))

	_, err = n.MaGet("k")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMaPutAbortRollsBack(t *testing.T) {
	n := newNode(t, nil)

	require.NoError(t, n.MaPut("k", []byte("v1")))
	require.NoError(t, n.Commit("k", false))

	require.NoError(t, n.MaPut("k", []byte("v2")))
	require.NoError(t, n.Abort("k"))

	v, err := n.MaGet("k")
	require.NoError(t, err)
	require.Equal(t, []byte("v1"), v, "abort must restore the pre-prepare value")
}

func TestMaPutAbortOnNeverSeenKeyDropsIt(t *testing.T) {
	n := newNode(t, nil)

	require.NoError(t, n.MaPut("new", []byte("v")))
	require.NoError(t, n.Abort("new"))

	_, err := n.MaGet("new")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMaDelAbortRestoresKey(t *testing.T) {
	n := newNode(t, nil)

	require.NoError(t, n.MaPut("k", []byte("v1")))
	require.NoError(t, n.Commit("k", false))

	require.NoError(t, n.MaDel("k"))
	require.NoError(t, n.Abort("k"))

	v, err := n.MaGet("k")
	require.NoError(t, err)
	require.Equal(t, []byte("v1"), v)
}

func TestMaPutInvalidatesCache(t *testing.T) {
	n := newNode(t, nil)

	require.NoError(t, n.MaPut("k", []byte("v1")))
	require.NoError(t, n.Commit("k", false))
	_, err := n.MaGet("k") // populates the cache
	require.NoError(t, err)

	require.NoError(t, n.MaPut("k", []byte("v2")))
	_, cached := n.cache.Get("k")
	require.False(t, cached, "MaPut must invalidate the cache entry")
	require.NoError(t, n.Commit("k", false))
}

func TestMaGetBusyWhileWriterHeld(t *testing.T) {
	n := newNode(t, nil)
	require.NoError(t, n.MaPut("k", []byte("v1")))
	require.NoError(t, n.Commit("k", false))

	require.NoError(t, n.MaPut("k", []byte("v2"))) // holds the writer lock
	_, err := n.MaGet("k")
	require.ErrorIs(t, err, ErrBusy)
	require.NoError(t, n.Commit("k", false))
}

func TestGetDataFallsBackToManager(t *testing.T) {
	fm := &fakeManager{getResp: &wire.GetResponse{Status: wire.Ok(), Value: []byte("remote")}}
	n := newNode(t, fm)

	v, err := n.GetData(context.Background(), "unknown")
	require.NoError(t, err)
	require.Equal(t, []byte("remote"), v)
	require.Equal(t, int32(1), fm.lastGet.ServerID)

	// the value should now be registered locally.
	v2, err := n.MaGet("unknown")
	require.NoError(t, err)
	require.Equal(t, []byte("remote"), v2)
}

func TestGetDataNoAgreementIsNotFound(t *testing.T) {
	fm := &fakeManager{getResp: &wire.GetResponse{Status: wire.Fail("其他服务器对键值unknown 无法达成一致")}}
	n := newNode(t, fm)

	_, err := n.GetData(context.Background(), "unknown")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetDataTransportErrorWrapsErrTransport(t *testing.T) {
	fm := &fakeManager{getErr: errors.New("dial refused")}
	n := newNode(t, fm)

	_, err := n.GetData(context.Background(), "unknown")
	require.ErrorIs(t, err, ErrTransport)
}
