package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGobCodecRoundTrip(t *testing.T) {
	c := gobCodec{}

	in := &PutRequest{ServerID: 7, Key: "k", Value: []byte("v")}
	data, err := c.Marshal(in)
	require.NoError(t, err)

	out := new(PutRequest)
	require.NoError(t, c.Unmarshal(data, out))
	require.Equal(t, in, out)
}

func TestGobCodecRoundTripEmptyMessage(t *testing.T) {
	c := gobCodec{}

	data, err := c.Marshal(&LiveRequest{})
	require.NoError(t, err)

	out := new(LiveRequest)
	require.NoError(t, c.Unmarshal(data, out))
}

func TestGobCodecName(t *testing.T) {
	require.Equal(t, "gob", gobCodec{}.Name())
}
