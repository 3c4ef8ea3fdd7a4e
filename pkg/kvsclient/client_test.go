package kvsclient

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ignitekv/kvs/internal/protocol"
)

// fakeServer accepts one connection, reads one framed command, and writes
// back a canned response. Good enough to exercise Client without pulling in
// the full internal/server + engine stack.
func fakeServer(t *testing.T, resp protocol.Response) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { listener.Close() })

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		var cmd protocol.Command
		if err := protocol.ReadFrame(conn, &cmd); err != nil {
			return
		}
		protocol.WriteFrame(conn, resp)
	}()

	return listener.Addr().String()
}

func TestClientSendRoundTrip(t *testing.T) {
	addr := fakeServer(t, protocol.Ok("1"))

	client, err := Connect(addr)
	require.NoError(t, err)
	defer client.Close()

	resp, err := client.Get("a")
	require.NoError(t, err)
	require.Equal(t, protocol.Ok("1"), resp)
}

func TestClientConvenienceWrappers(t *testing.T) {
	addr := fakeServer(t, protocol.Failure("Key not found"))

	client, err := Connect(addr)
	require.NoError(t, err)
	defer client.Close()

	resp, err := client.Remove("missing")
	require.NoError(t, err)
	require.False(t, resp.Success)
	require.Equal(t, "Key not found", resp.Message)
}

func TestConnectFailsOnUnreachableAddr(t *testing.T) {
	_, err := Connect("127.0.0.1:1")
	require.Error(t, err)
}
