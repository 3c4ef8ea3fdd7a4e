// Package kvsclient is the client side of the wire protocol: one TCP
// connection per command, grounded on original_source/project-3/src/client.rs's
// KvClient.
package kvsclient

import (
	"net"

	"github.com/ignitekv/kvs/internal/protocol"
	kvserrors "github.com/ignitekv/kvs/pkg/errors"
)

// Client holds one TCP connection good for exactly one command/response
// round trip, matching spec §4.10: "the client does not attempt to reuse
// connections or retry; higher-level retry policy is the caller's concern."
type Client struct {
	conn net.Conn
}

// Connect opens a TCP connection to addr.
func Connect(addr string) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, kvserrors.NewNetworkError(err, kvserrors.ErrorCodeIO, "Failed to connect to server").
			WithRemoteAddr(addr)
	}
	return &Client{conn: conn}, nil
}

// Send frames and writes command, then reads and returns the one framed
// response the server sends back.
func (c *Client) Send(cmd protocol.Command) (protocol.Response, error) {
	if err := protocol.WriteFrame(c.conn, cmd); err != nil {
		return protocol.Response{}, err
	}

	var resp protocol.Response
	if err := protocol.ReadFrame(c.conn, &resp); err != nil {
		return protocol.Response{}, err
	}
	return resp, nil
}

// Get sends a Get command and returns the server's response; on success its
// Message field carries the value. An empty message on success means the
// key was absent
// (spec §8's wire round-trip scenario: "get(\"b\") returns
// Response{success:true,message:\"\"}").
func (c *Client) Get(key string) (protocol.Response, error) {
	return c.Send(protocol.NewGet(key))
}

// Set sends a Set command.
func (c *Client) Set(key, value string) (protocol.Response, error) {
	return c.Send(protocol.NewSet(key, value))
}

// Remove sends a Remove command.
func (c *Client) Remove(key string) (protocol.Response, error) {
	return c.Send(protocol.NewRemove(key))
}

// Shutdown half-closes both directions of the underlying connection.
func (c *Client) Shutdown() error {
	if tcp, ok := c.conn.(*net.TCPConn); ok {
		if err := tcp.CloseWrite(); err != nil {
			return err
		}
	}
	return c.conn.Close()
}

// Close closes the underlying connection without attempting a half-close.
func (c *Client) Close() error {
	return c.conn.Close()
}
