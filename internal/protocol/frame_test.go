package protocol

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	kvserrors "github.com/ignitekv/kvs/pkg/errors"
)

func TestWriteReadFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	cmd := NewSet("a", "1")
	require.NoError(t, WriteFrame(&buf, cmd))

	var got Command
	require.NoError(t, ReadFrame(&buf, &got))
	require.Equal(t, cmd, got)
}

func TestReadFrameRejectsOversizedLength(t *testing.T) {
	var buf bytes.Buffer
	var header [8]byte
	header[0] = 0xFF // absurdly large length in the high byte
	buf.Write(header[:])

	var resp Response
	err := ReadFrame(&buf, &resp)
	require.Error(t, err)
}

func TestReadFrameReportsConnectionClosed(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0, 0}) // short header, connection "closed" mid-frame

	var resp Response
	err := ReadFrame(&buf, &resp)
	require.Error(t, err)
	require.Equal(t, kvserrors.ErrorCodeConnectionClosed, kvserrors.GetErrorCode(err))
}

func TestResponseHelpers(t *testing.T) {
	require.Equal(t, Response{Success: true, Message: "1"}, Ok("1"))
	require.Equal(t, Response{Success: false, Message: "Key not found"}, Failure("Key not found"))
}
