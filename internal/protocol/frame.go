// Package protocol implements the wire codec: one request and one response
// per TCP connection, each framed with a fixed-width big-endian 8-byte
// length prefix followed by that many bytes of UTF-8 JSON (spec §4.9).
//
// This mirrors the earlier synchronous stage of the Rust source
// (original_source/project-3/src/protocol.rs, byteorder::NetworkEndian),
// not the later stage's 4-byte tokio_util::LengthDelimitedCodec framing —
// spec.md pins the 8-byte prefix explicitly.
package protocol

import (
	"encoding/binary"
	"encoding/json"
	"io"

	kvserrors "github.com/ignitekv/kvs/pkg/errors"
)

// MaxFrameSize bounds how much a peer can make this side buffer for a
// single frame before the length prefix is rejected outright.
const MaxFrameSize = 16 * 1024 * 1024

// WriteFrame writes v as one length-prefixed JSON frame.
func WriteFrame(w io.Writer, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return kvserrors.NewNetworkError(err, kvserrors.ErrorCodeDecode, "Failed to marshal frame body")
	}

	var header [8]byte
	binary.BigEndian.PutUint64(header[:], uint64(len(body)))

	if _, err := w.Write(header[:]); err != nil {
		return kvserrors.NewNetworkError(err, kvserrors.ErrorCodeIO, "Failed to write frame length")
	}
	if _, err := w.Write(body); err != nil {
		return kvserrors.NewNetworkError(err, kvserrors.ErrorCodeIO, "Failed to write frame body")
	}
	return nil
}

// ReadFrame reads one length-prefixed JSON frame into v.
func ReadFrame(r io.Reader, v any) error {
	var header [8]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return kvserrors.NewNetworkError(err, kvserrors.ErrorCodeConnectionClosed, "Connection closed before frame header was read")
		}
		return kvserrors.NewNetworkError(err, kvserrors.ErrorCodeIO, "Failed to read frame length")
	}

	length := binary.BigEndian.Uint64(header[:])
	if length > MaxFrameSize {
		return kvserrors.NewNetworkError(nil, kvserrors.ErrorCodeFrameTooLarge, "Frame length exceeds maximum").
			WithDetail("length", length).
			WithDetail("max", MaxFrameSize)
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return kvserrors.NewNetworkError(err, kvserrors.ErrorCodeConnectionClosed, "Connection closed before frame body was read")
		}
		return kvserrors.NewNetworkError(err, kvserrors.ErrorCodeIO, "Failed to read frame body")
	}

	if err := json.Unmarshal(body, v); err != nil {
		return kvserrors.NewNetworkError(err, kvserrors.ErrorCodeDecode, "Failed to unmarshal frame body")
	}
	return nil
}
