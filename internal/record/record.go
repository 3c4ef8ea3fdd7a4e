// Package record defines the self-delimiting JSON encoding of log entries
// and the streaming decoder that reports the byte offset after each value.
//
// Records are concatenated on disk without separators or a length prefix;
// encoding/json's decoder naturally stops at the end of one JSON value, so
// decoding one record at a time and asking the decoder how much it
// consumed is enough to recover record boundaries.
package record

import (
	"encoding/json"
	"io"

	kvserrors "github.com/ignitekv/kvs/pkg/errors"
)

// Kind discriminates the two record variants. encoding/json has no native
// tagged-union support, so the wire shape carries its own discriminant
// field instead of relying on which of Value/absent is set.
type Kind string

const (
	KindSet    Kind = "Set"
	KindRemove Kind = "Remove"
)

// Record is a tagged union of Set and Remove log entries. Only one of
// Value is meaningful, selected by Kind; Remove entries leave Value empty.
type Record struct {
	Kind  Kind   `json:"kind"`
	Key   string `json:"key"`
	Value string `json:"value,omitempty"`
}

// NewSet builds a Set record.
func NewSet(key, value string) Record {
	return Record{Kind: KindSet, Key: key, Value: value}
}

// NewRemove builds a Remove record.
func NewRemove(key string) Record {
	return Record{Kind: KindRemove, Key: key}
}

// Encode writes r as a single JSON value with no trailing separator.
func Encode(w io.Writer, r Record) error {
	body, err := json.Marshal(r)
	if err != nil {
		return kvserrors.NewStorageError(err, kvserrors.ErrorCodeDecode, "Failed to encode record")
	}
	if _, err := w.Write(body); err != nil {
		return kvserrors.NewStorageError(err, kvserrors.ErrorCodeIO, "Failed to write record")
	}
	return nil
}

// Decode reads exactly one JSON value from r, which must contain nothing
// but that value (the bounded slice a locator resolves to). Point reads use
// this: the reader already knows the record's exact length, so a one-shot
// decoder is safe here even though it would not be for scanning a segment.
func Decode(r io.Reader) (Record, error) {
	var rec Record
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return Record{}, kvserrors.NewStorageError(err, kvserrors.ErrorCodeDecode, "Failed to decode record")
	}
	return rec, nil
}

// StreamDecoder decodes a concatenated sequence of records from an
// unbounded reader, such as a full segment file during recovery. It owns a
// single encoding/json.Decoder for the lifetime of the scan: json.Decoder
// reads ahead of the value it just parsed into its own internal buffer, so
// discarding and recreating the decoder between records — as a naive
// "decode one value from the current reader position" helper would —
// silently drops whatever it had buffered past the first record. Keeping
// one decoder alive across the whole scan, and reading Offset() after each
// call, is what makes the boundary tracking correct.
type StreamDecoder struct {
	dec *json.Decoder
}

// NewStreamDecoder wraps r for sequential record-at-a-time decoding.
func NewStreamDecoder(r io.Reader) *StreamDecoder {
	return &StreamDecoder{dec: json.NewDecoder(r)}
}

// Decode reads the next record and returns io.EOF, unchanged, once the
// stream is exhausted.
func (d *StreamDecoder) Decode() (Record, error) {
	var rec Record
	if err := d.dec.Decode(&rec); err != nil {
		if err == io.EOF {
			return Record{}, io.EOF
		}
		return Record{}, kvserrors.NewStorageError(err, kvserrors.ErrorCodeDecode, "Failed to decode record")
	}
	return rec, nil
}

// Offset returns the byte offset, measured from the start of the wrapped
// reader, of the end of the most recently decoded record — equivalently,
// where the next one begins.
func (d *StreamDecoder) Offset() int64 {
	return d.dec.InputOffset()
}
