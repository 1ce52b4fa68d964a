package wire

import (
	"bytes"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// json is the codec for response envelopes. It behaves like encoding/json:
// numbers decode to float64 and unknown fields are ignored.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrEmptyBody is returned when a response carries no envelope at all.
var ErrEmptyBody = errors.New("empty response body")

// DecodeEnvelope decodes a response body into an Envelope.
func DecodeEnvelope(data []byte) (*Envelope, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyBody
	}
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode envelope: %w", err)
	}
	return &env, nil
}

// EncodeEnvelope encodes an Envelope to JSON bytes.
func EncodeEnvelope(env *Envelope) ([]byte, error) {
	return json.Marshal(env)
}
