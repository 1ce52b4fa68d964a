package log

import (
	"time"

	"github.com/alpaca-client/alpaca-go/pkg/wire"
)

// MaxBodySize is the number of response body bytes kept in an event.
const MaxBodySize = 4096

// Event is one captured protocol event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the transport instance that produced the event (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Direction indicates message flow.
	Direction Direction `cbor:"3,keyasint"`

	// Category classifies the event.
	Category Category `cbor:"4,keyasint"`

	// ClientID and TransactionID are the identity pair sent with the request.
	ClientID      uint32 `cbor:"5,keyasint"`
	TransactionID uint32 `cbor:"6,keyasint"`

	// Host is the server address (host:port).
	Host string `cbor:"7,keyasint,omitempty"`

	// DeviceType and DeviceNumber identify the device addressed.
	DeviceType   string `cbor:"8,keyasint,omitempty"`
	DeviceNumber uint32 `cbor:"9,keyasint"`

	// Attribute is the attribute or method name.
	Attribute string `cbor:"10,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Request  *RequestEvent   `cbor:"11,keyasint,omitempty"`
	Response *ResponseEvent  `cbor:"12,keyasint,omitempty"`
	Error    *ErrorEventData `cbor:"13,keyasint,omitempty"`
}

// Direction indicates the direction of message flow.
type Direction uint8

const (
	// DirectionIn indicates a message received from the server.
	DirectionIn Direction = 0
	// DirectionOut indicates a message sent to the server.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryRequest is an outgoing request.
	CategoryRequest Category = 0
	// CategoryResponse is an HTTP response, whatever its status.
	CategoryResponse Category = 1
	// CategoryError is a request that produced no response.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryRequest:
		return "REQUEST"
	case CategoryResponse:
		return "RESPONSE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// RequestEvent captures an outgoing request.
type RequestEvent struct {
	Operation wire.Operation `cbor:"1,keyasint"`
	URL       string         `cbor:"2,keyasint"`

	// Params holds the first value of every parameter sent.
	Params map[string]string `cbor:"3,keyasint,omitempty"`
}

// ResponseEvent captures a received response.
type ResponseEvent struct {
	StatusCode int `cbor:"1,keyasint"`

	// ErrorNumber and ErrorMessage are filled when the body decoded as an envelope.
	ErrorNumber  int    `cbor:"2,keyasint,omitempty"`
	ErrorMessage string `cbor:"3,keyasint,omitempty"`

	// Duration is the round trip time. Stored as nanoseconds.
	Duration time.Duration `cbor:"4,keyasint"`

	// Body is the raw response body, at most MaxBodySize bytes.
	Body      []byte `cbor:"5,keyasint,omitempty"`
	Truncated bool   `cbor:"6,keyasint,omitempty"`
}

// Kind returns the classification of the captured error number.
func (r *ResponseEvent) Kind() wire.ErrorKind {
	return wire.Classify(r.ErrorNumber)
}

// ErrorEventData captures a request that failed before a response arrived.
type ErrorEventData struct {
	// Message is the error text.
	Message string `cbor:"1,keyasint"`

	// Context describes what was being attempted.
	Context string `cbor:"2,keyasint,omitempty"`
}

// TruncateBody limits a body to MaxBodySize bytes. The returned slice is a copy.
func TruncateBody(body []byte) ([]byte, bool) {
	n := len(body)
	truncated := false
	if n > MaxBodySize {
		n = MaxBodySize
		truncated = true
	}
	out := make([]byte, n)
	copy(out, body[:n])
	return out, truncated
}
