package transport

import (
	"context"
	"time"

	"github.com/alpaca-client/alpaca-go/pkg/wire"
)

// Transport sends a built request and returns the raw response.
// Implemented by HTTP.
type Transport interface {
	// Do sends the request. A non-nil error means no response was received.
	Do(ctx context.Context, req *wire.Request) (*Response, error)
}

// Response is a raw HTTP response.
type Response struct {
	// StatusCode is the HTTP status.
	StatusCode int

	// Body is the complete response body.
	Body []byte

	// URL is the attribute address the request was sent to, without query.
	URL string

	// Duration is the round trip time.
	Duration time.Duration
}

// IsInspectable returns true for the statuses whose body carries an Alpaca
// envelope (200 through 203). Any other status is a transport failure.
func (r *Response) IsInspectable() bool {
	return r.StatusCode >= 200 && r.StatusCode <= 203
}
