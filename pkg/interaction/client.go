package interaction

import (
	"context"
	"net/url"
	"time"

	"github.com/alpaca-client/alpaca-go/pkg/identity"
	"github.com/alpaca-client/alpaca-go/pkg/transport"
	"github.com/alpaca-client/alpaca-go/pkg/wire"
)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithRequestTimeout bounds every call. Zero, the default, leaves the
// caller's context untouched.
func WithRequestTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// Client provides the common Alpaca API of one device.
// It is safe for concurrent use.
type Client struct {
	endpoint  wire.Endpoint
	transport transport.Transport
	builder   *Builder
	timeout   time.Duration
}

// NewClient creates a client for a device. The identity is normally shared
// by every client of the process.
func NewClient(ep wire.Endpoint, tr transport.Transport, id *identity.Identity, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:  ep,
		transport: tr,
		builder:   NewBuilder(id),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the device endpoint.
func (c *Client) Endpoint() wire.Endpoint {
	return c.endpoint
}

// Identity returns the identity requests are stamped with.
func (c *Client) Identity() *identity.Identity {
	return c.builder.Identity()
}

// GetAttribute reads an attribute and returns its value.
func (c *Client) GetAttribute(ctx context.Context, name string, params url.Values) (any, error) {
	env, err := c.call(ctx, name, wire.OpGet, params)
	if err != nil {
		return nil, err
	}
	return env.Value, nil
}

// SetAttribute writes an attribute. A value in the reply is discarded.
func (c *Client) SetAttribute(ctx context.Context, name string, params url.Values) error {
	_, err := c.call(ctx, name, wire.OpPut, params)
	return err
}

// Put sends a PUT and returns the whole envelope.
func (c *Client) Put(ctx context.Context, name string, params url.Values) (*wire.Envelope, error) {
	return c.call(ctx, name, wire.OpPut, params)
}

// call builds and sends one request and checks the reply.
func (c *Client) call(ctx context.Context, name string, op wire.Operation, params url.Values) (*wire.Envelope, error) {
	req, err := c.builder.Build(c.endpoint, name, op, params)
	if err != nil {
		return nil, err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	return checkResponse(name, resp)
}

// checkResponse turns a raw response into an envelope or a typed error.
func checkResponse(attribute string, resp *transport.Response) (*wire.Envelope, error) {
	if !resp.IsInspectable() {
		return nil, &TransportError{
			StatusCode: resp.StatusCode,
			Body:       string(resp.Body),
			URL:        resp.URL,
		}
	}

	env, err := wire.DecodeEnvelope(resp.Body)
	if err != nil {
		return nil, &TransportError{
			StatusCode: resp.StatusCode,
			Body:       string(resp.Body),
			URL:        resp.URL,
		}
	}

	if !env.IsSuccess() {
		return nil, newDeviceError(attribute, env.ErrorNumber, env.ErrorMessage)
	}
	return env, nil
}
