package transport

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/alpaca-client/alpaca-go/pkg/log"
	"github.com/alpaca-client/alpaca-go/pkg/version"
	"github.com/alpaca-client/alpaca-go/pkg/wire"
)

// ErrInvalidRequest is returned for requests that fail validation before sending.
var ErrInvalidRequest = errors.New("invalid request")

// HTTPConfig configures an HTTP transport.
type HTTPConfig struct {
	// Timeout bounds each request, including reading the body. Zero disables it.
	Timeout time.Duration

	// UserAgent is sent with every request.
	UserAgent string

	// InsecureSkipVerify disables certificate verification for https endpoints.
	InsecureSkipVerify bool

	// ProtocolLogger receives capture events. Nil disables capture.
	ProtocolLogger log.Logger

	// Logger receives resty's own diagnostics. Nil discards them.
	Logger *slog.Logger

	// HTTPClient replaces the underlying client (tests, custom proxies).
	HTTPClient *http.Client
}

// DefaultHTTPConfig returns the default transport configuration.
func DefaultHTTPConfig() HTTPConfig {
	return HTTPConfig{
		Timeout:   30 * time.Second,
		UserAgent: version.UserAgent(),
	}
}

// HTTP is a Transport backed by a single resty client.
// It is safe for concurrent use.
type HTTP struct {
	client    *resty.Client
	capture   log.Logger
	sessionID string
}

// NewHTTP creates an HTTP transport.
func NewHTTP(config HTTPConfig) *HTTP {
	var c *resty.Client
	if config.HTTPClient != nil {
		c = resty.NewWithClient(config.HTTPClient)
	} else {
		c = resty.New()
	}

	c.SetRetryCount(0).
		SetTimeout(config.Timeout).
		SetHeader("Accept", "application/json").
		SetLogger(newRestyLogger(config.Logger))

	if config.UserAgent != "" {
		c.SetHeader("User-Agent", config.UserAgent)
	}
	if config.InsecureSkipVerify {
		c.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	capture := config.ProtocolLogger
	if capture == nil {
		capture = log.NoopLogger{}
	}

	return &HTTP{
		client:    c,
		capture:   capture,
		sessionID: uuid.New().String(),
	}
}

// SessionID returns the capture session id of this transport.
func (t *HTTP) SessionID() string {
	return t.sessionID
}

// Do sends the request: GET with query parameters or PUT with a form body.
func (t *HTTP) Do(ctx context.Context, req *wire.Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	target := req.URL()
	r := t.client.R().SetContext(ctx)

	t.capture.Log(t.requestEvent(req, target))
	start := time.Now()

	var (
		resp *resty.Response
		err  error
	)
	switch req.Operation {
	case wire.OpGet:
		resp, err = r.SetQueryParamsFromValues(req.Params).Get(target)
	case wire.OpPut:
		resp, err = r.SetFormDataFromValues(req.Params).Put(target)
	}
	elapsed := time.Since(start)

	if err != nil {
		t.capture.Log(t.errorEvent(req, err))
		return nil, fmt.Errorf("%s %s: %w", req.Operation, target, err)
	}

	out := &Response{
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
		URL:        target,
		Duration:   elapsed,
	}
	t.capture.Log(t.responseEvent(req, out))
	return out, nil
}

func (t *HTTP) baseEvent(req *wire.Request) log.Event {
	return log.Event{
		Timestamp:     time.Now(),
		SessionID:     t.sessionID,
		ClientID:      req.ClientID,
		TransactionID: req.ClientTransactionID,
		Host:          req.Endpoint.Host,
		DeviceType:    req.Endpoint.DeviceType,
		DeviceNumber:  req.Endpoint.DeviceNumber,
		Attribute:     req.Attribute,
	}
}

func (t *HTTP) requestEvent(req *wire.Request, target string) log.Event {
	e := t.baseEvent(req)
	e.Direction = log.DirectionOut
	e.Category = log.CategoryRequest

	params := make(map[string]string, len(req.Params))
	for k := range req.Params {
		params[k] = req.Params.Get(k)
	}
	e.Request = &log.RequestEvent{
		Operation: req.Operation,
		URL:       target,
		Params:    params,
	}
	return e
}

func (t *HTTP) responseEvent(req *wire.Request, resp *Response) log.Event {
	e := t.baseEvent(req)
	e.Direction = log.DirectionIn
	e.Category = log.CategoryResponse

	body, truncated := log.TruncateBody(resp.Body)
	re := &log.ResponseEvent{
		StatusCode: resp.StatusCode,
		Duration:   resp.Duration,
		Body:       body,
		Truncated:  truncated,
	}
	if resp.IsInspectable() {
		if env, err := wire.DecodeEnvelope(resp.Body); err == nil {
			re.ErrorNumber = env.ErrorNumber
			re.ErrorMessage = env.ErrorMessage
		}
	}
	e.Response = re
	return e
}

func (t *HTTP) errorEvent(req *wire.Request, err error) log.Event {
	e := t.baseEvent(req)
	e.Direction = log.DirectionIn
	e.Category = log.CategoryError
	e.Error = &log.ErrorEventData{
		Message: err.Error(),
		Context: req.Operation.String() + " " + req.Attribute,
	}
	return e
}

var _ Transport = (*HTTP)(nil)
