package interaction

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/alpaca-client/alpaca-go/pkg/identity"
	"github.com/alpaca-client/alpaca-go/pkg/transport"
	"github.com/alpaca-client/alpaca-go/pkg/transport/mocks"
	"github.com/alpaca-client/alpaca-go/pkg/wire"
)

const testURL = "http://localhost:11111/api/v1/telescope/0/"

func reply(attribute string, status int, body string) *transport.Response {
	return &transport.Response{
		StatusCode: status,
		Body:       []byte(body),
		URL:        testURL + attribute,
	}
}

func forAttribute(attribute string, op wire.Operation) any {
	return mock.MatchedBy(func(r *wire.Request) bool {
		return r.Attribute == attribute && r.Operation == op
	})
}

func newMockClient(t *testing.T, opts ...ClientOption) (*Client, *mocks.MockTransport) {
	tr := mocks.NewMockTransport(t)
	c := NewClient(testEndpoint(t, "localhost:11111"), tr, identity.NewWithClientID(4321), opts...)
	return c, tr
}

func TestGetAttributeReturnsValue(t *testing.T) {
	c, tr := newMockClient(t)
	tr.EXPECT().Do(mock.Anything, forAttribute("connected", wire.OpGet)).
		Return(reply("connected", 200, `{"Value":true,"ErrorNumber":0,"ErrorMessage":""}`), nil).Once()

	v, err := c.GetAttribute(context.Background(), "connected", nil)
	require.NoError(t, err)
	assert.Equal(t, true, v)
}

func TestGetAttributeAcceptsStatusRange(t *testing.T) {
	for _, status := range []int{200, 201, 202, 203} {
		c, tr := newMockClient(t)
		tr.EXPECT().Do(mock.Anything, mock.Anything).
			Return(reply("name", status, `{"Value":"Sim","ErrorNumber":0,"ErrorMessage":""}`), nil).Once()

		v, err := c.GetAttribute(context.Background(), "name", nil)
		require.NoError(t, err, "status %d", status)
		assert.Equal(t, "Sim", v)
	}
}

func TestGetAttributeMissingValueIsNil(t *testing.T) {
	c, tr := newMockClient(t)
	tr.EXPECT().Do(mock.Anything, mock.Anything).
		Return(reply("name", 200, `{"ErrorNumber":0,"ErrorMessage":""}`), nil).Once()

	v, err := c.GetAttribute(context.Background(), "name", nil)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSetAttributeDeviceError(t *testing.T) {
	c, tr := newMockClient(t)
	tr.EXPECT().Do(mock.Anything, forAttribute("slewtotarget", wire.OpPut)).
		Return(reply("slewtotarget", 200, `{"Value":null,"ErrorNumber":1032,"ErrorMessage":"parked"}`), nil).Once()

	err := c.SetAttribute(context.Background(), "slewtotarget", nil)
	require.Error(t, err)

	var de *DeviceError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, wire.KindParked, de.Kind)
	assert.Equal(t, 1032, de.Code)
	assert.Equal(t, "parked", de.Message)
	assert.Equal(t, "slewtotarget", de.Attribute)
	assert.ErrorIs(t, err, ErrParked)
}

func TestNonSuccessStatusIsTransportError(t *testing.T) {
	c, tr := newMockClient(t)
	tr.EXPECT().Do(mock.Anything, mock.Anything).
		Return(reply("connected", 500, "internal error"), nil).Once()

	_, err := c.GetAttribute(context.Background(), "connected", nil)
	require.Error(t, err)

	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 500, te.StatusCode)
	assert.Equal(t, "internal error", te.Body)
	assert.Equal(t, testURL+"connected", te.URL)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestStatusOutsideRangeIsTransportError(t *testing.T) {
	for _, status := range []int{204, 301, 400, 404} {
		c, tr := newMockClient(t)
		tr.EXPECT().Do(mock.Anything, mock.Anything).
			Return(reply("name", status, `{"Value":"Sim","ErrorNumber":0,"ErrorMessage":""}`), nil).Once()

		_, err := c.GetAttribute(context.Background(), "name", nil)
		assert.ErrorIs(t, err, ErrTransport, "status %d", status)
	}
}

func TestUndecodableBodyIsTransportError(t *testing.T) {
	bodies := []string{"internal error", "[1,2]", `{"ErrorNumber":"x"}`, ""}

	for _, body := range bodies {
		c, tr := newMockClient(t)
		tr.EXPECT().Do(mock.Anything, mock.Anything).
			Return(reply("name", 200, body), nil).Once()

		_, err := c.GetAttribute(context.Background(), "name", nil)

		var te *TransportError
		require.True(t, errors.As(err, &te), "body %q", body)
		assert.Equal(t, 200, te.StatusCode)
		assert.Equal(t, body, te.Body)
	}
}

func TestNetworkErrorIsReturnedAsIs(t *testing.T) {
	c, tr := newMockClient(t)
	cause := errors.New("dial tcp 127.0.0.1:11111: connect: connection refused")
	tr.EXPECT().Do(mock.Anything, mock.Anything).Return(nil, cause).Once()

	_, err := c.GetAttribute(context.Background(), "name", nil)
	assert.Equal(t, cause, err)

	_, ok := KindOf(err)
	assert.False(t, ok)
}

func TestPutReturnsEnvelope(t *testing.T) {
	c, tr := newMockClient(t)
	tr.EXPECT().Do(mock.Anything, forAttribute("commandstring", wire.OpPut)).
		Return(reply("commandstring", 200, `{"Value":"ok","ErrorNumber":0,"ErrorMessage":"","ClientTransactionID":1,"ServerTransactionID":99}`), nil).Once()

	env, err := c.Put(context.Background(), "commandstring", url.Values{wire.ParamCommand: {"X"}})
	require.NoError(t, err)
	assert.Equal(t, "ok", env.Value)
	assert.Equal(t, uint32(1), env.ClientTransactionID)
	assert.Equal(t, uint32(99), env.ServerTransactionID)
}

func TestReservedParamNeverReachesTransport(t *testing.T) {
	c, _ := newMockClient(t)

	err := c.SetAttribute(context.Background(), "tracking", url.Values{"clientid": {"1"}})
	assert.ErrorIs(t, err, ErrReservedParameter)
	assert.Equal(t, uint32(1), c.Identity().Peek())
}

func TestRequestsCarryIdentity(t *testing.T) {
	c, tr := newMockClient(t)

	var seen []*wire.Request
	tr.EXPECT().Do(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, r *wire.Request) (*transport.Response, error) {
			seen = append(seen, r)
			return reply(r.Attribute, 200, `{"Value":1,"ErrorNumber":0,"ErrorMessage":""}`), nil
		}).Times(3)

	for range 3 {
		_, err := c.GetAttribute(context.Background(), "interfaceversion", nil)
		require.NoError(t, err)
	}

	require.Len(t, seen, 3)
	for i, r := range seen {
		assert.Equal(t, uint32(4321), r.ClientID)
		assert.Equal(t, uint32(i+1), r.ClientTransactionID)
		assert.Equal(t, "4321", r.Params.Get(wire.ParamClientID))
	}
}

func TestContextIsPassedToTransport(t *testing.T) {
	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "marker")

	c, tr := newMockClient(t)
	tr.EXPECT().Do(mock.Anything, mock.Anything).
		RunAndReturn(func(got context.Context, r *wire.Request) (*transport.Response, error) {
			assert.Equal(t, "marker", got.Value(ctxKey{}))
			_, hasDeadline := got.Deadline()
			assert.False(t, hasDeadline)
			return reply(r.Attribute, 200, `{"Value":"x","ErrorNumber":0,"ErrorMessage":""}`), nil
		}).Once()

	_, err := c.GetAttribute(ctx, "name", nil)
	require.NoError(t, err)
}

func TestWithRequestTimeout(t *testing.T) {
	c, tr := newMockClient(t, WithRequestTimeout(time.Minute))
	tr.EXPECT().Do(mock.Anything, mock.Anything).
		RunAndReturn(func(got context.Context, r *wire.Request) (*transport.Response, error) {
			deadline, ok := got.Deadline()
			assert.True(t, ok)
			assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
			return reply(r.Attribute, 200, `{"Value":"x","ErrorNumber":0,"ErrorMessage":""}`), nil
		}).Once()

	_, err := c.GetAttribute(context.Background(), "name", nil)
	require.NoError(t, err)
}
