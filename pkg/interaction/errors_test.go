package interaction

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alpaca-client/alpaca-go/pkg/wire"
)

func TestDeviceErrorMatchesKindSentinel(t *testing.T) {
	tests := []struct {
		code     int
		kind     wire.ErrorKind
		sentinel error
	}{
		{0x400, wire.KindNotImplemented, ErrNotImplemented},
		{0x401, wire.KindInvalidValue, ErrInvalidValue},
		{0x402, wire.KindValueNotSet, ErrValueNotSet},
		{0x407, wire.KindNotConnected, ErrNotConnected},
		{0x408, wire.KindParked, ErrParked},
		{0x409, wire.KindSlaved, ErrSlaved},
		{0x40B, wire.KindInvalidOperation, ErrInvalidOperation},
		{0x40C, wire.KindActionNotImplemented, ErrActionNotImplemented},
		{0x500, wire.KindDriverError, ErrDriver},
		{0x999, wire.KindDriverError, ErrDriver},
		{0x403, wire.KindUnknown, ErrUnknownProtocol},
		{0x1000, wire.KindUnknown, ErrUnknownProtocol},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("0x%X", tt.code), func(t *testing.T) {
			err := error(newDeviceError("tracking", tt.code, "msg"))

			assert.True(t, errors.Is(err, tt.sentinel))
			assert.False(t, errors.Is(err, ErrTransport))

			kind, ok := KindOf(fmt.Errorf("wrapped: %w", err))
			require.True(t, ok)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.sentinel, Sentinel(tt.kind))
		})
	}
}

func TestDeviceErrorDoesNotMatchOtherKinds(t *testing.T) {
	err := newDeviceError("slewtotarget", 0x408, "parked")
	assert.False(t, errors.Is(err, ErrSlaved))
	assert.False(t, errors.Is(err, ErrDriver))
}

func TestDeviceErrorMessage(t *testing.T) {
	err := newDeviceError("slewtotarget", 1032, "parked")

	assert.Equal(t, 1032, err.Code)
	assert.Equal(t, "parked", err.Message)
	assert.Equal(t, "slewtotarget: parked (0x408): parked", err.Error())
}

func TestTransportError(t *testing.T) {
	err := error(&TransportError{
		StatusCode: 500,
		Body:       "internal error",
		URL:        "http://localhost:11111/api/v1/telescope/0/connected",
	})

	assert.True(t, errors.Is(err, ErrTransport))
	assert.Equal(t, "HTTP 500: internal error (URL http://localhost:11111/api/v1/telescope/0/connected)", err.Error())

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, wire.KindTransport, kind)
}

func TestValueErrorUnwraps(t *testing.T) {
	cause := errors.New("boom")
	err := &ValueError{Attribute: "driverversion", Value: "abc", Want: "float64", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "driverversion")

	_, ok := KindOf(err)
	assert.False(t, ok)
}

func TestKindOfPlainError(t *testing.T) {
	_, ok := KindOf(errors.New("dial tcp: refused"))
	assert.False(t, ok)

	_, ok = KindOf(nil)
	assert.False(t, ok)
}
