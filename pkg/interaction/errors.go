package interaction

import (
	"errors"
	"fmt"

	"github.com/alpaca-client/alpaca-go/pkg/wire"
)

// Device error sentinels. A *DeviceError matches the sentinel of its kind
// with errors.Is.
var (
	ErrNotImplemented       = errors.New("not implemented")
	ErrInvalidValue         = errors.New("invalid value")
	ErrValueNotSet          = errors.New("value not set")
	ErrNotConnected         = errors.New("not connected")
	ErrParked               = errors.New("parked")
	ErrSlaved               = errors.New("slaved")
	ErrInvalidOperation     = errors.New("invalid operation")
	ErrActionNotImplemented = errors.New("action not implemented")
	ErrDriver               = errors.New("driver error")
	ErrUnknownProtocol      = errors.New("unknown protocol error")
)

// ErrTransport is matched by every *TransportError.
var ErrTransport = errors.New("transport error")

var (
	errUnexpectedShape = errors.New("unexpected value shape")
	errNotIntegral     = errors.New("value is not integral")
)

var kindSentinels = map[wire.ErrorKind]error{
	wire.KindNotImplemented:       ErrNotImplemented,
	wire.KindInvalidValue:         ErrInvalidValue,
	wire.KindValueNotSet:          ErrValueNotSet,
	wire.KindNotConnected:         ErrNotConnected,
	wire.KindParked:               ErrParked,
	wire.KindSlaved:               ErrSlaved,
	wire.KindInvalidOperation:     ErrInvalidOperation,
	wire.KindActionNotImplemented: ErrActionNotImplemented,
	wire.KindDriverError:          ErrDriver,
	wire.KindUnknown:              ErrUnknownProtocol,
	wire.KindTransport:            ErrTransport,
}

// Sentinel returns the sentinel error of a kind, or nil for KindSuccess.
func Sentinel(kind wire.ErrorKind) error {
	return kindSentinels[kind]
}

// DeviceError is a non-zero error number reported by the server.
// Code and Message are carried verbatim.
type DeviceError struct {
	Kind      wire.ErrorKind
	Code      int
	Message   string
	Attribute string
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("%s: %s (0x%X): %s", e.Attribute, e.Kind, e.Code, e.Message)
}

// Is reports whether target is the sentinel of the error kind.
func (e *DeviceError) Is(target error) bool {
	s := kindSentinels[e.Kind]
	return s != nil && s == target
}

// newDeviceError creates a DeviceError, classifying the code.
func newDeviceError(attribute string, code int, message string) *DeviceError {
	return &DeviceError{
		Kind:      wire.Classify(code),
		Code:      code,
		Message:   message,
		Attribute: attribute,
	}
}

// TransportError is a response that does not carry a usable envelope:
// a status outside 200-203, or a body that does not decode.
type TransportError struct {
	StatusCode int
	Body       string
	URL        string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("HTTP %d: %s (URL %s)", e.StatusCode, e.Body, e.URL)
}

// Is matches ErrTransport.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// ValueError is a value that does not have the shape an accessor expects.
type ValueError struct {
	Attribute string
	Value     any
	Want      string
	Err       error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s: cannot convert %v (%T) to %s: %v", e.Attribute, e.Value, e.Value, e.Want, e.Err)
}

func (e *ValueError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a device or transport error in err's chain.
func KindOf(err error) (wire.ErrorKind, bool) {
	var de *DeviceError
	if errors.As(err, &de) {
		return de.Kind, true
	}
	var te *TransportError
	if errors.As(err, &te) {
		return wire.KindTransport, true
	}
	return 0, false
}
