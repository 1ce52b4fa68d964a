package wire

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alpaca-client/alpaca-go/pkg/version"
)

// Endpoint errors.
var (
	ErrEmptyHost       = errors.New("empty host")
	ErrEmptyDeviceType = errors.New("empty device type")
	ErrInvalidScheme   = errors.New("scheme must be http or https")
	ErrInvalidVersion  = errors.New("API version must be positive")
)

// Endpoint addresses one device instance on an Alpaca server.
// Endpoints are values; the zero value is not usable, use NewEndpoint.
type Endpoint struct {
	// Scheme is the transport scheme, "http" or "https".
	Scheme string

	// Host is the server name or address, optionally with ":port".
	Host string

	// APIVersion is the fixed Alpaca API version.
	APIVersion uint32

	// DeviceType is the lowercase device category, e.g. "telescope".
	DeviceType string

	// DeviceNumber is the zero based device index on the server.
	DeviceNumber uint32
}

// NewEndpoint creates a validated endpoint using the library API version.
// An empty scheme defaults to "http" and the device type is lowercased.
func NewEndpoint(scheme, host, deviceType string, deviceNumber uint32) (Endpoint, error) {
	if scheme == "" {
		scheme = "http"
	}
	e := Endpoint{
		Scheme:       strings.ToLower(scheme),
		Host:         host,
		APIVersion:   version.APIVersion,
		DeviceType:   strings.ToLower(deviceType),
		DeviceNumber: deviceNumber,
	}
	if err := e.Validate(); err != nil {
		return Endpoint{}, err
	}
	return e, nil
}

// Validate checks that the endpoint can produce a well formed address.
func (e Endpoint) Validate() error {
	if e.Scheme != "http" && e.Scheme != "https" {
		return fmt.Errorf("%w: %q", ErrInvalidScheme, e.Scheme)
	}
	if e.Host == "" {
		return ErrEmptyHost
	}
	if e.DeviceType == "" {
		return ErrEmptyDeviceType
	}
	if e.APIVersion == 0 {
		return ErrInvalidVersion
	}
	return nil
}

// BaseURL returns scheme://host/api/v{version}/{deviceType}/{deviceNumber}.
func (e Endpoint) BaseURL() string {
	return fmt.Sprintf("%s://%s/api/%s/%s/%d",
		e.Scheme,
		e.Host,
		version.PathSegment(e.APIVersion),
		e.DeviceType,
		e.DeviceNumber,
	)
}

// URL returns the address of an attribute on this device.
func (e Endpoint) URL(attribute string) string {
	return e.BaseURL() + "/" + attribute
}

// String returns a short form such as "telescope/0@localhost:11111".
func (e Endpoint) String() string {
	return fmt.Sprintf("%s/%d@%s", e.DeviceType, e.DeviceNumber, e.Host)
}
