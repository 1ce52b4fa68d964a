package wire

import (
	"fmt"
	"net/url"
	"strconv"
)

// Parameter names used on the wire. Alpaca servers match parameter names
// case-insensitively.
const (
	ParamClientID            = "ClientID"
	ParamClientTransactionID = "ClientTransactionID"
	ParamAction              = "Action"
	ParamParameters          = "Parameters"
	ParamCommand             = "Command"
	ParamRaw                 = "Raw"
	ParamConnected           = "Connected"
)

// Request is a fully built Alpaca request.
type Request struct {
	Endpoint  Endpoint
	Attribute string
	Operation Operation

	// Params holds every parameter sent, including the identity pair.
	Params url.Values

	ClientID            uint32
	ClientTransactionID uint32
}

// URL returns the target address of the request.
func (r *Request) URL() string {
	return r.Endpoint.URL(r.Attribute)
}

// Validate checks if the request is valid.
func (r *Request) Validate() error {
	if !r.Operation.IsValid() {
		return fmt.Errorf("invalid operation: %d", r.Operation)
	}
	if r.Attribute == "" {
		return fmt.Errorf("empty attribute")
	}
	if r.ClientTransactionID == 0 {
		return fmt.Errorf("transaction id 0 is never assigned")
	}
	return r.Endpoint.Validate()
}

// Envelope is the generic response wrapper common to all calls.
type Envelope struct {
	// Value is the attribute dependent payload: string, float64, bool,
	// []any or nil after decoding.
	Value any `json:"Value"`

	ErrorNumber  int    `json:"ErrorNumber"`
	ErrorMessage string `json:"ErrorMessage"`

	ClientTransactionID uint32 `json:"ClientTransactionID,omitempty"`
	ServerTransactionID uint32 `json:"ServerTransactionID,omitempty"`
}

// Kind returns the classification of the envelope error number.
func (e *Envelope) Kind() ErrorKind {
	return Classify(e.ErrorNumber)
}

// IsSuccess returns true if the envelope carries no error.
func (e *Envelope) IsSuccess() bool {
	return e.ErrorNumber == CodeSuccess
}

// FormatBool formats a boolean parameter the way Alpaca servers expect it.
func FormatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// FormatUint formats an unsigned integer parameter.
func FormatUint(v uint32) string {
	return strconv.FormatUint(uint64(v), 10)
}
