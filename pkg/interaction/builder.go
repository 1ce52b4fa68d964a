package interaction

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/alpaca-client/alpaca-go/pkg/identity"
	"github.com/alpaca-client/alpaca-go/pkg/wire"
)

// Builder errors.
var (
	ErrEmptyAttribute    = errors.New("empty attribute name")
	ErrUnknownOperation  = errors.New("unknown operation")
	ErrReservedParameter = errors.New("reserved parameter")
)

// reservedParams are set by the builder and may not be passed by callers.
var reservedParams = []string{
	wire.ParamClientID,
	wire.ParamClientTransactionID,
}

// Builder turns attribute calls into wire requests stamped with the
// identity pair.
type Builder struct {
	identity *identity.Identity
}

// NewBuilder creates a builder drawing ids from the given identity.
func NewBuilder(id *identity.Identity) *Builder {
	return &Builder{identity: id}
}

// Identity returns the identity the builder draws from.
func (b *Builder) Identity() *identity.Identity {
	return b.identity
}

// Build creates the request for an attribute. The caller parameters are
// copied; the identity pair is added. A transaction id is only consumed
// when the request is valid.
func (b *Builder) Build(ep wire.Endpoint, attribute string, op wire.Operation, params url.Values) (*wire.Request, error) {
	if attribute == "" {
		return nil, ErrEmptyAttribute
	}
	if !op.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownOperation, op)
	}
	if err := ep.Validate(); err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}
	for name := range params {
		if isReserved(name) {
			return nil, fmt.Errorf("%w: %s", ErrReservedParameter, name)
		}
	}

	out := make(url.Values, len(params)+len(reservedParams))
	for name, values := range params {
		out[name] = append([]string(nil), values...)
	}

	clientID, txID := b.identity.Snapshot()
	out.Set(wire.ParamClientID, wire.FormatUint(clientID))
	out.Set(wire.ParamClientTransactionID, wire.FormatUint(txID))

	return &wire.Request{
		Endpoint:            ep,
		Attribute:           attribute,
		Operation:           op,
		Params:              out,
		ClientID:            clientID,
		ClientTransactionID: txID,
	}, nil
}

func isReserved(name string) bool {
	for _, r := range reservedParams {
		if strings.EqualFold(name, r) {
			return true
		}
	}
	return false
}
