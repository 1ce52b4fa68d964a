package wire

// Operation represents an Alpaca request verb.
type Operation uint8

const (
	// OpGet reads an attribute. Parameters travel in the query string.
	OpGet Operation = 1

	// OpPut writes an attribute or runs a method. Parameters travel in a
	// form-encoded body.
	OpPut Operation = 2
)

// String returns the HTTP method name.
func (o Operation) String() string {
	switch o {
	case OpGet:
		return "GET"
	case OpPut:
		return "PUT"
	default:
		return "UNKNOWN"
	}
}

// IsValid returns true if the operation is a valid Alpaca verb.
func (o Operation) IsValid() bool {
	return o == OpGet || o == OpPut
}
