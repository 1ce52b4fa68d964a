package wire

// Reserved Alpaca error numbers.
const (
	CodeSuccess               = 0x0000
	CodeNotImplemented        = 0x0400
	CodeInvalidValue          = 0x0401
	CodeValueNotSet           = 0x0402
	CodeNotConnected          = 0x0407
	CodeParked                = 0x0408
	CodeSlaved                = 0x0409
	CodeInvalidOperation      = 0x040B
	CodeActionNotImplemented  = 0x040C
	CodeDriverBase            = 0x0500
	CodeDriverMax             = 0x0FFF
	CodeReservedProtocolBase  = 0x0400
	CodeReservedProtocolLimit = 0x04FF
)

// ErrorKind classifies a server reported error number.
type ErrorKind uint8

const (
	// KindSuccess means the error number was zero.
	KindSuccess ErrorKind = iota

	// KindNotImplemented indicates the attribute or method is not implemented.
	KindNotImplemented

	// KindInvalidValue indicates an out-of-range or malformed parameter value.
	KindInvalidValue

	// KindValueNotSet indicates a value was read before it had been set.
	KindValueNotSet

	// KindNotConnected indicates the device hardware is not connected.
	KindNotConnected

	// KindParked indicates the operation is invalid while the device is parked.
	KindParked

	// KindSlaved indicates the operation is invalid while the device is slaved.
	KindSlaved

	// KindInvalidOperation indicates the operation is invalid in the current state.
	KindInvalidOperation

	// KindActionNotImplemented indicates the named action is not supported.
	KindActionNotImplemented

	// KindDriverError is a driver-specific error in 0x500-0xFFF.
	KindDriverError

	// KindUnknown is any other non-zero error number.
	KindUnknown

	// KindTransport is an HTTP level failure. Classify never returns it.
	KindTransport
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindNotImplemented:
		return "not-implemented"
	case KindInvalidValue:
		return "invalid-value"
	case KindValueNotSet:
		return "value-not-set"
	case KindNotConnected:
		return "not-connected"
	case KindParked:
		return "parked"
	case KindSlaved:
		return "slaved"
	case KindInvalidOperation:
		return "invalid-operation"
	case KindActionNotImplemented:
		return "action-not-implemented"
	case KindDriverError:
		return "driver-error"
	case KindUnknown:
		return "unknown-protocol-error"
	case KindTransport:
		return "transport-error"
	default:
		return "invalid-kind"
	}
}

// IsSuccess returns true if the kind indicates success.
func (k ErrorKind) IsSuccess() bool {
	return k == KindSuccess
}

// IsError returns true if the kind indicates an error.
func (k ErrorKind) IsError() bool {
	return k != KindSuccess
}

// Classify maps an Alpaca error number to its ErrorKind.
// The specific reserved codes are matched before the driver range.
func Classify(code int) ErrorKind {
	switch code {
	case CodeSuccess:
		return KindSuccess
	case CodeNotImplemented:
		return KindNotImplemented
	case CodeInvalidValue:
		return KindInvalidValue
	case CodeValueNotSet:
		return KindValueNotSet
	case CodeNotConnected:
		return KindNotConnected
	case CodeParked:
		return KindParked
	case CodeSlaved:
		return KindSlaved
	case CodeInvalidOperation:
		return KindInvalidOperation
	case CodeActionNotImplemented:
		return KindActionNotImplemented
	}
	if code >= CodeDriverBase && code <= CodeDriverMax {
		return KindDriverError
	}
	return KindUnknown
}
