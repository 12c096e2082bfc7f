// Package errs defines the sentinel errors used throughout chnative.
//
// Every exported error belongs to one of the taxonomy groups documented on
// the error itself. Callers should match with errors.Is against these
// sentinels; call sites wrap them with fmt.Errorf("%w: detail", ...) to add
// context without losing the sentinel identity.
package errs

import "errors"

// Format errors: malformed on-wire bytes.
var (
	ErrInvalidVarInt        = errors.New("chnative: invalid varint")
	ErrTruncatedBlock       = errors.New("chnative: truncated block")
	ErrInvalidTypeDescriptor = errors.New("chnative: invalid type descriptor")
	ErrUnknownType          = errors.New("chnative: unknown type")
	ErrInvalidEnumDescriptor = errors.New("chnative: invalid enum descriptor")
	ErrPrecisionOutOfRange  = errors.New("chnative: precision out of range")
	ErrHashMismatch         = errors.New("chnative: compressed frame hash mismatch")
)

// Domain errors: a value doesn't fit its declared type.
var (
	ErrValueOutOfRange = errors.New("chnative: value out of range")
	ErrTypeMismatch    = errors.New("chnative: value type mismatch")
	ErrStringEncoding  = errors.New("chnative: invalid string encoding")
)

// Unsupported errors: recognized but unimplemented functionality.
var (
	ErrMethodNotSupported             = errors.New("chnative: compression method not supported")
	ErrLowCardinalityWriteUnsupported = errors.New("chnative: writing LowCardinality is not supported")
	ErrUnknownIntervalUnit            = errors.New("chnative: unknown interval unit")
	ErrUnsupportedType                = errors.New("chnative: unsupported type")
)

// Config errors: bad driver configuration.
var (
	ErrConfig = errors.New("chnative: invalid configuration")
)
