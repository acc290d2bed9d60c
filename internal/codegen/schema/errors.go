package schema

import "errors"

var (
	ErrInvalidName       = errors.New("invalid identifier")
	ErrReservedName      = errors.New("reserved identifier")
	ErrDuplicateField    = errors.New("duplicate field")
	ErrDuplicateStruct   = errors.New("duplicate struct")
	ErrUnknownType       = errors.New("unknown type")
	ErrUnknownField      = errors.New("unknown field")
	ErrInvalidArray      = errors.New("invalid array length")
	ErrUnsupportedFormat = errors.New("unsupported schema format")
)
