package kernel

import "errors"

// Descriptor and registry errors.
var (
	ErrUnknownKind               = errors.New("unknown integral kind")
	ErrDuplicateKind             = errors.New("integral kind already registered")
	ErrInvalidDescriptor         = errors.New("invalid integral descriptor")
	ErrUnsupportedRepresentation = errors.New("representation not supported by integral kind")
	ErrElementType               = errors.New("element type does not match representation")
)
