package store

import "errors"

var (
	// ErrInvalidID is returned when an ID matches no namespace pattern,
	// or resolves to a node with no type assertion that no external
	// registry claims.
	ErrInvalidID = errors.New("id does not resolve to a known resource")

	// ErrUnsupportedValueType is returned when a setter receives a
	// value outside the recognized variants.
	ErrUnsupportedValueType = errors.New("unsupported value type")

	// ErrMultipleValues is returned when a single-value getter finds
	// more than one stored value. The collection operations handle
	// multi-valued properties.
	ErrMultipleValues = errors.New("property has multiple values")

	// ErrNoGenerator is returned when a generated ID is requested for
	// the listed license family, whose IDs are externally defined.
	ErrNoGenerator = errors.New("no id generator for listed licenses")

	// ErrUnknownDocument is returned by the facade when a read
	// addresses a document namespace no manager was built for.
	ErrUnknownDocument = errors.New("unknown document namespace")
)
