package core

import "errors"

var (
	// ErrMalformedRecord covers rows with the wrong field count or a field
	// that does not coerce to its declared type. Skip, log, continue.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrUnknownEnum covers type/targetType values outside the declared
	// range. Skip, log, continue.
	ErrUnknownEnum = errors.New("unknown enum value")

	// ErrWriterFetch marks a failed per-writer fetch. The writer's
	// contribution is treated as empty, aggregation continues.
	ErrWriterFetch = errors.New("writer fetch failed")

	// ErrValidation is a write-time failure, it never occurs on the
	// read/aggregate path.
	ErrValidation = errors.New("validation failed")
)
