package trace

import "errors"

// Errors returned while decoding trace lines.
var (
	// ErrInvalidJSON indicates a line that is not a JSON object.
	ErrInvalidJSON = errors.New("invalid trace json")

	// ErrMissingField indicates a wire field absent from a line.
	ErrMissingField = errors.New("missing trace field")

	// ErrFieldType indicates a wire field with the wrong JSON type.
	ErrFieldType = errors.New("wrong trace field type")
)
