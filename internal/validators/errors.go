package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")

	ErrEmptyFileName       = errors.New("file name is required")
	ErrMissingExtension    = errors.New("file name has no extension")
	ErrExtensionNotAllowed = errors.New("file extension is not allowed")
)
