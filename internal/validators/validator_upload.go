package validators

import (
	"context"
	"strings"
)

// allowedExtensions is the exhaustive set of file extensions accepted for
// uploaded media. Anything not in this set is rejected before a single byte
// is stored.
var allowedExtensions = map[string]struct{}{
	"txt":  {},
	"pdf":  {},
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
	"mp3":  {},
	"wav":  {},
	"mp4":  {},
}

// UploadValidator validates file names of uploaded media against the
// extension allow-list. Matching is case-insensitive; only the substring
// after the last '.' counts as the extension.
type UploadValidator struct {
}

func NewUploadValidator() Validator {
	return &UploadValidator{}
}

func (v *UploadValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case string:
		return v.validateFileName(ctx, value)
	case *string:
		return v.validateFileName(ctx, *value)

	default:
		return ErrUnsupportedType
	}
}

func (v *UploadValidator) validateFileName(_ context.Context, fileName string) error {
	if fileName == "" {
		return ErrEmptyFileName
	}

	dot := strings.LastIndex(fileName, ".")
	if dot < 0 || dot == len(fileName)-1 {
		return ErrMissingExtension
	}

	ext := strings.ToLower(fileName[dot+1:])
	if _, ok := allowedExtensions[ext]; !ok {
		return ErrExtensionNotAllowed
	}

	return nil
}
