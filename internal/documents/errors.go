package documents

import "errors"

var (
	ErrNotFound   = errors.New("document not found")
	ErrValidation = errors.New("validation error")
)
