package errors

import "errors"

var (
	ErrInvalidKey      = errors.New("element key is malformed or unset")
	ErrAlreadyExists   = errors.New("element already exists with this key")
	ErrNotFound        = errors.New("element not found")
	ErrAccessDenied    = errors.New("caller is not allowed to perform this element operation")
	ErrValidation      = errors.New("one or more of the given elements are invalid")
	ErrInvalidArgument = errors.New("unsupported search or sort parameter")
)
