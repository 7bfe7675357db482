package errors

import "errors"

var (
	ErrInvalidKey      = errors.New("user key is malformed or unset")
	ErrAlreadyExists   = errors.New("user already exists with this key")
	ErrNotFound        = errors.New("user not found")
	ErrAccessDenied    = errors.New("caller is not allowed to perform this user operation")
	ErrValidation      = errors.New("one or more of the given users are invalid")
	ErrInvalidArgument = errors.New("unsupported sort field or malformed query parameter")
)
