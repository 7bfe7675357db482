package errors

import "errors"

var (
	ErrInvalidKey      = errors.New("action key is malformed or unset")
	ErrAlreadyExists   = errors.New("action already exists with this key")
	ErrNotFound        = errors.New("action not found")
	ErrAccessDenied    = errors.New("caller is not allowed to perform this action operation")
	ErrValidation      = errors.New("one or more of the given actions are invalid")
	ErrReferential     = errors.New("action references an element or player that is not stored")
	ErrInvalidArgument = errors.New("unsupported sort field or malformed query parameter")
)
