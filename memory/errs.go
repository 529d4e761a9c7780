package memory

import "errors"

var (
	ErrUndefinedToken = errors.New("read of undefined token")
	ErrTypeMismatch   = errors.New("type mismatch")
)
