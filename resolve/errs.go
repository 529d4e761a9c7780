package resolve

import "errors"

var (
	ErrConflictingTarget = errors.New("conflicting target methods")
	ErrStorageOnly       = errors.New("storage-only resolver used as a value")
	ErrSyntax            = errors.New("resolver syntax error")
)
