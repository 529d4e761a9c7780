package mod

import "errors"

var (
	ErrSourceNotFound = errors.New("copy source not found")
)
