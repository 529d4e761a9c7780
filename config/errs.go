package config

import "errors"

var (
	ErrLoad = errors.New("patch description error")
)
