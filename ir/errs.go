package ir

import "errors"

var (
	ErrNoSuchPath  = errors.New("no such path")
	ErrNoSuchSlot  = errors.New("no such slot")
	ErrOutOfBounds = errors.New("out of bounds")
	ErrParsePath   = errors.New("path parse error")
)
