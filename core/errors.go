package core

import "errors"

// Sentinel errors
var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrInvalidCard     = errors.New("invalid card")
)
