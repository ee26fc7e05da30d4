package domain

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrNoHistory    = errors.New("no price history")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnavailable  = errors.New("data unavailable")
)
