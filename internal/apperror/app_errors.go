package apperror

import "errors"

var (
	ErrIllegalMove     = errors.New("illegal move")
	ErrOutOfRange      = errors.New("move is out of range")
	ErrSessionNotFound = errors.New("session not found")
	ErrCorruptHistory  = errors.New("history is corrupt")
)
