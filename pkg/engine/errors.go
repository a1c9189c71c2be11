package engine

import "errors"

var (
	ErrAlreadyStarted = errors.New("sync engine already started")
	ErrNotStarted     = errors.New("sync engine not started")
)
