package storage

import "errors"

var (
	ErrRunNotFound = errors.New("storage: run not found")
	ErrNoFrames    = errors.New("storage: run has no frames")
)
