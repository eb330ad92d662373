package bfvm

import "errors"

var (
	ErrOutOfRange       = errors.New("data pointer out of range")
	ErrMalformedProgram = errors.New("malformed program")
	ErrHalted           = errors.New("engine halted, load a program first")
	ErrRunning          = errors.New("engine already running")
)
