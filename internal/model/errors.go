package model

import "errors"

var (
	ErrEmptyString          = errors.New("model: empty string")
	ErrNilArgument          = errors.New("model: nil argument")
	ErrInvalidProgress      = errors.New("model: progress out of range")
	ErrNegativeInput        = errors.New("model: negative input")
	ErrInvalidStatus        = errors.New("model: invalid status")
	ErrInvalidPriorityLevel = errors.New("model: invalid priority level")
	ErrCycle                = errors.New("model: project would contain itself")
	ErrIterationDone        = errors.New("model: no more todos")
)
