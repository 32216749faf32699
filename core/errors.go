package core

import "errors"

var (
	ErrInvalidIndex     = errors.New("punch index out of range")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrEmptyDescription = errors.New("description is empty")
	ErrNothingToExport  = errors.New("nothing to export")
)
