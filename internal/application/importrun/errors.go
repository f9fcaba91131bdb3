package importrun

import "errors"

var (
	ErrInvalidRunID    = errors.New("invalid import run id")
	ErrRunNotFound     = errors.New("import run not found")
	ErrGetImportRun    = errors.New("failed to get import run")
	ErrRecordImportRun = errors.New("failed to record import run")
)
