package storage

import "errors"

var (
	ErrFileMissing = errors.New("database file does not exist")
	ErrFileOpen    = errors.New("database file could not be opened")
	ErrParse       = errors.New("database file could not be parsed")
)
