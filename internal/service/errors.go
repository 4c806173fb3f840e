package service

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrNoFile             = errors.New("no file selected")
	ErrInvalidFileType    = errors.New("invalid file type")
	ErrFileNotFound       = errors.New("file not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
