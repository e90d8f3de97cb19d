package domain

import "errors"

var (
	ErrMissingFile         = errors.New("file field is required")
	ErrUnsupportedFileType = errors.New("file must be a PDF")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUnknownModality     = errors.New("unknown retirement modality")
	ErrInvalidDate         = errors.New("invalid calendar date")
)
