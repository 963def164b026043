package sheet

import "errors"

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownField    = errors.New("unknown field")
	ErrRowNotFound     = errors.New("row not found")
	ErrReadOnly        = errors.New("field is read-only")
	ErrNoActiveEdit    = errors.New("no active edit")
	ErrEditClosed      = errors.New("edit already closed")
	ErrEmptyPaste      = errors.New("pasted text has no rows")
)
