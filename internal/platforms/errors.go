package platforms

import "errors"

var (
	ErrNotFound = errors.New("platform not found")
)
