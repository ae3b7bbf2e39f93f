package deployments

import "errors"

var (
	ErrNotFound   = errors.New("deployment not found")
	ErrNotAllowed = errors.New("status transition not allowed")
)
