package git

import "errors"

var (
	ErrInvalidRequest       = errors.New("invalid publish request")
	ErrPublishFailed        = errors.New("failed to publish")
	ErrAuthenticationFailed = errors.New("authentication failed")
)
