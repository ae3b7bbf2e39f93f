package providers

import "errors"

var (
	// ErrConfiguration reports missing or invalid credentials and settings.
	ErrConfiguration = errors.New("configuration error")
	// ErrProvider reports network, authentication or provider-side failures.
	ErrProvider = errors.New("provider error")
)
