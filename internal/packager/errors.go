package packager

import "errors"

var (
	ErrPackaging = errors.New("packaging failed")
)
