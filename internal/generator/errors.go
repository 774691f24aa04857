package generator

import "errors"

// ErrInvalidArgument is returned (wrapped) when the scale parameter is unusable.
var ErrInvalidArgument = errors.New("invalid argument")
