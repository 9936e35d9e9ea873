package cleanup

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument marks caller mistakes. Clear returns it before
// touching the filesystem; retrying with the same arguments is pointless.
var ErrInvalidArgument = errors.New("invalid argument")

var (
	ErrNilLogger   = fmt.Errorf("%w: logger is nil", ErrInvalidArgument)
	ErrInvalidPath = fmt.Errorf("%w: output directory path is empty", ErrInvalidArgument)
)

var errNotDirectory = errors.New("output path is not a directory")
