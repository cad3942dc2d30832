package node

import "errors"

// ErrInvalidArgument is returned when an operator is called with an operand it
// cannot differentiate through, such as a non-real or variable exponent.
var ErrInvalidArgument = errors.New("invalid argument")
