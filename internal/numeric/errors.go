package numeric

import "errors"

// ErrInvalidArgument matches any InvalidArgumentError via errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// Messages returned for negative inputs. The presentation layer shows them verbatim.
const (
	MsgFactorialNegative = "Factorial only works with non-negative numbers"
	MsgPrimeNegative     = "Prime number checking only works with non-negative numbers"
)

// InvalidArgumentError reports a well-formed integer that violates an
// operation's precondition. Error returns only the user-facing reason.
type InvalidArgumentError struct {
	Op     string // "factorial" or "is_prime"
	Value  string // decimal form of the rejected input
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return e.Reason
}

// Is reports whether target is ErrInvalidArgument.
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}
