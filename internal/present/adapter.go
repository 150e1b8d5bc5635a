// Package present turns numeric results into the strings shown to users and
// parses raw user text into numbers.
package present

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"factprime/internal/numeric"

	"go.uber.org/zap"
)

// InvalidIntegerMessage is what shells show for a ParseError.
const InvalidIntegerMessage = "Please enter a valid integer"

// ErrParse matches any ParseError via errors.Is.
var ErrParse = errors.New("not an integer")

// ParseError reports raw input that is not a base-10 integer literal.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid integer literal %q", e.Input)
}

// Is reports whether target is ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ParseInput accepts an optionally signed base-10 integer. Surrounding
// whitespace is ignored; anything else is a ParseError. Digit-group
// underscores ("1_000") and base prefixes are deliberately rejected even
// though some integer parsers accept them: a prompt for "a number" should
// only take plain digits.
func ParseInput(raw string) (*big.Int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, &ParseError{Input: raw}
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, &ParseError{Input: raw}
	}
	return n, nil
}

// Adapter formats NumericCore results.
type Adapter struct {
	core   *numeric.Core
	logger *zap.Logger
}

// NewAdapter wraps core. A nil logger disables logging.
func NewAdapter(core *numeric.Core, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{core: core, logger: logger}
}

// Core returns the wrapped numeric core.
func (a *Adapter) Core() *numeric.Core {
	return a.core
}

// DescribeFactorial returns "The factorial of n is n!" or the core's error message.
func (a *Adapter) DescribeFactorial(n *big.Int) string {
	result, err := a.core.Factorial(n)
	if err != nil {
		return a.describeError("factorial", n, err)
	}
	return fmt.Sprintf("The factorial of %s is %s", n.String(), result.String())
}

// DescribePrimality returns "n is a Prime Number", "n is Not a Prime Number",
// or the core's error message.
func (a *Adapter) DescribePrimality(n *big.Int) string {
	prime, err := a.core.IsPrime(n)
	if err != nil {
		return a.describeError("is_prime", n, err)
	}
	status := "Not a Prime"
	if prime {
		status = "a Prime"
	}
	return fmt.Sprintf("%s is %s Number", n.String(), status)
}

// Describe dispatches on action.
func (a *Adapter) Describe(action Action, n *big.Int) string {
	switch action {
	case ActionPrimeCheck:
		return a.DescribePrimality(n)
	default:
		return a.DescribeFactorial(n)
	}
}

// Evaluate parses raw and describes it. A ParseError is returned instead of
// text so the shell can present it on its own terms.
func (a *Adapter) Evaluate(action Action, raw string) (string, error) {
	n, err := ParseInput(raw)
	if err != nil {
		a.logger.Debug("rejected input", zap.Stringer("action", action), zap.String("raw", raw))
		return "", err
	}
	return a.Describe(action, n), nil
}

func (a *Adapter) describeError(op string, n *big.Int, err error) string {
	if errors.Is(err, numeric.ErrInvalidArgument) {
		a.logger.Debug("invalid argument", zap.String("op", op), zap.String("n", n.String()), zap.Error(err))
	} else {
		a.logger.Warn("unexpected core error", zap.String("op", op), zap.String("n", n.String()), zap.Error(err))
	}
	return err.Error()
}
