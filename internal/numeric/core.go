package numeric

import (
	"fmt"
	"math"
	"math/big"

	"go.uber.org/zap"
)

// DefaultMaxFactorialInput bounds factorial inputs. Every prefix up to n is
// cached, so memory grows roughly with n² digits.
const DefaultMaxFactorialInput uint64 = 10000

// Core computes factorials and primality. It is safe for concurrent use.
type Core struct {
	cache        *Cache
	maxFactorial uint64
	logger       *zap.Logger
}

// Option configures a Core.
type Option func(*Core)

// WithCache injects the memo cache. Nil is ignored.
func WithCache(cache *Cache) Option {
	return func(c *Core) {
		if cache != nil {
			c.cache = cache
		}
	}
}

// WithMaxFactorialInput sets the largest accepted factorial input. Zero is ignored.
func WithMaxFactorialInput(n uint64) Option {
	return func(c *Core) {
		if n > 0 {
			c.maxFactorial = n
		}
	}
}

// WithLogger sets the logger used for cache activity. Nil is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Core) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Core with an empty cache unless one is injected.
func New(opts ...Option) *Core {
	c := &Core{
		cache:        NewCache(),
		maxFactorial: DefaultMaxFactorialInput,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Cache returns the core's memo cache.
func (c *Core) Cache() *Cache {
	return c.cache
}

// MaxFactorialInput returns the largest accepted factorial input.
func (c *Core) MaxFactorialInput() uint64 {
	return c.maxFactorial
}

// Factorial returns n!. Results are memoized along with every smaller
// factorial computed on the way. Inputs above MaxFactorialInput (default
// DefaultMaxFactorialInput, 10000) are rejected with an InvalidArgumentError
// so that neither compute time nor cache memory is unbounded.
func (c *Core) Factorial(n *big.Int) (*big.Int, error) {
	if n.Sign() < 0 {
		return nil, &InvalidArgumentError{Op: "factorial", Value: n.String(), Reason: MsgFactorialNegative}
	}
	if !n.IsUint64() || n.Uint64() > c.maxFactorial {
		return nil, &InvalidArgumentError{
			Op:     "factorial",
			Value:  n.String(),
			Reason: fmt.Sprintf("Factorial input %s exceeds the supported maximum of %d", n, c.maxFactorial),
		}
	}

	k := n.Uint64()
	if v, ok := c.cache.lookup(k); ok {
		c.logger.Debug("factorial cache hit", zap.Uint64("n", k))
		return v, nil
	}

	v, added := c.cache.extend(k)
	c.logger.Debug("factorial computed",
		zap.Uint64("n", k),
		zap.Int("added", added),
		zap.Int("entries", c.cache.Len()),
	)
	return v, nil
}

// IsPrime reports whether n is prime by 6k±1 trial division. Inputs that fit
// in 64 bits take a machine-word path; larger ones use big.Int arithmetic,
// which answers quickly for inputs with a small factor but is impractical
// for large primes.
func (c *Core) IsPrime(n *big.Int) (bool, error) {
	if n.Sign() < 0 {
		return false, &InvalidArgumentError{Op: "is_prime", Value: n.String(), Reason: MsgPrimeNegative}
	}
	if n.IsUint64() {
		return isPrime(n.Uint64()), nil
	}
	c.logger.Debug("big primality check", zap.Int("bits", n.BitLen()))
	return isPrimeBig(n), nil
}

var (
	bigTwo   = big.NewInt(2)
	bigThree = big.NewInt(3)
	bigSix   = big.NewInt(6)
)

// isPrimeBig is isPrime for n >= 2^64.
func isPrimeBig(n *big.Int) bool {
	var r big.Int
	if r.Mod(n, bigTwo).Sign() == 0 || r.Mod(n, bigThree).Sign() == 0 {
		return false
	}

	limit := new(big.Int).Sqrt(n)
	i := big.NewInt(5)
	j := new(big.Int)
	for i.Cmp(limit) <= 0 {
		if r.Mod(n, i).Sign() == 0 {
			return false
		}
		if r.Mod(n, j.Add(i, bigTwo)).Sign() == 0 {
			return false
		}
		i.Add(i, bigSix)
	}
	return true
}

func isPrime(n uint64) bool {
	switch {
	case n < 2:
		return false
	case n < 4:
		return true
	case n%2 == 0 || n%3 == 0:
		return false
	}

	limit := isqrt(n)
	for i := uint64(5); i <= limit; i += 6 {
		if n%i == 0 || n%(i+2) == 0 {
			return false
		}
	}
	return true
}

// isqrt returns ⌊√n⌋, correcting float rounding near 2^64.
func isqrt(n uint64) uint64 {
	r := uint64(math.Sqrt(float64(n)))
	for r > 0 && (r > math.MaxUint32 || r*r > n) {
		r--
	}
	for r < math.MaxUint32 && (r+1)*(r+1) <= n {
		r++
	}
	return r
}
