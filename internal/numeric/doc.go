// Package numeric implements the arithmetic core of factprime: factorials of
// arbitrary size with a memoized prefix chain, and primality testing by 6k±1
// trial division.
//
// All results are *big.Int values owned by the caller. The memo cache is an
// explicit object held by a Core, so separate cores never share state and
// tests can inject a fresh cache.
package numeric
