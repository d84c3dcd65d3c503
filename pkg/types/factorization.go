// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Factorization is the divisor listing of a single positive integer.
type Factorization struct {
	// N is the factored integer.
	N int `json:"n" yaml:"n"`

	// Divisors lists every positive divisor of N in ascending order.
	Divisors []int `json:"divisors" yaml:"divisors"`

	// Count is len(Divisors).
	Count int `json:"count" yaml:"count"`

	// Prime is true when N has exactly two divisors.
	Prime bool `json:"prime" yaml:"prime"`
}
