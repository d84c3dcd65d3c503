// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package divisors enumerates the positive divisors of an integer by trial
// division. Every candidate from 1 to n is tested; there is no square-root
// bound and no primality shortcut.
package divisors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/factors/pkg/types"
)

// ErrInvalidArgument is returned for inputs below 1.
var ErrInvalidArgument = errors.New("invalid argument")

// Factors returns the divisors of num in ascending order. The returned slice
// is freshly allocated on every call. Inputs below 1 have no defined divisor
// set and are rejected with an error wrapping ErrInvalidArgument.
func Factors(num int) ([]int, error) {
	if num < 1 {
		return nil, fmt.Errorf("factors of %d: %w: input must be a positive integer", num, ErrInvalidArgument)
	}

	return trialDivision(num), nil
}

type signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// trialDivision tests every candidate in [1, num]. num must be positive.
func trialDivision[T signed](num T) []T {
	var result []T
	// i > 0 ends the loop when num is the type's maximum and i wraps.
	for i := T(1); i > 0 && i <= num; i++ {
		if num%i == 0 {
			result = append(result, i)
		}
	}
	return result
}

// Describe factors num and returns the result as a Factorization record.
func Describe(num int) (types.Factorization, error) {
	divs, err := Factors(num)
	if err != nil {
		return types.Factorization{}, err
	}
	return types.Factorization{
		N:        num,
		Divisors: divs,
		Count:    len(divs),
		Prime:    len(divs) == 2,
	}, nil
}

// IsPrime reports whether num has exactly two divisors.
// It returns false for inputs below 1.
func IsPrime(num int) bool {
	divs, err := Factors(num)
	return err == nil && len(divs) == 2
}

// Format renders divisors as a bracketed, comma-separated list,
// e.g. "[1, 3, 5, 9, 15, 45]".
func Format(divs []int) string {
	parts := make([]string, len(divs))
	for i, d := range divs {
		parts[i] = strconv.Itoa(d)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
