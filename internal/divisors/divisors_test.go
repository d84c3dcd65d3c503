// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package divisors

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/factors/pkg/types"
)

func TestFactors(t *testing.T) {
	tests := []struct {
		name string
		num  int
		want []int
	}{
		{name: "one", num: 1, want: []int{1}},
		{name: "two", num: 2, want: []int{1, 2}},
		{name: "composite 45", num: 45, want: []int{1, 3, 5, 9, 15, 45}},
		{name: "prime 53", num: 53, want: []int{1, 53}},
		{name: "power of two 64", num: 64, want: []int{1, 2, 4, 8, 16, 32, 64}},
		{name: "perfect square 36", num: 36, want: []int{1, 2, 3, 4, 6, 9, 12, 18, 36}},
		{name: "highly composite 60", num: 60, want: []int{1, 2, 3, 4, 5, 6, 10, 12, 15, 20, 30, 60}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Factors(tt.num)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Factors(%d) mismatch (-want +got):\n%s", tt.num, diff)
			}
		})
	}
}

func TestFactorsRejectsNonPositive(t *testing.T) {
	for _, num := range []int{0, -1, -7, -64} {
		got, err := Factors(num)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.Contains(t, err.Error(), "positive integer")
		assert.Nil(t, got)
	}
}

// naivePrime checks primality independently of Factors.
func naivePrime(n int) bool {
	if n < 2 {
		return false
	}
	for d := 2; d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

func TestFactorsProperties(t *testing.T) {
	for n := 1; n <= 500; n++ {
		divs, err := Factors(n)
		require.NoError(t, err)
		require.NotEmpty(t, divs)

		assert.Equal(t, 1, divs[0], "n=%d: first divisor", n)
		assert.Equal(t, n, divs[len(divs)-1], "n=%d: last divisor", n)

		for i := 1; i < len(divs); i++ {
			assert.Less(t, divs[i-1], divs[i], "n=%d: not strictly ascending", n)
		}

		seen := make(map[int]bool, len(divs))
		for _, d := range divs {
			assert.Zero(t, n%d, "n=%d: %d does not divide", n, d)
			seen[d] = true
		}
		for d := 1; d <= n; d++ {
			if n%d == 0 {
				assert.True(t, seen[d], "n=%d: missing divisor %d", n, d)
			}
		}

		if n > 1 {
			assert.Equal(t, naivePrime(n), len(divs) == 2, "n=%d: primality", n)
		} else {
			assert.Equal(t, []int{1}, divs)
		}
	}
}

func TestFactorsIdempotent(t *testing.T) {
	first, err := Factors(64)
	require.NoError(t, err)
	second, err := Factors(64)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Each call allocates its own slice.
	first[0] = 99
	third, err := Factors(64)
	require.NoError(t, err)
	assert.Equal(t, 1, third[0])
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		num  int
		want types.Factorization
	}{
		{num: 1, want: types.Factorization{N: 1, Divisors: []int{1}, Count: 1}},
		{num: 45, want: types.Factorization{N: 45, Divisors: []int{1, 3, 5, 9, 15, 45}, Count: 6}},
		{num: 53, want: types.Factorization{N: 53, Divisors: []int{1, 53}, Count: 2, Prime: true}},
	}
	for _, tt := range tests {
		got, err := Describe(tt.num)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := Describe(0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestIsPrime(t *testing.T) {
	assert.True(t, IsPrime(2))
	assert.True(t, IsPrime(53))
	assert.False(t, IsPrime(1))
	assert.False(t, IsPrime(64))
	assert.False(t, IsPrime(0))
	assert.False(t, IsPrime(-3))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "[1, 3, 5, 9, 15, 45]", Format([]int{1, 3, 5, 9, 15, 45}))
	assert.Equal(t, "[1]", Format([]int{1}))
	assert.Equal(t, "[]", Format(nil))
}

func TestTrialDivisionTerminatesAtTypeMaximum(t *testing.T) {
	// 127 is both prime and math.MaxInt8; the loop counter wraps after it.
	assert.Equal(t, []int8{1, 127}, trialDivision(int8(math.MaxInt8)))
	// 32767 = 7 * 31 * 151.
	assert.Equal(t,
		[]int16{1, 7, 31, 151, 217, 1057, 4681, 32767},
		trialDivision(int16(math.MaxInt16)))
}
