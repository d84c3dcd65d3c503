// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package divisors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestFactorAll_PreservesOrder(t *testing.T) {
	nums := []int{64, 1, 53, 45, 12, 97}
	for _, workers := range []int{0, 1, 3, 16} {
		got, err := FactorAll(context.Background(), nums, workers)
		require.NoError(t, err, "workers=%d", workers)
		require.Len(t, got, len(nums))
		for i, n := range nums {
			want, err := Describe(n)
			require.NoError(t, err)
			assert.Equal(t, want, got[i], "workers=%d index=%d", workers, i)
		}
	}
}

func TestFactorAll_Empty(t *testing.T) {
	got, err := FactorAll(context.Background(), nil, 4)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFactorAll_InvalidInput(t *testing.T) {
	got, err := FactorAll(context.Background(), []int{45, -2, 64}, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Contains(t, err.Error(), "input 2")
	assert.Nil(t, got)
}

func TestFactorAll_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := FactorAll(ctx, []int{45, 53, 64}, 2)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, got)
}
