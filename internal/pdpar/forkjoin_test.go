package pdpar_test

import (
	"context"
	"errors"
	"testing"

	"github.com/katalvlaran/vlsipd/internal/pdpar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_CoversEveryIndexExactlyOnce(t *testing.T) {
	ranges := pdpar.Split(17, 4)
	seen := make([]bool, 17)
	for _, r := range ranges {
		for i := r.Start; i < r.End; i++ {
			require.False(t, seen[i], "index %d covered twice", i)
			seen[i] = true
		}
	}
	for i, s := range seen {
		assert.True(t, s, "index %d never covered", i)
	}
}

func TestSplit_NeverExceedsN(t *testing.T) {
	ranges := pdpar.Split(3, 8)
	assert.LessOrEqual(t, len(ranges), 3)
}

func TestForEachRange_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	err := pdpar.ForEachRange(context.Background(), 10, 4, func(ctx context.Context, r pdpar.Range) error {
		if r.Start == 0 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestReduce_SumIsOrderIndependentOfWorkerCount(t *testing.T) {
	data := make([]int, 101)
	for i := range data {
		data[i] = i + 1
	}
	sum := func(workers int) int {
		total, err := pdpar.Reduce(context.Background(), len(data), workers, 0,
			func(ctx context.Context, r pdpar.Range) (int, error) {
				s := 0
				for i := r.Start; i < r.End; i++ {
					s += data[i]
				}
				return s, nil
			},
			func(acc, partial int) int { return acc + partial },
		)
		require.NoError(t, err)
		return total
	}

	want := sum(1)
	assert.Equal(t, want, sum(4))
	assert.Equal(t, want, sum(7))
}
