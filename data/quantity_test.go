package data_test

import (
	"testing"

	"github.com/danokoye/athenaeum/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBookQuantity(t *testing.T) {
	t.Run("accepts values within bounds", func(t *testing.T) {
		for _, value := range []int{0, 1, 500, data.MaxBookQuantity} {
			q, err := data.NewBookQuantity(value)
			require.NoError(t, err)
			assert.Equal(t, value, q.Value())
		}
	})

	t.Run("rejects negative values", func(t *testing.T) {
		_, err := data.NewBookQuantity(-1)
		assert.ErrorIs(t, err, data.ErrInvalidArgument)
	})

	t.Run("rejects values above the maximum", func(t *testing.T) {
		_, err := data.NewBookQuantity(data.MaxBookQuantity + 1)
		assert.ErrorIs(t, err, data.ErrInvalidArgument)
	})
}

func TestBookQuantityIncrease(t *testing.T) {
	q, err := data.NewBookQuantity(10)
	require.NoError(t, err)

	t.Run("returns a new quantity and leaves the receiver untouched", func(t *testing.T) {
		increased, err := q.Increase(5)
		require.NoError(t, err)
		assert.Equal(t, 15, increased.Value())
		assert.Equal(t, 10, q.Value())
	})

	t.Run("rejects an increase past the maximum", func(t *testing.T) {
		almostFull, err := data.NewBookQuantity(data.MaxBookQuantity)
		require.NoError(t, err)
		_, err = almostFull.Increase(1)
		assert.ErrorIs(t, err, data.ErrInvalidArgument)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		_, err := q.Increase(0)
		assert.ErrorIs(t, err, data.ErrInvalidArgument)
		_, err = q.Increase(-3)
		assert.ErrorIs(t, err, data.ErrInvalidArgument)
	})
}

func TestBookQuantityDecrease(t *testing.T) {
	q, err := data.NewBookQuantity(3)
	require.NoError(t, err)

	t.Run("decreases down to zero", func(t *testing.T) {
		decreased, err := q.Decrease(3)
		require.NoError(t, err)
		assert.Equal(t, 0, decreased.Value())
		assert.False(t, decreased.HasStock())
	})

	t.Run("rejects underflow", func(t *testing.T) {
		_, err := q.Decrease(4)
		assert.ErrorIs(t, err, data.ErrInvalidArgument)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		_, err := q.Decrease(0)
		assert.ErrorIs(t, err, data.ErrInvalidArgument)
	})
}

func TestBookQuantityStockChecks(t *testing.T) {
	q, err := data.NewBookQuantity(2)
	require.NoError(t, err)
	assert.True(t, q.HasStock())
	assert.True(t, q.HasStockFor(2))
	assert.False(t, q.HasStockFor(3))
}

func TestNewLoanQuantity(t *testing.T) {
	t.Run("requires at least one copy", func(t *testing.T) {
		_, err := data.NewLoanQuantity(0)
		assert.ErrorIs(t, err, data.ErrInvalidArgument)
		_, err = data.NewLoanQuantity(-1)
		assert.ErrorIs(t, err, data.ErrInvalidArgument)
	})

	t.Run("accepts positive values", func(t *testing.T) {
		q, err := data.NewLoanQuantity(3)
		require.NoError(t, err)
		assert.Equal(t, 3, q.Value())
	})
}
