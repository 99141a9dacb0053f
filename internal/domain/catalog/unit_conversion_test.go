package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnitConversion(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates conversion and normalizes units", func(t *testing.T) {
		c, err := NewUnitConversion(tenantID, " KG ", "g", decimal.NewFromInt(1000))

		require.NoError(t, err)
		assert.Equal(t, "kg", c.FromUnit)
		assert.Equal(t, "g", c.ToUnit)
		assert.Equal(t, "1000", c.Factor.String())
	})

	t.Run("rejects identical units", func(t *testing.T) {
		_, err := NewUnitConversion(tenantID, "kg", "KG", decimal.NewFromInt(1))
		require.Error(t, err)
	})

	t.Run("rejects non-positive factor", func(t *testing.T) {
		_, err := NewUnitConversion(tenantID, "kg", "g", decimal.Zero)
		require.Error(t, err)
	})
}

func TestUnitConversion_Convert(t *testing.T) {
	c, err := NewUnitConversion(uuid.New(), "kg", "g", decimal.NewFromInt(1000))
	require.NoError(t, err)

	assert.Equal(t, "2500", c.Convert(decimal.NewFromFloat(2.5)).String())
}

func TestUnitConversion_UpdateFactor(t *testing.T) {
	c, err := NewUnitConversion(uuid.New(), "box", "pcs", decimal.NewFromInt(12))
	require.NoError(t, err)

	require.NoError(t, c.UpdateFactor(decimal.NewFromInt(24)))
	assert.Equal(t, "24", c.Factor.String())

	require.Error(t, c.UpdateFactor(decimal.NewFromInt(-1)))
}
