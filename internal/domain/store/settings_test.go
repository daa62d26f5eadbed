package store

import (
	"testing"

	"github.com/mveges/grocery/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, "M-Veges Grocery Store", s.Name)
	assert.Equal(t, "Nairobi, Kenya", s.Location)
	assert.Equal(t, valueobject.KES, s.Currency)
	assert.True(t, s.IsOpen)
	assert.Equal(t, "Open", s.Status())
}

func TestNewSettings(t *testing.T) {
	t.Run("valid settings", func(t *testing.T) {
		s, err := NewSettings(" Mama Mboga ", "Mombasa", "usd", false)
		require.NoError(t, err)
		assert.Equal(t, "Mama Mboga", s.Name)
		assert.Equal(t, "Mombasa", s.Location)
		assert.Equal(t, valueobject.USD, s.Currency)
		assert.Equal(t, "Closed", s.Status())
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := NewSettings("", "Nairobi", "KES", true)
		assert.ErrorIs(t, err, ErrInvalidSettings)
	})

	t.Run("unknown currency", func(t *testing.T) {
		_, err := NewSettings("Store", "Nairobi", "XYZW", true)
		assert.ErrorIs(t, err, ErrInvalidSettings)
	})
}
