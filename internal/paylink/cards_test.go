package paylink

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterCardBrands(t *testing.T) {
	t.Run("DropsUnknownBrands", func(t *testing.T) {
		assert.Equal(t, "mada,tabby", FilterCardBrands("mada,bogus,tabby"))
	})

	t.Run("AllInvalidFallsBackToDefault", func(t *testing.T) {
		assert.Equal(t, DefaultCardBrands(), FilterCardBrands("bogus,invalid"))
	})

	t.Run("EmptyInputFallsBackToDefault", func(t *testing.T) {
		assert.Equal(t, DefaultCardBrands(), FilterCardBrands(""))
	})

	t.Run("KeepsFullValidList", func(t *testing.T) {
		assert.Equal(t, DefaultCardBrands(), FilterCardBrands(DefaultCardBrands()))
	})

	t.Run("TrimsSpaces", func(t *testing.T) {
		assert.Equal(t, "mada,stcpay", FilterCardBrands(" mada , stcpay "))
	})
}

func TestCardBrandsDisplay(t *testing.T) {
	display := CardBrandsDisplay(DefaultCardBrands())
	assert.Contains(t, display, "Visa/Mastercard")
	assert.Contains(t, display, "mada")
	assert.NotContains(t, display, "visaMastercard")

	assert.Equal(t, "mada, tabby", CardBrandsDisplay("mada,tabby"))
}
