package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSaleProfit(t *testing.T) {
	s := Sale{SalePrice: 250, Fees: 25, ShippingCost: 10}
	assert.Equal(t, 95.0, s.Profit(120))

	loss := Sale{SalePrice: 90, Fees: 9}
	assert.Equal(t, -39.0, loss.Profit(120))
}

func TestSaleDaysToSale(t *testing.T) {
	s := Sale{SaleDate: "2025-08-10"}
	assert.Equal(t, 40, s.DaysToSale("2025-07-01"))

	iso := Sale{SaleDate: "2025-08-10T15:30:00Z"}
	assert.Equal(t, 40, iso.DaysToSale("2025-07-01"))

	assert.Equal(t, 0, s.DaysToSale("not a date"))
	assert.Equal(t, 0, Sale{SaleDate: "garbage"}.DaysToSale("2025-07-01"))
}

func TestListingIsActive(t *testing.T) {
	assert.True(t, Listing{Status: "Active"}.IsActive())
	assert.True(t, Listing{Status: "active"}.IsActive())
	assert.False(t, Listing{Status: "Sold"}.IsActive())
	assert.False(t, Listing{}.IsActive())
}
