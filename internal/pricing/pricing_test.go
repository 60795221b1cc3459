package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotal_NoVoucher(t *testing.T) {
	items := []LineItem{
		{UnitPrice: 100000, Quantity: 2},
		{UnitPrice: 50000, Quantity: 1},
	}

	assert.Equal(t, int64(250000), ComputeTotal(items, nil))
	assert.Equal(t, Subtotal(items), ComputeTotal(items, nil))
}

func TestComputeTotal_PercentageCappedByMaxDiscount(t *testing.T) {
	items := []LineItem{
		{UnitPrice: 100000, Quantity: 2},
		{UnitPrice: 50000, Quantity: 1},
	}
	voucher := &Voucher{
		DiscountType:      DiscountPercentage,
		DiscountValue:     10,
		MaxDiscountAmount: 15000,
	}

	// 10% of 250000 is 25000, capped at 15000.
	assert.Equal(t, int64(235000), ComputeTotal(items, voucher))
	assert.Equal(t, int64(15000), Discount(items, voucher))
}

func TestComputeTotal_PercentageUnderCap(t *testing.T) {
	items := []LineItem{{UnitPrice: 200000, Quantity: 1}}
	voucher := &Voucher{
		DiscountType:      DiscountPercentage,
		DiscountValue:     5,
		MaxDiscountAmount: 50000,
	}

	assert.Equal(t, int64(190000), ComputeTotal(items, voucher))
}

func TestComputeTotal_FixedClampedAtZero(t *testing.T) {
	items := []LineItem{
		{UnitPrice: 100000, Quantity: 2},
		{UnitPrice: 50000, Quantity: 1},
	}
	voucher := &Voucher{
		DiscountType:  DiscountFixed,
		DiscountValue: 300000,
	}

	assert.Equal(t, int64(0), ComputeTotal(items, voucher))
}

func TestComputeTotal_HundredPercent(t *testing.T) {
	items := []LineItem{{UnitPrice: 99999, Quantity: 3}}
	voucher := &Voucher{
		DiscountType:      DiscountPercentage,
		DiscountValue:     100,
		MaxDiscountAmount: 1000000,
	}

	total := ComputeTotal(items, voucher)
	assert.GreaterOrEqual(t, total, int64(0))
	assert.LessOrEqual(t, total, Subtotal(items))
}

func TestComputeTotal_EmptyCart(t *testing.T) {
	voucher := &Voucher{DiscountType: DiscountFixed, DiscountValue: 50000}

	assert.Equal(t, int64(0), ComputeTotal(nil, nil))
	assert.Equal(t, int64(0), ComputeTotal(nil, voucher))
}

func TestComputeTotal_Idempotent(t *testing.T) {
	items := []LineItem{
		{UnitPrice: 120000, Quantity: 1},
		{UnitPrice: 80000, Quantity: 4},
	}
	voucher := &Voucher{
		DiscountType:      DiscountPercentage,
		DiscountValue:     25,
		MaxDiscountAmount: 90000,
	}

	first := ComputeTotal(items, voucher)
	second := ComputeTotal(items, voucher)
	require.Equal(t, first, second)

	// Inputs must survive the call untouched.
	assert.Equal(t, int64(120000), items[0].UnitPrice)
	assert.Equal(t, 4, items[1].Quantity)
	assert.Equal(t, float64(25), voucher.DiscountValue)
}

func TestComputeTotal_NeverExceedsSubtotal(t *testing.T) {
	cases := []struct {
		name    string
		items   []LineItem
		voucher *Voucher
	}{
		{
			name:    "zero percent",
			items:   []LineItem{{UnitPrice: 45000, Quantity: 2}},
			voucher: &Voucher{DiscountType: DiscountPercentage, DiscountValue: 0, MaxDiscountAmount: 10000},
		},
		{
			name:    "fixed zero",
			items:   []LineItem{{UnitPrice: 45000, Quantity: 2}},
			voucher: &Voucher{DiscountType: DiscountFixed, DiscountValue: 0},
		},
		{
			name:    "large percentage small cap",
			items:   []LineItem{{UnitPrice: 1000000, Quantity: 10}},
			voucher: &Voucher{DiscountType: DiscountPercentage, DiscountValue: 90, MaxDiscountAmount: 100},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			total := ComputeTotal(tc.items, tc.voucher)
			assert.GreaterOrEqual(t, total, int64(0))
			assert.LessOrEqual(t, total, Subtotal(tc.items))
		})
	}
}
