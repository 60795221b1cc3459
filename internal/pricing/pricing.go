package pricing

import "math"

// Amounts are whole VND. The currency carries no subunit, so int64 holds
// every price the catalog can produce without rounding concerns below the
// final clamp.

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// LineItem is one variant in a cart or order draft.
type LineItem struct {
	UnitPrice int64
	Quantity  int
}

// Voucher is the discount rule fetched by code. MinPurchaseAmount is
// informational here: eligibility is enforced by the commerce API at
// lookup time, not by this package.
type Voucher struct {
	Code              string
	DiscountType      DiscountType
	DiscountValue     float64
	MaxDiscountAmount int64
	MinPurchaseAmount int64
}

// Subtotal sums unit price times quantity over all line items.
func Subtotal(items []LineItem) int64 {
	var sum int64
	for _, it := range items {
		sum += it.UnitPrice * int64(it.Quantity)
	}
	return sum
}

// ComputeTotal returns the payable total for the given lines and an
// optional voucher. Percentage discounts are capped by MaxDiscountAmount,
// fixed discounts are taken verbatim, and the result is rounded to the
// nearest whole unit and clamped at zero. The function is pure: it never
// mutates its inputs and identical inputs always produce identical output.
func ComputeTotal(items []LineItem, voucher *Voucher) int64 {
	subtotal := Subtotal(items)
	if voucher == nil {
		return subtotal
	}

	var discount float64
	if voucher.DiscountType == DiscountPercentage {
		discount = float64(subtotal) * voucher.DiscountValue / 100
		if discount > float64(voucher.MaxDiscountAmount) {
			discount = float64(voucher.MaxDiscountAmount)
		}
	} else {
		discount = voucher.DiscountValue
	}

	total := int64(math.Round(float64(subtotal) - discount))
	if total < 0 {
		return 0
	}
	return total
}

// Discount reports how much a voucher takes off the subtotal after the
// cap and the zero clamp have been applied.
func Discount(items []LineItem, voucher *Voucher) int64 {
	return Subtotal(items) - ComputeTotal(items, voucher)
}
