package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/nurbakyt/cafepos/internal/domain"
)

// Calculator is the checkout-level promotion layer. It sits above the
// order's own tier/manual discount and consumes the order total as its
// subtotal. Its two discounts stack additively, unlike the order
// layer's max rule; the two layers are never merged.
type Calculator struct {
	threshold decimal.Decimal
	rate      decimal.Decimal
}

// NewCalculator configures the auto discount: orders whose total
// reaches threshold get ratePercent off.
func NewCalculator(threshold, ratePercent float64) *Calculator {
	return &Calculator{
		threshold: decimal.NewFromFloat(threshold),
		rate:      decimal.NewFromFloat(ratePercent),
	}
}

// Summary is the payable breakdown shown at checkout.
type Summary struct {
	Subtotal      decimal.Decimal
	AutoDiscount  decimal.Decimal
	ExtraDiscount decimal.Decimal
	Payable       decimal.Decimal
}

// Summarize computes the payable amount for an order total plus a
// manually entered extra percent.
func (c *Calculator) Summarize(orderTotal decimal.Decimal, extraPercent float64) (Summary, error) {
	if extraPercent < 0 || extraPercent > 100 {
		return Summary{}, domain.ErrInvalidRange
	}

	hundred := decimal.NewFromInt(100)

	auto := decimal.Zero
	if orderTotal.GreaterThanOrEqual(c.threshold) {
		auto = orderTotal.Mul(c.rate).Div(hundred)
	}
	extra := orderTotal.Mul(decimal.NewFromFloat(extraPercent)).Div(hundred)

	return Summary{
		Subtotal:      orderTotal,
		AutoDiscount:  auto,
		ExtraDiscount: extra,
		Payable:       orderTotal.Sub(auto).Sub(extra),
	}, nil
}

// ChangeDue reports the change for cash tendered, and false when the
// cash does not cover the payable amount.
func (s Summary) ChangeDue(cash decimal.Decimal) (decimal.Decimal, bool) {
	if cash.LessThan(s.Payable) {
		return decimal.Zero, false
	}
	return cash.Sub(s.Payable), true
}
