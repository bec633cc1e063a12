// Package receipt renders human-readable text blocks for receipts,
// checkout summaries and aggregate reports. It holds no state beyond
// the shop identity printed in headers.
package receipt

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nurbakyt/cafepos/internal/app/checkout"
	"github.com/nurbakyt/cafepos/internal/domain"
	"github.com/nurbakyt/cafepos/internal/interfaces"
)

const divider = "=====================\n"

type Renderer struct {
	ShopName string
	Location string
}

func NewRenderer() *Renderer {
	return &Renderer{
		ShopName: "Midnight Cafe",
		Location: "Dhanmondi, Dhaka",
	}
}

// RenderOrder produces the bill for an order in its current state,
// with per-category attribute annotations on every line.
func (r *Renderer) RenderOrder(o *domain.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "---%s---\n", r.ShopName)
	fmt.Fprintf(&b, "---%s---\n", r.Location)
	fmt.Fprintf(&b, "Date: %s\n", o.CreatedAt.Format("2006-01-02"))
	fmt.Fprintf(&b, "Time: %s\n", o.CreatedAt.Format("15:04:05"))
	fmt.Fprintf(&b, "Status: %s\n", o.Status())

	if o.Customer != nil {
		fmt.Fprintf(&b, "Customer: %s\n", o.Customer.Name)
		fmt.Fprintf(&b, "Tier: %s\n", o.Customer.Tier())
	}

	b.WriteString(divider)
	b.WriteString("Your order:\n")
	for _, line := range o.Lines() {
		fmt.Fprintf(&b, "%s [%s] x%d - %s TK\n",
			line.Item.Name, line.Item.Details(), line.Quantity, line.LineTotal().StringFixed(2))
		if line.Instructions != "" {
			fmt.Fprintf(&b, "  * %s\n", line.Instructions)
		}
	}

	b.WriteString(divider)
	fmt.Fprintf(&b, "Subtotal: %s TK\n", o.BilledSubtotal().StringFixed(2))
	if disc := o.DiscountAmount(); disc.IsPositive() {
		fmt.Fprintf(&b, "Discount: -%s TK\n", disc.StringFixed(2))
	}
	fmt.Fprintf(&b, "Total: %s TK\n", o.Total().StringFixed(2))

	if o.Instructions != "" {
		fmt.Fprintf(&b, "Special Instructions: %s\n", o.Instructions)
	}

	return b.String()
}

// RenderConfirmed renders a receipt from the published confirmation
// event, using the frozen totals it carries.
func (r *Renderer) RenderConfirmed(msg interfaces.OrderConfirmedMessage) string {
	var b strings.Builder

	fmt.Fprintf(&b, "---%s---\n", r.ShopName)
	fmt.Fprintf(&b, "---%s---\n", r.Location)
	fmt.Fprintf(&b, "Order: %s\n", msg.OrderID)
	if !msg.ConfirmedAt.IsZero() {
		fmt.Fprintf(&b, "Confirmed: %s\n", msg.ConfirmedAt.Format("2006-01-02 15:04:05"))
	}
	if msg.CustomerName != "" {
		fmt.Fprintf(&b, "Customer: %s\n", msg.CustomerName)
		fmt.Fprintf(&b, "Tier: %s\n", msg.CustomerTier)
	}

	b.WriteString(divider)
	for _, line := range msg.Lines {
		fmt.Fprintf(&b, "%s [%s] x%d - %s TK\n",
			line.Name, line.Details, line.Quantity, line.LineTotal.StringFixed(2))
		if line.Instructions != "" {
			fmt.Fprintf(&b, "  * %s\n", line.Instructions)
		}
	}

	b.WriteString(divider)
	fmt.Fprintf(&b, "Subtotal: %s TK\n", msg.Subtotal.StringFixed(2))
	if msg.Discount.IsPositive() {
		fmt.Fprintf(&b, "Discount: -%s TK\n", msg.Discount.StringFixed(2))
	}
	fmt.Fprintf(&b, "Total: %s TK\n", msg.Total.StringFixed(2))

	if msg.Instructions != "" {
		fmt.Fprintf(&b, "Special Instructions: %s\n", msg.Instructions)
	}

	return b.String()
}

// RenderCheckout shows the payable breakdown, with cash and change
// when payment was taken.
func (r *Renderer) RenderCheckout(sum checkout.Summary, cash *decimal.Decimal) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Subtotal: %s TK\n", sum.Subtotal.StringFixed(2))
	if sum.AutoDiscount.IsPositive() {
		fmt.Fprintf(&b, "Auto Discount: -%s TK\n", sum.AutoDiscount.StringFixed(2))
	}
	if sum.ExtraDiscount.IsPositive() {
		fmt.Fprintf(&b, "Extra Discount: -%s TK\n", sum.ExtraDiscount.StringFixed(2))
	}
	fmt.Fprintf(&b, "Payable: %s TK\n", sum.Payable.StringFixed(2))

	if cash != nil {
		fmt.Fprintf(&b, "Cash: %s TK\n", cash.StringFixed(2))
		if change, ok := sum.ChangeDue(*cash); ok {
			fmt.Fprintf(&b, "Change: %s TK\n", change.StringFixed(2))
		}
	}

	return b.String()
}

// RenderReport formats the aggregate sales report.
func (r *Renderer) RenderReport(revenue decimal.Decimal, popular []interfaces.ItemCount) string {
	var b strings.Builder

	fmt.Fprintf(&b, "---%s Sales Report---\n", r.ShopName)
	fmt.Fprintf(&b, "Total Revenue: %s TK\n", revenue.StringFixed(2))
	b.WriteString("Most Popular Items:\n")
	for i, c := range popular {
		fmt.Fprintf(&b, "%d. %s (%d units)\n", i+1, c.Name, c.Units)
	}

	return b.String()
}
