package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLine references a shared catalog item. The line total is always
// computed live from the current item price, never cached here.
type OrderLine struct {
	Item         *MenuItem
	Quantity     int
	Instructions string
}

func (l *OrderLine) LineTotal() decimal.Decimal {
	return l.Item.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order is an insertion-ordered aggregation of lines keyed by item
// name, plus an append-only history of unit additions that backs
// single-unit undo. The line map and the history are mutated together
// within one operation, never independently.
type Order struct {
	ID           uuid.UUID
	Customer     *Customer
	CreatedAt    time.Time
	Instructions string

	status          Status
	lines           []*OrderLine
	index           map[string]*OrderLine
	history         []string
	discountPercent   float64
	discountLocked    bool
	confirmedAt       *time.Time
	confirmedSubtotal *decimal.Decimal
	confirmedDiscount *decimal.Decimal
	confirmedTotal    *decimal.Decimal
}

func NewOrder(customer *Customer) *Order {
	return &Order{
		ID:        uuid.New(),
		Customer:  customer,
		CreatedAt: time.Now(),
		status:    StatusPending,
		index:     make(map[string]*OrderLine),
	}
}

func (o *Order) Status() Status { return o.status }

func (o *Order) IsTerminal() bool {
	return o.status == StatusConfirmed || o.status == StatusCompleted || o.status == StatusCancelled
}

// AddLine merges quantity into the existing line for the item, or
// appends a new line. One history entry is recorded per unit added.
// Validation happens before any mutation.
func (o *Order) AddLine(item *MenuItem, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if !item.Available {
		return ErrUnavailableItem
	}

	key := lineKey(item.Name)
	line, ok := o.index[key]
	if !ok {
		line = &OrderLine{Item: item}
		o.index[key] = line
		o.lines = append(o.lines, line)
	}
	line.Quantity += quantity

	for i := 0; i < quantity; i++ {
		o.history = append(o.history, key)
	}
	return nil
}

// UndoLastUnit pops the most recent addition and decrements that line
// by one unit, dropping the line when it reaches zero. Returns false
// without mutating anything when there is nothing to undo.
func (o *Order) UndoLastUnit() bool {
	if len(o.history) == 0 {
		return false
	}

	last := o.history[len(o.history)-1]
	o.history = o.history[:len(o.history)-1]

	line, ok := o.index[last]
	if !ok {
		return true
	}
	line.Quantity--
	if line.Quantity <= 0 {
		delete(o.index, last)
		for i, l := range o.lines {
			if l == line {
				o.lines = append(o.lines[:i], o.lines[i+1:]...)
				break
			}
		}
	}
	return true
}

// Clear empties lines, history, discount percent and instructions.
// Status is untouched.
func (o *Order) Clear() {
	o.lines = nil
	o.index = make(map[string]*OrderLine)
	o.history = nil
	o.discountPercent = 0
	o.Instructions = ""
}

// SetDiscountPercent stores the manual percent. It can be edited at
// any time, but it only affects pricing once the discount is locked
// by Confirm.
func (o *Order) SetDiscountPercent(percent float64) error {
	if percent < 0 || percent > 100 {
		return ErrInvalidRange
	}
	o.discountPercent = percent
	return nil
}

func (o *Order) DiscountPercent() float64 { return o.discountPercent }
func (o *Order) DiscountLocked() bool     { return o.discountLocked }

func (o *Order) SetLineInstructions(itemName, instructions string) error {
	line, ok := o.index[lineKey(itemName)]
	if !ok {
		return ErrItemNotFound
	}
	line.Instructions = instructions
	return nil
}

// Lines returns the order lines in insertion order.
func (o *Order) Lines() []*OrderLine {
	out := make([]*OrderLine, len(o.lines))
	copy(out, o.lines)
	return out
}

func (o *Order) Line(itemName string) (*OrderLine, bool) {
	line, ok := o.index[lineKey(itemName)]
	return line, ok
}

func (o *Order) IsEmpty() bool { return len(o.lines) == 0 }

func (o *Order) TotalUnits() int {
	n := 0
	for _, l := range o.lines {
		n += l.Quantity
	}
	return n
}

// Subtotal is always derived live from current catalog prices, even
// after confirmation.
func (o *Order) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range o.lines {
		sum = sum.Add(l.LineTotal())
	}
	return sum
}

// BilledSubtotal returns the subtotal frozen at confirmation for
// confirmed orders, and the live subtotal otherwise. Receipts and
// persisted rows use it so that subtotal, discount and total always
// reconcile.
func (o *Order) BilledSubtotal() decimal.Decimal {
	if o.confirmedSubtotal != nil {
		return *o.confirmedSubtotal
	}
	return o.Subtotal()
}

// DiscountAmount is max(tier discount, manual discount), never their
// sum. The manual percent counts only once the discount is locked.
// Confirmed orders return the amount frozen at confirmation; the
// customer's tier keeps moving afterwards, the billed discount does
// not.
func (o *Order) DiscountAmount() decimal.Decimal {
	if o.confirmedDiscount != nil {
		return *o.confirmedDiscount
	}
	subtotal := o.Subtotal()

	tierDisc := decimal.Zero
	if o.Customer != nil {
		tierDisc = subtotal.Mul(o.Customer.DiscountRate())
	}

	manualDisc := decimal.Zero
	if o.discountLocked {
		manualDisc = subtotal.Mul(decimal.NewFromFloat(o.discountPercent)).Div(decimal.NewFromInt(100))
	}

	if tierDisc.GreaterThanOrEqual(manualDisc) {
		return tierDisc
	}
	return manualDisc
}

// Total returns the frozen confirmation-time total for confirmed
// orders, and the live subtotal minus discount otherwise.
func (o *Order) Total() decimal.Decimal {
	if o.confirmedTotal != nil {
		return *o.confirmedTotal
	}
	return o.Subtotal().Sub(o.DiscountAmount())
}

func (o *Order) ConfirmedAt() *time.Time { return o.confirmedAt }

// Confirm transitions the order to confirmed, locks the manual
// discount so it starts to apply, freezes the subtotal, discount and
// total computed at this instant, and updates the customer's
// cumulative statistics. The amounts are frozen before RecordOrder so
// that a tier crossing caused by this very order cannot change them.
func (o *Order) Confirm() error {
	if !o.canTransitionTo(StatusConfirmed) {
		return ErrInvalidStatusTransition
	}
	if o.IsEmpty() {
		return ErrEmptyOrder
	}

	o.status = StatusConfirmed
	o.discountLocked = true

	subtotal := o.Subtotal()
	discount := o.DiscountAmount()
	total := subtotal.Sub(discount)
	o.confirmedSubtotal = &subtotal
	o.confirmedDiscount = &discount
	o.confirmedTotal = &total
	now := time.Now()
	o.confirmedAt = &now

	if o.Customer != nil {
		o.Customer.RecordOrder(total)
	}
	return nil
}

// Cancel never errors. Calling it on an already-terminal order has no
// further effect.
func (o *Order) Cancel() {
	if o.canTransitionTo(StatusCancelled) {
		o.status = StatusCancelled
	}
}

func (o *Order) canTransitionTo(newStatus Status) bool {
	validTransitions := map[Status][]Status{
		StatusPending:   {StatusConfirmed, StatusCancelled},
		StatusConfirmed: {},
		StatusCompleted: {},
		StatusCancelled: {},
	}

	for _, s := range validTransitions[o.status] {
		if s == newStatus {
			return true
		}
	}
	return false
}

// CountsForRevenue reports whether the order participates in revenue
// and popularity aggregates.
func (o *Order) CountsForRevenue() bool {
	return o.status == StatusConfirmed || o.status == StatusCompleted
}

func lineKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
