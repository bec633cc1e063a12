package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func testFood(t *testing.T, name string, price int64) *MenuItem {
	t.Helper()
	item, err := NewFood(name, decimal.NewFromInt(price), FoodAttrs{
		Cuisine: "Bangladeshi",
		Spice:   SpiceMedium,
	})
	if err != nil {
		t.Fatalf("NewFood(%q): %v", name, err)
	}
	return item
}

func testDrink(t *testing.T, name string, price int64) *MenuItem {
	t.Helper()
	item, err := NewDrink(name, decimal.NewFromInt(price), DrinkAttrs{
		Temperature: TempCold,
		VolumeML:    250,
	})
	if err != nil {
		t.Fatalf("NewDrink(%q): %v", name, err)
	}
	return item
}

func testCustomerWithSpent(t *testing.T, spent int64) *Customer {
	t.Helper()
	c, err := NewCustomer("Anika", 28, "Female")
	if err != nil {
		t.Fatalf("NewCustomer: %v", err)
	}
	c.TotalSpent = decimal.NewFromInt(spent)
	return c
}

func TestAddLine_MergesQuantities(t *testing.T) {
	order := NewOrder(nil)
	coffee := testDrink(t, "Coffee", 120)

	if err := order.AddLine(coffee, 2); err != nil {
		t.Fatalf("AddLine: %v", err)
	}
	if err := order.AddLine(coffee, 3); err != nil {
		t.Fatalf("AddLine: %v", err)
	}

	lines := order.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", lines[0].Quantity)
	}
	if order.TotalUnits() != 5 {
		t.Errorf("expected 5 total units, got %d", order.TotalUnits())
	}
}

func TestAddLine_Validation(t *testing.T) {
	order := NewOrder(nil)
	coffee := testDrink(t, "Coffee", 120)

	if err := order.AddLine(coffee, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity, got %v", err)
	}
	if err := order.AddLine(coffee, -3); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity, got %v", err)
	}

	coffee.Available = false
	if err := order.AddLine(coffee, 1); !errors.Is(err, ErrUnavailableItem) {
		t.Errorf("expected ErrUnavailableItem, got %v", err)
	}

	// Failed adds must leave no partial state behind.
	if !order.IsEmpty() {
		t.Error("expected order to stay empty after failed adds")
	}
	if order.UndoLastUnit() {
		t.Error("expected empty history after failed adds")
	}
}

func TestUndoLastUnit_NetQuantities(t *testing.T) {
	order := NewOrder(nil)
	coffee := testDrink(t, "Coffee", 120)
	pizza := testFood(t, "Pizza", 450)

	order.AddLine(coffee, 2)
	order.AddLine(pizza, 1)
	order.AddLine(coffee, 1)

	// History is LIFO: coffee, pizza, coffee, coffee from the top.
	if !order.UndoLastUnit() {
		t.Fatal("expected undo to succeed")
	}
	if line, _ := order.Line("Coffee"); line.Quantity != 2 {
		t.Errorf("expected coffee quantity 2, got %d", line.Quantity)
	}

	if !order.UndoLastUnit() {
		t.Fatal("expected undo to succeed")
	}
	if _, ok := order.Line("Pizza"); ok {
		t.Error("expected pizza line removed at quantity 0")
	}

	order.UndoLastUnit()
	order.UndoLastUnit()
	if !order.IsEmpty() {
		t.Error("expected empty order after undoing every unit")
	}
	if order.UndoLastUnit() {
		t.Error("expected undo on empty history to return false")
	}
}

func TestUndoLastUnit_EmptyHistoryIsNoop(t *testing.T) {
	order := NewOrder(nil)
	if order.UndoLastUnit() {
		t.Error("expected false on empty history")
	}
	if !order.IsEmpty() {
		t.Error("expected no mutation")
	}
}

func TestSubtotal_TracksLiveCatalogPrice(t *testing.T) {
	order := NewOrder(nil)
	coffee := testDrink(t, "Coffee", 100)
	order.AddLine(coffee, 2)

	if got := order.Subtotal(); !got.Equal(decimal.NewFromInt(200)) {
		t.Errorf("expected subtotal 200, got %s", got)
	}

	// Price edits through the catalog are visible to pending orders.
	coffee.SetPrice(decimal.NewFromInt(150))
	if got := order.Subtotal(); !got.Equal(decimal.NewFromInt(300)) {
		t.Errorf("expected subtotal 300 after price change, got %s", got)
	}
}

func TestConfirm_FreezesTotal(t *testing.T) {
	order := NewOrder(nil)
	coffee := testDrink(t, "Coffee", 100)
	order.AddLine(coffee, 2)

	if err := order.Confirm(); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if got := order.Total(); !got.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("expected frozen total 200, got %s", got)
	}

	// Catalog price changes after confirmation must not alter the
	// reported total, even though the subtotal stays live.
	coffee.SetPrice(decimal.NewFromInt(999))
	if got := order.Total(); !got.Equal(decimal.NewFromInt(200)) {
		t.Errorf("expected total to stay 200, got %s", got)
	}
	if got := order.Subtotal(); !got.Equal(decimal.NewFromInt(1998)) {
		t.Errorf("expected live subtotal 1998, got %s", got)
	}
}

func TestConfirm_TierCrossingKeepsBilledAmountsReconciled(t *testing.T) {
	// 400 prior spend: Regular, no tier discount. Confirming a 1000
	// order lifts the customer to Bronze, but the billed amounts were
	// frozen before the stats update and must still reconcile.
	customer := testCustomerWithSpent(t, 400)
	order := NewOrder(customer)
	order.AddLine(testFood(t, "Pizza", 1000), 1)

	if err := order.Confirm(); err != nil {
		t.Fatalf("Confirm: %v", err)
	}

	if customer.Tier() != TierBronze {
		t.Fatalf("expected Bronze after confirmation, got %s", customer.Tier())
	}
	if got := order.DiscountAmount(); !got.IsZero() {
		t.Errorf("expected frozen discount 0, got %s", got)
	}
	if got := order.BilledSubtotal(); !got.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected billed subtotal 1000, got %s", got)
	}
	billed := order.BilledSubtotal().Sub(order.DiscountAmount())
	if !billed.Equal(order.Total()) {
		t.Errorf("expected subtotal - discount = total, got %s - %s != %s",
			order.BilledSubtotal(), order.DiscountAmount(), order.Total())
	}
}

func TestBilledSubtotal_FrozenAfterConfirm(t *testing.T) {
	order := NewOrder(nil)
	coffee := testDrink(t, "Coffee", 100)
	order.AddLine(coffee, 2)

	// Pre-confirm the billed subtotal tracks the live one.
	if got := order.BilledSubtotal(); !got.Equal(decimal.NewFromInt(200)) {
		t.Errorf("expected billed subtotal 200, got %s", got)
	}

	if err := order.Confirm(); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	coffee.SetPrice(decimal.NewFromInt(999))

	if got := order.BilledSubtotal(); !got.Equal(decimal.NewFromInt(200)) {
		t.Errorf("expected billed subtotal to stay 200, got %s", got)
	}
	if got := order.Subtotal(); !got.Equal(decimal.NewFromInt(1998)) {
		t.Errorf("expected live subtotal 1998, got %s", got)
	}
}

func TestDiscount_MaxNotSum(t *testing.T) {
	// Silver customer: 10% tier rate. Manual discount 15%, locked by
	// confirmation. On a 1000 subtotal the discount must be 150, the
	// larger of the two, never 250.
	customer := testCustomerWithSpent(t, 2000)
	order := NewOrder(customer)
	pizza := testFood(t, "Pizza", 1000)
	order.AddLine(pizza, 1)

	if err := order.SetDiscountPercent(15); err != nil {
		t.Fatalf("SetDiscountPercent: %v", err)
	}

	// Pre-lock the manual percent is stored but has no effect.
	if got := order.DiscountAmount(); !got.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected pre-lock discount 100 (tier only), got %s", got)
	}

	if err := order.Confirm(); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if got := order.DiscountAmount(); !got.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected discount 150, got %s", got)
	}
	if got := order.Total(); !got.Equal(decimal.NewFromInt(850)) {
		t.Errorf("expected total 850, got %s", got)
	}
}

func TestSetDiscountPercent_Range(t *testing.T) {
	order := NewOrder(nil)
	if err := order.SetDiscountPercent(-1); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange for -1, got %v", err)
	}
	if err := order.SetDiscountPercent(101); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange for 101, got %v", err)
	}
	if err := order.SetDiscountPercent(100); err != nil {
		t.Errorf("expected 100 to be accepted, got %v", err)
	}
}

func TestConfirm_EmptyOrder(t *testing.T) {
	order := NewOrder(nil)
	if err := order.Confirm(); !errors.Is(err, ErrEmptyOrder) {
		t.Fatalf("expected ErrEmptyOrder, got %v", err)
	}
	if order.Status() != StatusPending {
		t.Errorf("expected status to stay pending, got %s", order.Status())
	}
	if order.DiscountLocked() {
		t.Error("expected discount to stay unlocked after failed confirm")
	}
}

func TestConfirm_UpdatesCustomerStats(t *testing.T) {
	customer := testCustomerWithSpent(t, 0)
	order := NewOrder(customer)
	order.AddLine(testFood(t, "Biryani", 300), 2)

	if err := order.Confirm(); err != nil {
		t.Fatalf("Confirm: %v", err)
	}

	if customer.TotalOrders != 1 {
		t.Errorf("expected 1 order recorded, got %d", customer.TotalOrders)
	}
	if !customer.TotalSpent.Equal(decimal.NewFromInt(600)) {
		t.Errorf("expected spend 600, got %s", customer.TotalSpent)
	}
	if order.Status() != StatusConfirmed {
		t.Errorf("expected confirmed, got %s", order.Status())
	}
	if !order.DiscountLocked() {
		t.Error("expected discount locked after confirm")
	}
}

func TestConfirm_TerminalStates(t *testing.T) {
	order := NewOrder(nil)
	order.AddLine(testDrink(t, "Tea", 50), 1)
	order.Cancel()

	if err := order.Confirm(); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Errorf("expected ErrInvalidStatusTransition, got %v", err)
	}

	// Cancel on a terminal order is allowed and has no further effect.
	order.Cancel()
	if order.Status() != StatusCancelled {
		t.Errorf("expected cancelled, got %s", order.Status())
	}
}

func TestCancel_DoesNotReopenConfirmed(t *testing.T) {
	order := NewOrder(nil)
	order.AddLine(testDrink(t, "Tea", 50), 1)
	if err := order.Confirm(); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	order.Cancel()
	if order.Status() != StatusConfirmed {
		t.Errorf("expected confirmed to stay terminal, got %s", order.Status())
	}
}

func TestClear_ResetsLinesHistoryDiscount(t *testing.T) {
	order := NewOrder(nil)
	order.AddLine(testDrink(t, "Coffee", 100), 3)
	order.SetDiscountPercent(20)
	order.Instructions = "no sugar"

	order.Clear()

	if !order.IsEmpty() {
		t.Error("expected no lines after clear")
	}
	if order.UndoLastUnit() {
		t.Error("expected empty history after clear")
	}
	if order.DiscountPercent() != 0 {
		t.Errorf("expected discount percent reset, got %v", order.DiscountPercent())
	}
	if order.Instructions != "" {
		t.Errorf("expected instructions reset, got %q", order.Instructions)
	}
	if order.Status() != StatusPending {
		t.Errorf("expected status untouched, got %s", order.Status())
	}
}

func TestSetLineInstructions(t *testing.T) {
	order := NewOrder(nil)
	order.AddLine(testFood(t, "Pasta", 350), 1)

	if err := order.SetLineInstructions("pasta", "extra cheese"); err != nil {
		t.Fatalf("SetLineInstructions: %v", err)
	}
	line, _ := order.Line("Pasta")
	if line.Instructions != "extra cheese" {
		t.Errorf("expected instructions stored, got %q", line.Instructions)
	}

	if err := order.SetLineInstructions("Sushi", "x"); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
}
