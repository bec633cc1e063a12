package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FoodAttrs carries the attributes specific to food items.
type FoodAttrs struct {
	Cuisine    string
	Spice      SpiceLevel
	Vegetarian bool
}

// DrinkAttrs carries the attributes specific to drink items.
type DrinkAttrs struct {
	Temperature Temperature
	VolumeML    int
}

// MenuItem is a purchasable catalog entry. Exactly one of Food or
// Drink is set, matching Kind. Orders reference items by pointer, so
// price and availability edits are immediately visible to pending
// orders.
type MenuItem struct {
	Name        string
	Price       decimal.Decimal
	Description string
	Available   bool
	Kind        ItemKind
	Food        *FoodAttrs
	Drink       *DrinkAttrs
}

func NewFood(name string, price decimal.Decimal, attrs FoodAttrs) (*MenuItem, error) {
	item := &MenuItem{
		Name:      name,
		Price:     price,
		Available: true,
		Kind:      KindFood,
		Food:      &attrs,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

func NewDrink(name string, price decimal.Decimal, attrs DrinkAttrs) (*MenuItem, error) {
	item := &MenuItem{
		Name:      name,
		Price:     price,
		Available: true,
		Kind:      KindDrink,
		Drink:     &attrs,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

func (i *MenuItem) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("item name cannot be empty")
	}
	if i.Price.IsNegative() {
		return fmt.Errorf("item price cannot be negative")
	}

	switch i.Kind {
	case KindFood:
		if i.Food == nil {
			return fmt.Errorf("food item %q is missing food attributes", i.Name)
		}
		switch i.Food.Spice {
		case SpiceMild, SpiceMedium, SpiceHot:
		default:
			return fmt.Errorf("spice level must be mild, medium or hot")
		}
	case KindDrink:
		if i.Drink == nil {
			return fmt.Errorf("drink item %q is missing drink attributes", i.Name)
		}
		switch i.Drink.Temperature {
		case TempHot, TempCold, TempRoom:
		default:
			return fmt.Errorf("temperature must be hot, cold or room")
		}
		if i.Drink.VolumeML <= 0 {
			return fmt.Errorf("drink volume must be positive")
		}
	default:
		return fmt.Errorf("unknown item kind %q", i.Kind)
	}

	return nil
}

// Category returns the display name of the item's kind.
func (i *MenuItem) Category() string {
	switch i.Kind {
	case KindFood:
		return "Food"
	case KindDrink:
		return "Drinks"
	default:
		return string(i.Kind)
	}
}

// DiscountValue computes the per-item discount amount for a percent.
// Drinks get a 10% extra multiplier on top of the standard rate.
func (i *MenuItem) DiscountValue(percent float64) decimal.Decimal {
	base := i.Price.Mul(decimal.NewFromFloat(percent)).Div(decimal.NewFromInt(100))
	if i.Kind == KindDrink {
		return base.Mul(decimal.NewFromFloat(1.1))
	}
	return base
}

// SetPrice applies a price edit from catalog management.
func (i *MenuItem) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return fmt.Errorf("item price cannot be negative")
	}
	i.Price = price
	return nil
}

// Details renders the category-specific attributes for receipts,
// e.g. "Italian, hot, Veg" or "Served cold in 250ml".
func (i *MenuItem) Details() string {
	switch i.Kind {
	case KindFood:
		if i.Food == nil {
			return i.Category()
		}
		veg := "Non-Veg"
		if i.Food.Vegetarian {
			veg = "Veg"
		}
		return fmt.Sprintf("%s, %s, %s", i.Food.Cuisine, i.Food.Spice, veg)
	case KindDrink:
		if i.Drink == nil {
			return i.Category()
		}
		return fmt.Sprintf("Served %s in %dml", i.Drink.Temperature, i.Drink.VolumeML)
	default:
		return i.Category()
	}
}

func (i *MenuItem) String() string {
	return fmt.Sprintf("%s - %s (%s)", i.Name, i.Price.StringFixed(2), i.Category())
}
