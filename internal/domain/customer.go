package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	phonePattern = regexp.MustCompile(`^\d{10,15}$`)
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@.+$`)
)

// Customer accumulates order statistics. Tier and discount rate are
// derived from TotalSpent on demand, never stored.
type Customer struct {
	ID           uuid.UUID
	Name         string
	Age          int
	Gender       string
	Phone        string
	Email        string
	RegisteredAt time.Time
	TotalOrders  int
	TotalSpent   decimal.Decimal
}

func NewCustomer(name string, age int, gender string) (*Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("customer name cannot be empty")
	}
	if age < 0 || age > 150 {
		return nil, fmt.Errorf("age must be between 0 and 150")
	}
	gender = strings.TrimSpace(gender)
	if gender == "" {
		gender = "Unknown"
	}

	return &Customer{
		ID:           uuid.New(),
		Name:         name,
		Age:          age,
		Gender:       gender,
		RegisteredAt: time.Now(),
		TotalSpent:   decimal.Zero,
	}, nil
}

// SetContact validates and stores phone and email. Empty values clear
// the corresponding field.
func (c *Customer) SetContact(phone, email string) error {
	if phone != "" && !phonePattern.MatchString(phone) {
		return fmt.Errorf("phone number must be 10-15 digits")
	}
	if email != "" && !emailPattern.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	c.Phone = phone
	c.Email = email
	return nil
}

// Tier thresholds: Gold >= 5000, Silver >= 2000, Bronze >= 500.
func (c *Customer) Tier() Tier {
	switch {
	case c.TotalSpent.GreaterThanOrEqual(decimal.NewFromInt(5000)):
		return TierGold
	case c.TotalSpent.GreaterThanOrEqual(decimal.NewFromInt(2000)):
		return TierSilver
	case c.TotalSpent.GreaterThanOrEqual(decimal.NewFromInt(500)):
		return TierBronze
	default:
		return TierRegular
	}
}

// DiscountRate returns the tier baseline rate as a fraction of 1.
func (c *Customer) DiscountRate() decimal.Decimal {
	switch c.Tier() {
	case TierGold:
		return decimal.NewFromFloat(0.15)
	case TierSilver:
		return decimal.NewFromFloat(0.10)
	case TierBronze:
		return decimal.NewFromFloat(0.05)
	default:
		return decimal.Zero
	}
}

// RecordOrder updates cumulative statistics after a confirmation.
func (c *Customer) RecordOrder(amount decimal.Decimal) {
	c.TotalOrders++
	c.TotalSpent = c.TotalSpent.Add(amount)
}

func (c *Customer) String() string {
	return fmt.Sprintf("Customer: %s, Age: %d, Gender: %s, Tier: %s",
		c.Name, c.Age, c.Gender, c.Tier())
}
