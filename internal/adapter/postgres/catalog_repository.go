package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nurbakyt/cafepos/internal/domain"
	"github.com/nurbakyt/cafepos/internal/interfaces"
)

type catalogRepository struct {
	db DB
}

func NewCatalogRepository(db DB) interfaces.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) LoadItems(ctx context.Context) ([]*domain.MenuItem, error) {
	query := `
		SELECT name, kind, price::text, description, available,
		       cuisine, spice, vegetarian, temperature, volume_ml
		FROM menu_items
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu items: %w", err)
	}
	defer rows.Close()

	var items []*domain.MenuItem
	for rows.Next() {
		var (
			item        domain.MenuItem
			kind        string
			price       string
			cuisine     *string
			spice       *string
			vegetarian  *bool
			temperature *string
			volumeML    *int
		)
		if err := rows.Scan(
			&item.Name, &kind, &price, &item.Description, &item.Available,
			&cuisine, &spice, &vegetarian, &temperature, &volumeML,
		); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}

		item.Price, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("invalid stored price for %q: %w", item.Name, err)
		}

		item.Kind = domain.ItemKind(kind)
		switch item.Kind {
		case domain.KindFood:
			attrs := domain.FoodAttrs{}
			if cuisine != nil {
				attrs.Cuisine = *cuisine
			}
			if spice != nil {
				attrs.Spice = domain.SpiceLevel(*spice)
			}
			if vegetarian != nil {
				attrs.Vegetarian = *vegetarian
			}
			item.Food = &attrs
		case domain.KindDrink:
			attrs := domain.DrinkAttrs{}
			if temperature != nil {
				attrs.Temperature = domain.Temperature(*temperature)
			}
			if volumeML != nil {
				attrs.VolumeML = *volumeML
			}
			item.Drink = &attrs
		}

		items = append(items, &item)
	}

	return items, nil
}

// SaveItems replaces the stored snapshot with the given set in one
// transaction.
func (r *catalogRepository) SaveItems(ctx context.Context, items []*domain.MenuItem) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM menu_items`); err != nil {
		return fmt.Errorf("failed to clear menu items: %w", err)
	}

	query := `
		INSERT INTO menu_items (name, kind, price, description, available,
		                        cuisine, spice, vegetarian, temperature, volume_ml)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	for _, item := range items {
		var (
			cuisine     *string
			spice       *string
			vegetarian  *bool
			temperature *string
			volumeML    *int
		)
		switch item.Kind {
		case domain.KindFood:
			if item.Food != nil {
				cuisine = &item.Food.Cuisine
				s := string(item.Food.Spice)
				spice = &s
				vegetarian = &item.Food.Vegetarian
			}
		case domain.KindDrink:
			if item.Drink != nil {
				temp := string(item.Drink.Temperature)
				temperature = &temp
				volumeML = &item.Drink.VolumeML
			}
		}

		if _, err := tx.Exec(ctx, query,
			item.Name, string(item.Kind), item.Price.String(), item.Description, item.Available,
			cuisine, spice, vegetarian, temperature, volumeML,
		); err != nil {
			return fmt.Errorf("failed to insert menu item %q: %w", item.Name, err)
		}
	}

	return tx.Commit(ctx)
}
