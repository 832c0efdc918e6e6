package repository

import (
	"context"
	"fmt"

	"phoneprices/scraper/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PriceRepository persists the observed price range per device. NULL price
// columns encode "no price found"; the fetch_failed flag keeps unreachable
// queries distinguishable from empty results.
type PriceRepository interface {
	SavePriceRange(ctx context.Context, result *domain.PriceRange) error
}

type priceRepository struct {
	db *pgxpool.Pool
}

func NewPriceRepository(db *pgxpool.Pool) PriceRepository {
	return &priceRepository{
		db: db,
	}
}

func (r *priceRepository) SavePriceRange(ctx context.Context, result *domain.PriceRange) error {
	var minPrice, maxPrice *float64
	if v, ok := result.Min(); ok {
		minPrice = &v
	}
	if v, ok := result.Max(); ok {
		maxPrice = &v
	}

	query := `
	INSERT INTO price_ranges (model_code, model_name, manufacturer, min_price, max_price, fetch_failed, fetched_at)
	VALUES ($1, $2, $3, $4, $5, $6, now())
	ON CONFLICT (model_code)
	DO UPDATE SET model_name = $2, manufacturer = $3, min_price = $4, max_price = $5, fetch_failed = $6, fetched_at = now()`
	_, err := r.db.Exec(ctx, query,
		result.Device.Key(),
		result.Device.ModelName,
		result.Device.Manufacturer,
		minPrice,
		maxPrice,
		result.FetchFailed,
	)
	if err != nil {
		return fmt.Errorf("failed to save price range: %w", err)
	}

	return nil
}
