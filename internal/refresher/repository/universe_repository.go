package repository

import (
	"context"
	"sort"

	"portfolio-tracker/internal/entity"

	"gorm.io/gorm"
)

// UniverseRepository resolves the set of symbols the refresher must keep
// fresh: the tracked stock table, every watchlist item and every holding.
type UniverseRepository interface {
	AllSymbols(ctx context.Context) ([]string, error)
}

// NewUniverseRepository creates a new GORM-based universe repository.
func NewUniverseRepository(db *gorm.DB) UniverseRepository {
	return &universeRepository{db: db}
}

type universeRepository struct {
	db *gorm.DB
}

func (r *universeRepository) AllSymbols(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})

	var stockSymbols []string
	if err := r.db.WithContext(ctx).Model(&entity.Stock{}).Distinct().Pluck("symbol", &stockSymbols).Error; err != nil {
		return nil, err
	}
	var watchlistSymbols []string
	if err := r.db.WithContext(ctx).Model(&entity.WatchlistItem{}).Distinct().Pluck("symbol", &watchlistSymbols).Error; err != nil {
		return nil, err
	}
	var holdingSymbols []string
	if err := r.db.WithContext(ctx).Model(&entity.Holding{}).Distinct().Pluck("symbol", &holdingSymbols).Error; err != nil {
		return nil, err
	}

	for _, group := range [][]string{stockSymbols, watchlistSymbols, holdingSymbols} {
		for _, s := range group {
			seen[s] = struct{}{}
		}
	}

	symbols := make([]string, 0, len(seen))
	for s := range seen {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols, nil
}
