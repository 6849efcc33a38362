package repository

import (
	"context"

	"portfolio-tracker/internal/entity"

	"gorm.io/gorm"
)

// WatchlistRepository defines the interface for watchlist data operations.
type WatchlistRepository interface {
	Create(ctx context.Context, watchlist *entity.Watchlist) error
	FindByID(ctx context.Context, id uint) (*entity.Watchlist, error)
	FindAll(ctx context.Context) ([]entity.Watchlist, error)
	Update(ctx context.Context, watchlist *entity.Watchlist) error
	Delete(ctx context.Context, id uint) error
	AddItem(ctx context.Context, item *entity.WatchlistItem) error
	RemoveItem(ctx context.Context, watchlistID, itemID uint) error
	FindAllSymbols(ctx context.Context) ([]string, error)
}

// NewWatchlistRepository creates a new GORM-based watchlist repository.
func NewWatchlistRepository(db *gorm.DB) WatchlistRepository {
	return &watchlistRepository{db: db}
}

type watchlistRepository struct {
	db *gorm.DB
}

func (r *watchlistRepository) Create(ctx context.Context, watchlist *entity.Watchlist) error {
	return r.db.WithContext(ctx).Create(watchlist).Error
}

func (r *watchlistRepository) FindByID(ctx context.Context, id uint) (*entity.Watchlist, error) {
	var watchlist entity.Watchlist
	if err := r.db.WithContext(ctx).Preload("Items").First(&watchlist, id).Error; err != nil {
		return nil, err
	}
	return &watchlist, nil
}

func (r *watchlistRepository) FindAll(ctx context.Context) ([]entity.Watchlist, error) {
	var watchlists []entity.Watchlist
	if err := r.db.WithContext(ctx).Preload("Items").Find(&watchlists).Error; err != nil {
		return nil, err
	}
	return watchlists, nil
}

func (r *watchlistRepository) Update(ctx context.Context, watchlist *entity.Watchlist) error {
	return r.db.WithContext(ctx).Save(watchlist).Error
}

func (r *watchlistRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("watchlist_id = ?", id).Delete(&entity.WatchlistItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Watchlist{}, id).Error
	})
}

func (r *watchlistRepository) AddItem(ctx context.Context, item *entity.WatchlistItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *watchlistRepository) RemoveItem(ctx context.Context, watchlistID, itemID uint) error {
	return r.db.WithContext(ctx).
		Where("watchlist_id = ?", watchlistID).
		Delete(&entity.WatchlistItem{}, itemID).Error
}

// FindAllSymbols returns the distinct symbols across every watchlist.
func (r *watchlistRepository) FindAllSymbols(ctx context.Context) ([]string, error) {
	var symbols []string
	err := r.db.WithContext(ctx).
		Model(&entity.WatchlistItem{}).
		Distinct("symbol").
		Pluck("symbol", &symbols).Error
	if err != nil {
		return nil, err
	}
	return symbols, nil
}
