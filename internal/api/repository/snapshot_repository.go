package repository

import (
	"context"
	"time"

	"portfolio-tracker/internal/entity"

	"gorm.io/gorm"
)

// SnapshotRepository defines read access to persisted portfolio snapshots.
type SnapshotRepository interface {
	FindByPortfolio(ctx context.Context, portfolioID uint, since time.Time) ([]entity.PortfolioSnapshot, error)
}

// NewSnapshotRepository creates a new GORM-based snapshot repository.
func NewSnapshotRepository(db *gorm.DB) SnapshotRepository {
	return &snapshotRepository{db: db}
}

type snapshotRepository struct {
	db *gorm.DB
}

func (r *snapshotRepository) FindByPortfolio(ctx context.Context, portfolioID uint, since time.Time) ([]entity.PortfolioSnapshot, error) {
	var snapshots []entity.PortfolioSnapshot
	err := r.db.WithContext(ctx).
		Where("portfolio_id = ? AND snapshot_date >= ?", portfolioID, since).
		Order("snapshot_date ASC").
		Find(&snapshots).Error
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}
