package repository

import (
	"context"
	"time"

	"portfolio-tracker/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PortfolioRepository is the read side the snapshot and alert jobs need:
// portfolios with holdings, holdings with alerts armed, and snapshot writes.
type PortfolioRepository interface {
	FindAllWithHoldings(ctx context.Context) ([]entity.Portfolio, error)
	FindHoldingsWithAlerts(ctx context.Context) ([]entity.Holding, error)
	MarkAlertSent(ctx context.Context, holdingID uint, at time.Time) error
	UpsertSnapshot(ctx context.Context, snapshot *entity.PortfolioSnapshot) error
}

// NewPortfolioRepository creates a new GORM-based portfolio repository.
func NewPortfolioRepository(db *gorm.DB) PortfolioRepository {
	return &portfolioRepository{db: db}
}

type portfolioRepository struct {
	db *gorm.DB
}

func (r *portfolioRepository) FindAllWithHoldings(ctx context.Context) ([]entity.Portfolio, error) {
	var portfolios []entity.Portfolio
	if err := r.db.WithContext(ctx).Preload("Holdings").Find(&portfolios).Error; err != nil {
		return nil, err
	}
	return portfolios, nil
}

// FindHoldingsWithAlerts returns holdings with price alerts armed and at
// least one threshold configured.
func (r *portfolioRepository) FindHoldingsWithAlerts(ctx context.Context) ([]entity.Holding, error) {
	var holdings []entity.Holding
	err := r.db.WithContext(ctx).
		Where("price_alert = ? AND (target_price IS NOT NULL OR stop_price IS NOT NULL)", true).
		Find(&holdings).Error
	if err != nil {
		return nil, err
	}
	return holdings, nil
}

func (r *portfolioRepository) MarkAlertSent(ctx context.Context, holdingID uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entity.Holding{}).
		Where("id = ?", holdingID).
		Update("last_alert_at", at).Error
}

// UpsertSnapshot writes the day's valuation, replacing an earlier run for the
// same portfolio and date so re-runs stay idempotent.
func (r *portfolioRepository) UpsertSnapshot(ctx context.Context, snapshot *entity.PortfolioSnapshot) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "portfolio_id"}, {Name: "snapshot_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_value", "cost_basis", "gain", "gain_percent", "positions",
		}),
	}).Create(snapshot).Error
}
