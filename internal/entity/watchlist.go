package entity

import (
	"time"

	"gorm.io/gorm"
)

type Watchlist struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"not null" json:"name"`
	Items     []WatchlistItem `json:"items,omitempty"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Watchlist) TableName() string {
	return "watchlists"
}

type WatchlistItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	WatchlistID uint      `gorm:"not null;index" json:"watchlist_id"`
	Symbol      string    `gorm:"not null" json:"symbol"`
	Note        string    `json:"note"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (WatchlistItem) TableName() string {
	return "watchlist_items"
}
