package dto

import "time"

// CreateWatchlistRequest is the DTO for creating a watchlist.
type CreateWatchlistRequest struct {
	Name string `json:"name"`
}

// UpdateWatchlistRequest is the DTO for renaming a watchlist.
type UpdateWatchlistRequest struct {
	Name string `json:"name"`
}

// AddWatchlistItemRequest is the DTO for adding a symbol to a watchlist.
type AddWatchlistItemRequest struct {
	Symbol string `json:"symbol"`
	Note   string `json:"note"`
}

// WatchlistItemResponse represents one tracked symbol.
type WatchlistItemResponse struct {
	ID     uint   `json:"id"`
	Symbol string `json:"symbol"`
	Note   string `json:"note"`
}

// WatchlistResponse is the DTO for API responses containing a watchlist.
type WatchlistResponse struct {
	ID        uint                    `json:"id"`
	Name      string                  `json:"name"`
	Items     []WatchlistItemResponse `json:"items"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}
