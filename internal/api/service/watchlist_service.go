package service

import (
	"context"
	"strings"

	"portfolio-tracker/internal/api/dto"
	"portfolio-tracker/internal/api/repository"
	"portfolio-tracker/internal/entity"
	"portfolio-tracker/pkg/logger"
)

// WatchlistService defines the interface for managing watchlists.
type WatchlistService interface {
	CreateWatchlist(ctx context.Context, req *dto.CreateWatchlistRequest) (*dto.WatchlistResponse, error)
	GetWatchlistByID(ctx context.Context, id uint) (*dto.WatchlistResponse, error)
	GetAllWatchlists(ctx context.Context) ([]*dto.WatchlistResponse, error)
	UpdateWatchlist(ctx context.Context, id uint, req *dto.UpdateWatchlistRequest) (*dto.WatchlistResponse, error)
	DeleteWatchlist(ctx context.Context, id uint) error
	AddItem(ctx context.Context, watchlistID uint, req *dto.AddWatchlistItemRequest) (*dto.WatchlistResponse, error)
	RemoveItem(ctx context.Context, watchlistID, itemID uint) error
}

// NewWatchlistService creates a new watchlist service.
func NewWatchlistService(watchlistRepo repository.WatchlistRepository, logger *logger.Logger) WatchlistService {
	return &watchlistService{watchlistRepo: watchlistRepo, logger: logger}
}

type watchlistService struct {
	watchlistRepo repository.WatchlistRepository
	logger        *logger.Logger
}

func (s *watchlistService) CreateWatchlist(ctx context.Context, req *dto.CreateWatchlistRequest) (*dto.WatchlistResponse, error) {
	watchlist := &entity.Watchlist{Name: req.Name}
	if err := s.watchlistRepo.Create(ctx, watchlist); err != nil {
		return nil, err
	}
	return mapToWatchlistResponse(watchlist), nil
}

func (s *watchlistService) GetWatchlistByID(ctx context.Context, id uint) (*dto.WatchlistResponse, error) {
	watchlist, err := s.watchlistRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapToWatchlistResponse(watchlist), nil
}

func (s *watchlistService) GetAllWatchlists(ctx context.Context) ([]*dto.WatchlistResponse, error) {
	watchlists, err := s.watchlistRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var responses []*dto.WatchlistResponse
	for i := range watchlists {
		responses = append(responses, mapToWatchlistResponse(&watchlists[i]))
	}
	return responses, nil
}

func (s *watchlistService) UpdateWatchlist(ctx context.Context, id uint, req *dto.UpdateWatchlistRequest) (*dto.WatchlistResponse, error) {
	watchlist, err := s.watchlistRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	watchlist.Name = req.Name
	if err := s.watchlistRepo.Update(ctx, watchlist); err != nil {
		s.logger.Error("Failed to update watchlist", logger.ErrorField(err), logger.Field("watchlist_id", id))
		return nil, err
	}
	return mapToWatchlistResponse(watchlist), nil
}

func (s *watchlistService) DeleteWatchlist(ctx context.Context, id uint) error {
	if err := s.watchlistRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete watchlist", logger.ErrorField(err), logger.Field("watchlist_id", id))
		return err
	}
	return nil
}

func (s *watchlistService) AddItem(ctx context.Context, watchlistID uint, req *dto.AddWatchlistItemRequest) (*dto.WatchlistResponse, error) {
	item := &entity.WatchlistItem{
		WatchlistID: watchlistID,
		Symbol:      strings.ToUpper(req.Symbol),
		Note:        req.Note,
	}
	if err := s.watchlistRepo.AddItem(ctx, item); err != nil {
		return nil, err
	}
	return s.GetWatchlistByID(ctx, watchlistID)
}

func (s *watchlistService) RemoveItem(ctx context.Context, watchlistID, itemID uint) error {
	return s.watchlistRepo.RemoveItem(ctx, watchlistID, itemID)
}

func mapToWatchlistResponse(watchlist *entity.Watchlist) *dto.WatchlistResponse {
	resp := &dto.WatchlistResponse{
		ID:        watchlist.ID,
		Name:      watchlist.Name,
		Items:     make([]dto.WatchlistItemResponse, 0, len(watchlist.Items)),
		CreatedAt: watchlist.CreatedAt,
		UpdatedAt: watchlist.UpdatedAt,
	}
	for _, item := range watchlist.Items {
		resp.Items = append(resp.Items, dto.WatchlistItemResponse{
			ID:     item.ID,
			Symbol: item.Symbol,
			Note:   item.Note,
		})
	}
	return resp
}
