package repository

import (
	"context"
	"fmt"

	"portfolio-tracker/internal/refresher/config"
	"portfolio-tracker/pkg/logger"

	"github.com/mmcdole/gofeed"
)

// NewsFeedRepository fetches recent news headlines for a symbol from an RSS
// feed.
type NewsFeedRepository interface {
	GetHeadlines(ctx context.Context, symbol string) ([]string, error)
}

// NewNewsFeedRepository creates a new RSS headline repository.
func NewNewsFeedRepository(cfg *config.Config, log *logger.Logger) NewsFeedRepository {
	return &newsFeedRepository{cfg: cfg, log: log}
}

type newsFeedRepository struct {
	cfg *config.Config
	log *logger.Logger
}

func (r *newsFeedRepository) GetHeadlines(ctx context.Context, symbol string) ([]string, error) {
	url := fmt.Sprintf(r.cfg.NewsFeed.FeedURLTemplate, symbol)

	fp := gofeed.NewParser()
	feed, err := fp.ParseURLWithContext(url, ctx)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to parse news feed", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return nil, err
	}

	maxHeadlines := r.cfg.NewsFeed.MaxHeadlines
	if maxHeadlines <= 0 {
		maxHeadlines = 20
	}

	var headlines []string
	for _, item := range feed.Items {
		if item == nil || item.Title == "" {
			continue
		}
		headlines = append(headlines, item.Title)
		if len(headlines) >= maxHeadlines {
			break
		}
	}

	r.log.DebugContext(ctx, "Fetched news headlines", logger.StringField("symbol", symbol), logger.IntField("count", len(headlines)))
	return headlines, nil
}
