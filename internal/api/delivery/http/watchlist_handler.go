package http

import (
	"errors"
	"net/http"
	"strconv"

	"portfolio-tracker/internal/api/dto"
	"portfolio-tracker/internal/api/service"
	"portfolio-tracker/pkg/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// WatchlistHandler handles HTTP requests for watchlists.
type WatchlistHandler struct {
	watchlistService service.WatchlistService
	logger           *logger.Logger
}

// NewWatchlistHandler creates a new WatchlistHandler.
func NewWatchlistHandler(watchlistService service.WatchlistService, logger *logger.Logger) *WatchlistHandler {
	return &WatchlistHandler{watchlistService: watchlistService, logger: logger}
}

// RegisterRoutes registers the watchlist routes to the Echo group.
func (h *WatchlistHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateWatchlist)
	g.GET("", h.GetAllWatchlists)
	g.GET("/:id", h.GetWatchlistByID)
	g.PUT("/:id", h.UpdateWatchlist)
	g.DELETE("/:id", h.DeleteWatchlist)
	g.POST("/:id/items", h.AddItem)
	g.DELETE("/:id/items/:itemId", h.RemoveItem)
}

// CreateWatchlist godoc
// @Summary Create a new watchlist
// @Description Create a new watchlist
// @Tags watchlists
// @Accept  json
// @Produce  json
// @Param   watchlist  body    dto.CreateWatchlistRequest   true    "Watchlist to create"
// @Success 201 {object} dto.WatchlistResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /watchlists [post]
func (h *WatchlistHandler) CreateWatchlist(c echo.Context) error {
	var req dto.CreateWatchlistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Watchlist name is required"})
	}

	resp, err := h.watchlistService.CreateWatchlist(c.Request().Context(), &req)
	if err != nil {
		h.logger.Error("Failed to create watchlist", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, resp)
}

// GetWatchlistByID godoc
// @Summary Get a watchlist by ID
// @Description Get a single watchlist with its items
// @Tags watchlists
// @Produce  json
// @Param   id  path    int true    "Watchlist ID"
// @Success 200 {object} dto.WatchlistResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /watchlists/{id} [get]
func (h *WatchlistHandler) GetWatchlistByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid watchlist ID"})
	}

	resp, err := h.watchlistService.GetWatchlistByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Watchlist not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, resp)
}

// GetAllWatchlists godoc
// @Summary Get all watchlists
// @Description Get all watchlists
// @Tags watchlists
// @Produce  json
// @Success 200 {array} dto.WatchlistResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /watchlists [get]
func (h *WatchlistHandler) GetAllWatchlists(c echo.Context) error {
	watchlists, err := h.watchlistService.GetAllWatchlists(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to get all watchlists", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get watchlists"})
	}
	return c.JSON(http.StatusOK, watchlists)
}

// UpdateWatchlist godoc
// @Summary Rename a watchlist
// @Description Rename a watchlist
// @Tags watchlists
// @Accept  json
// @Produce  json
// @Param   id  path    int true    "Watchlist ID"
// @Param   watchlist  body    dto.UpdateWatchlistRequest   true    "New name"
// @Success 200 {object} dto.WatchlistResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /watchlists/{id} [put]
func (h *WatchlistHandler) UpdateWatchlist(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid watchlist ID"})
	}

	var req dto.UpdateWatchlistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	resp, err := h.watchlistService.UpdateWatchlist(c.Request().Context(), id, &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Watchlist not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, resp)
}

// DeleteWatchlist godoc
// @Summary Delete a watchlist
// @Description Delete a watchlist and its items
// @Tags watchlists
// @Produce  json
// @Param   id  path    int true    "Watchlist ID"
// @Success 204 {object} nil
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /watchlists/{id} [delete]
func (h *WatchlistHandler) DeleteWatchlist(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid watchlist ID"})
	}

	if err := h.watchlistService.DeleteWatchlist(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

// AddItem godoc
// @Summary Add a symbol to a watchlist
// @Description Add a symbol to a watchlist
// @Tags watchlists
// @Accept  json
// @Produce  json
// @Param   id  path    int true    "Watchlist ID"
// @Param   item  body    dto.AddWatchlistItemRequest   true    "Symbol to add"
// @Success 201 {object} dto.WatchlistResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /watchlists/{id}/items [post]
func (h *WatchlistHandler) AddItem(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid watchlist ID"})
	}

	var req dto.AddWatchlistItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.Symbol == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Symbol is required"})
	}

	resp, err := h.watchlistService.AddItem(c.Request().Context(), id, &req)
	if err != nil {
		h.logger.Error("Failed to add watchlist item", logger.ErrorField(err), logger.Field("watchlist_id", id))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, resp)
}

// RemoveItem godoc
// @Summary Remove a symbol from a watchlist
// @Description Remove a symbol from a watchlist
// @Tags watchlists
// @Produce  json
// @Param   id      path    int true    "Watchlist ID"
// @Param   itemId  path    int true    "Item ID"
// @Success 204 {object} nil
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /watchlists/{id}/items/{itemId} [delete]
func (h *WatchlistHandler) RemoveItem(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid watchlist ID"})
	}
	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid item ID"})
	}

	if err := h.watchlistService.RemoveItem(c.Request().Context(), id, uint(itemID)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
