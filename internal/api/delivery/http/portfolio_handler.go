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

// PortfolioHandler handles HTTP requests for portfolios.
type PortfolioHandler struct {
	portfolioService service.PortfolioService
	logger           *logger.Logger
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioService service.PortfolioService, logger *logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService, logger: logger}
}

// RegisterRoutes registers the portfolio routes to the Echo group.
func (h *PortfolioHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreatePortfolio)
	g.GET("", h.GetAllPortfolios)
	g.GET("/:id", h.GetPortfolioByID)
	g.PUT("/:id", h.UpdatePortfolio)
	g.DELETE("/:id", h.DeletePortfolio)
	g.GET("/:id/performance", h.GetPerformance)
	g.GET("/:id/snapshots", h.GetSnapshots)
}

// CreatePortfolio godoc
// @Summary Create a new portfolio
// @Description Create a new portfolio
// @Tags portfolios
// @Accept  json
// @Produce  json
// @Param   portfolio  body    dto.CreatePortfolioRequest   true    "Portfolio to create"
// @Success 201 {object} dto.PortfolioResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /portfolios [post]
func (h *PortfolioHandler) CreatePortfolio(c echo.Context) error {
	var req dto.CreatePortfolioRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Portfolio name is required"})
	}

	resp, err := h.portfolioService.CreatePortfolio(c.Request().Context(), &req)
	if err != nil {
		h.logger.Error("Failed to create portfolio", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, resp)
}

// GetPortfolioByID godoc
// @Summary Get a portfolio by ID
// @Description Get a single portfolio with its holdings
// @Tags portfolios
// @Produce  json
// @Param   id  path    int true    "Portfolio ID"
// @Success 200 {object} dto.PortfolioResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /portfolios/{id} [get]
func (h *PortfolioHandler) GetPortfolioByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid portfolio ID"})
	}

	resp, err := h.portfolioService.GetPortfolioByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Portfolio not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, resp)
}

// GetAllPortfolios godoc
// @Summary Get all portfolios
// @Description Get all portfolios
// @Tags portfolios
// @Produce  json
// @Success 200 {array} dto.PortfolioResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /portfolios [get]
func (h *PortfolioHandler) GetAllPortfolios(c echo.Context) error {
	portfolios, err := h.portfolioService.GetAllPortfolios(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to get all portfolios", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get portfolios"})
	}
	return c.JSON(http.StatusOK, portfolios)
}

// UpdatePortfolio godoc
// @Summary Update a portfolio
// @Description Update a portfolio's name or currency
// @Tags portfolios
// @Accept  json
// @Produce  json
// @Param   id  path    int true    "Portfolio ID"
// @Param   portfolio  body    dto.UpdatePortfolioRequest   true    "Fields to update"
// @Success 200 {object} dto.PortfolioResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /portfolios/{id} [put]
func (h *PortfolioHandler) UpdatePortfolio(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid portfolio ID"})
	}

	var req dto.UpdatePortfolioRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	resp, err := h.portfolioService.UpdatePortfolio(c.Request().Context(), id, &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Portfolio not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, resp)
}

// DeletePortfolio godoc
// @Summary Delete a portfolio
// @Description Delete a portfolio and all of its holdings, transactions and snapshots
// @Tags portfolios
// @Produce  json
// @Param   id  path    int true    "Portfolio ID"
// @Success 204 {object} nil
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /portfolios/{id} [delete]
func (h *PortfolioHandler) DeletePortfolio(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid portfolio ID"})
	}

	if err := h.portfolioService.DeletePortfolio(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

// GetPerformance godoc
// @Summary Get portfolio performance
// @Description Value every holding against the latest stored prices
// @Tags portfolios
// @Produce  json
// @Param   id  path    int true    "Portfolio ID"
// @Success 200 {object} dto.PerformanceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /portfolios/{id}/performance [get]
func (h *PortfolioHandler) GetPerformance(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid portfolio ID"})
	}

	resp, err := h.portfolioService.GetPerformance(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Portfolio not found"})
		}
		h.logger.Error("Failed to compute performance", logger.ErrorField(err), logger.Field("portfolio_id", id))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, resp)
}

// GetSnapshots godoc
// @Summary Get portfolio value history
// @Description Get persisted daily valuation snapshots, newest first
// @Tags portfolios
// @Produce  json
// @Param   id    path    int true    "Portfolio ID"
// @Param   days  query   int false   "Lookback window in days (default 30)"
// @Success 200 {array} dto.SnapshotResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /portfolios/{id}/snapshots [get]
func (h *PortfolioHandler) GetSnapshots(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid portfolio ID"})
	}

	days, _ := strconv.Atoi(c.QueryParam("days"))
	resp, err := h.portfolioService.GetSnapshots(c.Request().Context(), id, days)
	if err != nil {
		h.logger.Error("Failed to get snapshots", logger.ErrorField(err), logger.Field("portfolio_id", id))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, resp)
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
