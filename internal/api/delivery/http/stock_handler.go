package http

import (
	"errors"
	"net/http"
	"strings"

	"portfolio-tracker/internal/api/dto"
	"portfolio-tracker/internal/api/service"
	"portfolio-tracker/pkg/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// StockHandler handles HTTP requests for the tracked stock universe and the
// research views built on top of stored signals.
type StockHandler struct {
	stockService    service.StockService
	researchService service.ResearchService
	logger          *logger.Logger
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(stockService service.StockService, researchService service.ResearchService, logger *logger.Logger) *StockHandler {
	return &StockHandler{stockService: stockService, researchService: researchService, logger: logger}
}

// RegisterRoutes registers the stock routes to the Echo group.
func (h *StockHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateStock)
	g.GET("", h.GetStocks)
	g.DELETE("/:id", h.DeleteStock)
	g.GET("/:symbol/signal", h.GetSignal)
	g.GET("/:symbol/research", h.GetResearch)
}

// CreateStock godoc
// @Summary Track a stock
// @Description Add a stock to the tracked universe
// @Tags stocks
// @Accept  json
// @Produce  json
// @Param   stock  body    dto.CreateStockRequest   true    "Stock to track"
// @Success 201 {object} dto.StockResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stocks [post]
func (h *StockHandler) CreateStock(c echo.Context) error {
	var req dto.CreateStockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.Symbol == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Symbol is required"})
	}

	resp, err := h.stockService.CreateStock(c.Request().Context(), &req)
	if err != nil {
		h.logger.Error("Failed to create stock", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, resp)
}

// GetStocks godoc
// @Summary List tracked stocks
// @Description List the tracked universe, optionally filtered by symbol or name
// @Tags stocks
// @Produce  json
// @Param   q  query   string false   "Search term"
// @Success 200 {array} dto.StockResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stocks [get]
func (h *StockHandler) GetStocks(c echo.Context) error {
	stocks, err := h.stockService.GetStocks(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		h.logger.Error("Failed to get stocks", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get stocks"})
	}
	return c.JSON(http.StatusOK, stocks)
}

// DeleteStock godoc
// @Summary Untrack a stock
// @Description Remove a stock from the tracked universe
// @Tags stocks
// @Produce  json
// @Param   id  path    int true    "Stock ID"
// @Success 204 {object} nil
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stocks/{id} [delete]
func (h *StockHandler) DeleteStock(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid stock ID"})
	}

	if err := h.stockService.DeleteStock(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

// GetSignal godoc
// @Summary Get the stored signal for a symbol
// @Description Get the latest refreshed market data and scores for a symbol
// @Tags stocks
// @Produce  json
// @Param   symbol  path    string true    "Ticker symbol"
// @Success 200 {object} dto.SignalResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stocks/{symbol}/signal [get]
func (h *StockHandler) GetSignal(c echo.Context) error {
	symbol := strings.ToUpper(c.Param("symbol"))

	resp, err := h.researchService.GetSignal(c.Request().Context(), symbol)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "No signal stored for symbol"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, resp)
}

// GetResearch godoc
// @Summary Get the research view for a symbol
// @Description Run the verdict and risk engines over the latest stored signal
// @Tags stocks
// @Produce  json
// @Param   symbol  path    string true    "Ticker symbol"
// @Success 200 {object} dto.ResearchResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /stocks/{symbol}/research [get]
func (h *StockHandler) GetResearch(c echo.Context) error {
	symbol := strings.ToUpper(c.Param("symbol"))

	resp, err := h.researchService.GetResearch(c.Request().Context(), symbol)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "No signal stored for symbol"})
		}
		h.logger.Error("Failed to build research view", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, resp)
}
