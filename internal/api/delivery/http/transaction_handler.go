package http

import (
	"errors"
	"net/http"
	"strconv"

	"portfolio-tracker/internal/api/dto"
	"portfolio-tracker/internal/api/service"
	"portfolio-tracker/pkg/logger"

	"github.com/labstack/echo/v4"
)

// TransactionHandler handles HTTP requests for portfolio transactions.
type TransactionHandler struct {
	transactionService service.TransactionService
	logger             *logger.Logger
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService service.TransactionService, logger *logger.Logger) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, logger: logger}
}

// RegisterRoutes registers the transaction routes to the Echo group. The
// group is expected to be mounted under /portfolios/:id.
func (h *TransactionHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateTransaction)
	g.GET("", h.GetTransactions)
	g.DELETE("/:txId", h.DeleteTransaction)
}

// CreateTransaction godoc
// @Summary Record a trade
// @Description Record a buy, sell or dividend and re-derive the affected holding
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   id   path    int true    "Portfolio ID"
// @Param   transaction  body    dto.CreateTransactionRequest   true    "Trade to record"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /portfolios/{id}/transactions [post]
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	portfolioID, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid portfolio ID"})
	}

	var req dto.CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.Symbol == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Symbol is required"})
	}

	resp, err := h.transactionService.CreateTransaction(c.Request().Context(), portfolioID, &req)
	if err != nil {
		if errors.Is(err, service.ErrOversell) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
		}
		h.logger.Error("Failed to create transaction", logger.ErrorField(err), logger.Field("portfolio_id", portfolioID))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, resp)
}

// GetTransactions godoc
// @Summary List transactions
// @Description List all transactions for a portfolio, newest trade first
// @Tags transactions
// @Produce  json
// @Param   id  path    int true    "Portfolio ID"
// @Success 200 {array} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /portfolios/{id}/transactions [get]
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	portfolioID, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid portfolio ID"})
	}

	resp, err := h.transactionService.GetTransactions(c.Request().Context(), portfolioID)
	if err != nil {
		h.logger.Error("Failed to get transactions", logger.ErrorField(err), logger.Field("portfolio_id", portfolioID))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get transactions"})
	}
	return c.JSON(http.StatusOK, resp)
}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Description Delete a transaction and re-derive the affected holding
// @Tags transactions
// @Produce  json
// @Param   id    path    int true    "Portfolio ID"
// @Param   txId  path    int true    "Transaction ID"
// @Success 204 {object} nil
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /portfolios/{id}/transactions/{txId} [delete]
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	portfolioID, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid portfolio ID"})
	}
	txID, err := strconv.ParseUint(c.Param("txId"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid transaction ID"})
	}

	if err := h.transactionService.DeleteTransaction(c.Request().Context(), portfolioID, uint(txID)); err != nil {
		if errors.Is(err, service.ErrOversell) {
			// Removing a buy would leave a later sell oversold.
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
