package handler

import (
	"context"
	"net/http"

	"github.com/eaglebank/ledger/shared/cqrs"
	"github.com/eaglebank/ledger/shared/middleware"
	"github.com/eaglebank/ledger/shared/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// TransactionCommander defines the write-side operations used by TransactionHandler.
type TransactionCommander interface {
	CreateTransaction(context.Context, cqrs.CreateTransactionCommand) (*models.Transaction, error)
}

// TransactionQuerier defines the read-side operations used by TransactionHandler.
type TransactionQuerier interface {
	GetTransaction(context.Context, cqrs.GetTransactionQuery) (*models.TransactionView, error)
	ListTransactions(context.Context, cqrs.ListTransactionsQuery) ([]models.TransactionView, error)
	Summarize(context.Context, cqrs.SummaryQuery) (*models.SummaryView, error)
}

type TransactionHandler struct {
	commands TransactionCommander
	queries  TransactionQuerier
}

// CreateTransactionRequest uses pointers so that an absent field is told
// apart from an empty title or a zero amount, both of which are accepted.
type CreateTransactionRequest struct {
	Title  *string  `json:"title" validate:"required"`
	Amount *float64 `json:"amount" validate:"required"`
	Type   string   `json:"type" validate:"required,oneof=credit debit"`
}

// GetTransactionParams accepts a hyphenated UUID in either letter case.
type GetTransactionParams struct {
	ID string `uri:"id" validate:"required,uuid_rfc4122"`
}

type ListTransactionsResponse struct {
	Transactions []models.TransactionView `json:"transactions"`
}

type GetTransactionResponse struct {
	Transaction *models.TransactionView `json:"transaction"`
}

// SummaryResponse keeps the singular "transaction" key of the public API even
// though it holds an aggregate.
type SummaryResponse struct {
	Transaction *models.SummaryView `json:"transaction"`
}

func NewTransactionHandler(commands TransactionCommander, queries TransactionQuerier) *TransactionHandler {
	return &TransactionHandler{commands: commands, queries: queries}
}

// RegisterRoutes mounts the four transaction routes on rg. Creation is open;
// the read routes require a session cookie. The collection routes use an
// empty relative path so a prefix like /transactions answers without a
// trailing-slash redirect.
func (h *TransactionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.CreateTransaction)

	guarded := rg.Group("", middleware.SessionMiddleware())
	{
		guarded.GET("", h.ListTransactions)
		guarded.GET("/summary", h.Summary)
		guarded.GET("/:id", h.GetTransaction)
	}
}

func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithValidationError(c, middleware.BindErrors(err))
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	sessionID, _ := middleware.EnsureSession(c)

	_, err := h.commands.CreateTransaction(c.Request.Context(), cqrs.CreateTransactionCommand{
		SessionID: sessionID,
		Title:     *req.Title,
		Amount:    decimal.NewFromFloat(*req.Amount),
		Type:      req.Type,
	})
	if err != nil {
		c.Error(err)
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to create transaction")
		return
	}

	c.Status(http.StatusCreated)
}

func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	sessionID, _ := middleware.GetSessionID(c)

	views, err := h.queries.ListTransactions(c.Request.Context(), cqrs.ListTransactionsQuery{
		SessionID: sessionID,
	})
	if err != nil {
		c.Error(err)
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list transactions")
		return
	}
	if views == nil {
		views = []models.TransactionView{}
	}

	c.JSON(http.StatusOK, ListTransactionsResponse{Transactions: views})
}

func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	params := GetTransactionParams{ID: c.Param("id")}
	if validationErrors := middleware.ValidateRequest(params); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}
	sessionID, _ := middleware.GetSessionID(c)

	view, err := h.queries.GetTransaction(c.Request.Context(), cqrs.GetTransactionQuery{
		TransactionID: params.ID,
		SessionID:     sessionID,
	})
	if err != nil {
		c.Error(err)
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to get transaction")
		return
	}

	c.JSON(http.StatusOK, GetTransactionResponse{Transaction: view})
}

func (h *TransactionHandler) Summary(c *gin.Context) {
	sessionID, _ := middleware.GetSessionID(c)

	summary, err := h.queries.Summarize(c.Request.Context(), cqrs.SummaryQuery{
		SessionID: sessionID,
	})
	if err != nil {
		c.Error(err)
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to summarize transactions")
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{Transaction: summary})
}
