package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javnievic/comparte-tu-tiempo/internal/application"
	"github.com/javnievic/comparte-tu-tiempo/pkg/response"
	"github.com/javnievic/comparte-tu-tiempo/pkg/validation"
)

type TransactionHandler struct {
	Svc    *application.TransactionService
	Logger *logrus.Logger
}

func NewTransactionHandler(svc *application.TransactionService, logger *logrus.Logger) *TransactionHandler {
	return &TransactionHandler{Svc: svc, Logger: logger}
}

type transactionRequest struct {
	ReceiverID string `json:"receiver" binding:"required"`
	OfferID    string `json:"offer"`
	Title      string `json:"title" binding:"required,max=100"`
	Text       string `json:"text" binding:"max=500"`
	Duration   int64  `json:"duration" binding:"required"` // minutes
}

type transactionUpdateRequest struct {
	Title *string `json:"title" binding:"omitempty,max=100"`
	Text  *string `json:"text" binding:"omitempty,max=500"`
}

// Create POST /api/transactions/
// The sender is always the authenticated caller. On success the time has
// already been settled into both balances.
func (h *TransactionHandler) Create(c *gin.Context) {
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	t, err := h.Svc.Create(c.Request.Context(), c.GetString("userID"), application.TransactionInput{
		ReceiverID: req.ReceiverID,
		OfferID:    req.OfferID,
		Title:      req.Title,
		Text:       req.Text,
		Duration:   time.Duration(req.Duration) * time.Minute,
	})
	if err != nil {
		h.writeTransactionError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, transactionView(t), "transaction created", nil)
}

// List GET /api/transactions/ (superuser)
func (h *TransactionHandler) List(c *gin.Context) {
	txs, err := h.Svc.List(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.writeTransactionError(c, err)
		return
	}
	response.Success(c, http.StatusOK, transactionViews(txs), "transactions", nil)
}

// ListMine GET /api/transactions/my-transactions/
func (h *TransactionHandler) ListMine(c *gin.Context) {
	txs, err := h.Svc.ListMine(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.writeTransactionError(c, err)
		return
	}
	response.Success(c, http.StatusOK, transactionViews(txs), "my transactions", nil)
}

// Get GET /api/transactions/:id (parties or superuser)
func (h *TransactionHandler) Get(c *gin.Context) {
	t, err := h.Svc.Get(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		h.writeTransactionError(c, err)
		return
	}
	response.Success(c, http.StatusOK, transactionView(t), "transaction", nil)
}

// Update PATCH /api/transactions/:id (superuser only)
func (h *TransactionHandler) Update(c *gin.Context) {
	var req transactionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	t, err := h.Svc.AdminUpdate(c.Request.Context(), c.GetString("userID"), c.Param("id"), application.TransactionUpdateInput{
		Title: req.Title,
		Text:  req.Text,
	})
	if err != nil {
		h.writeTransactionError(c, err)
		return
	}
	response.Success(c, http.StatusOK, transactionView(t), "transaction updated", nil)
}

func (h *TransactionHandler) writeTransactionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrDurationOutOfRange):
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"duration": err.Error()})
	case errors.Is(err, application.ErrReceiverNotFound):
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"receiver": "el receptor no existe"})
	case errors.Is(err, application.ErrSelfTransfer):
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"receiver": "No puedes enviarte tiempo a ti mismo."})
	case errors.Is(err, application.ErrOfferNotFound):
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"offer": "la oferta no existe"})
	case errors.Is(err, application.ErrTransactionNotFound):
		response.Error[any](c, http.StatusNotFound, "transaction not found", nil)
	case errors.Is(err, application.ErrForbidden):
		response.Error[any](c, http.StatusForbidden, "No tienes permiso para esta operación.", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
	default:
		h.Logger.WithError(err).Error("transaction operation failed")
		response.Error[any](c, http.StatusInternalServerError, "operation failed", nil)
	}
}
