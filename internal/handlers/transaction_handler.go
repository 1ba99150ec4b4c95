package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smlcredit/smlcredit-api/internal/models"
	"github.com/smlcredit/smlcredit-api/internal/services"
)

// TransactionHandler records debts and payments for one counterparty class.
type TransactionHandler struct {
	transactionService *services.TransactionService
	kind               models.Kind
}

func NewTransactionHandler(txs *services.TransactionService, kind models.Kind) *TransactionHandler {
	return &TransactionHandler{transactionService: txs, kind: kind}
}

// @Summary Record Transaction
// @Description Append a debt or payment and return the counterparty with its recomputed balance
// @Tags Transactions
// @Accept json
// @Produce json
// @Param id path string true "Counterparty ID"
// @Param request body transactionPayload true "Transaction"
// @Success 201 {object} models.Counterparty
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /transactions/supplier/{id} [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	var req transactionPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	cp, err := h.transactionService.Apply(c.Request.Context(), h.kind, c.Param("id"), req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cp)
}
