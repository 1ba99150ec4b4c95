package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smlcredit/smlcredit-api/internal/models"
	"github.com/smlcredit/smlcredit-api/internal/services"
)

// CounterpartyHandler serves one counterparty class. Two instances are
// registered, one for /suppliers and one for /clients.
type CounterpartyHandler struct {
	counterpartyService *services.CounterpartyService
	transactionService  *services.TransactionService
	kind                models.Kind
}

func NewCounterpartyHandler(cps *services.CounterpartyService, txs *services.TransactionService, kind models.Kind) *CounterpartyHandler {
	return &CounterpartyHandler{counterpartyService: cps, transactionService: txs, kind: kind}
}

// transactionPayload accepts both the current "kind" field and the legacy
// "type" field older exports still carry.
type transactionPayload struct {
	ID     string   `json:"id"`
	Amount *float64 `json:"amount"`
	Kind   string   `json:"kind"`
	Type   string   `json:"type"`
	Date   *int64   `json:"date"`
	Note   *string  `json:"note"`
}

func (p *transactionPayload) toInput() services.ApplyInput {
	kind := p.Kind
	if kind == "" {
		kind = p.Type
	}
	return services.ApplyInput{
		ID:     p.ID,
		Amount: p.Amount,
		Kind:   kind,
		Date:   p.Date,
		Note:   p.Note,
	}
}

type CreateCounterpartyRequest struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	TotalDebt    float64              `json:"totalDebt"`
	Phone        *string              `json:"phone"`
	DueDay       *int                 `json:"dueDay"`
	Transactions []transactionPayload `json:"transactions"`
}

type UpdateCounterpartyRequest struct {
	Name   *string `json:"name"`
	Phone  *string `json:"phone"`
	DueDay *int    `json:"dueDay"`
}

// @Summary List Counterparties
// @Description Get all records of one class with their transactions, newest transaction first
// @Tags Counterparties
// @Produce json
// @Success 200 {array} models.Counterparty
// @Security BearerAuth
// @Router /suppliers [get]
func (h *CounterpartyHandler) Index(c *gin.Context) {
	list, err := h.counterpartyService.List(c.Request.Context(), h.kind)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get Counterparty
// @Description Get a single record by ID
// @Tags Counterparties
// @Produce json
// @Param id path string true "Counterparty ID"
// @Success 200 {object} models.Counterparty
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /suppliers/{id} [get]
func (h *CounterpartyHandler) Show(c *gin.Context) {
	cp, err := h.counterpartyService.FindByID(c.Request.Context(), h.kind, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cp)
}

// @Summary Create Counterparty
// @Description Create a record, optionally seeded with transactions or an opening balance
// @Tags Counterparties
// @Accept json
// @Produce json
// @Param request body CreateCounterpartyRequest true "Counterparty"
// @Success 201 {object} models.Counterparty
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /suppliers [post]
func (h *CounterpartyHandler) Create(c *gin.Context) {
	var req CreateCounterpartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	input := services.CreateInput{
		ID:        req.ID,
		Name:      req.Name,
		TotalDebt: req.TotalDebt,
		Phone:     req.Phone,
		DueDay:    req.DueDay,
	}
	for _, p := range req.Transactions {
		input.Transactions = append(input.Transactions, p.toInput())
	}

	cp, err := h.counterpartyService.Create(c.Request.Context(), h.kind, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cp)
}

// @Summary Update Counterparty
// @Description Update name, phone or due day. Balances are derived from transactions and cannot be set here.
// @Tags Counterparties
// @Accept json
// @Produce json
// @Param id path string true "Counterparty ID"
// @Param request body UpdateCounterpartyRequest true "Fields to update"
// @Success 200 {object} models.Counterparty
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /suppliers/{id} [put]
func (h *CounterpartyHandler) Update(c *gin.Context) {
	var req UpdateCounterpartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	cp, err := h.counterpartyService.Update(c.Request.Context(), h.kind, c.Param("id"), services.UpdateInput{
		Name:   req.Name,
		Phone:  req.Phone,
		DueDay: req.DueDay,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cp)
}

// @Summary Delete Counterparty
// @Description Delete a record and all of its transactions
// @Tags Counterparties
// @Produce json
// @Param id path string true "Counterparty ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /suppliers/{id} [delete]
func (h *CounterpartyHandler) Delete(c *gin.Context) {
	if err := h.counterpartyService.Delete(c.Request.Context(), h.kind, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Record deleted"})
}

// @Summary Recompute Balance
// @Description Re-derive the stored balance from the transaction rows
// @Tags Counterparties
// @Produce json
// @Param id path string true "Counterparty ID"
// @Success 200 {object} models.Counterparty
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /suppliers/{id}/recompute [post]
func (h *CounterpartyHandler) Recompute(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.transactionService.Recompute(c.Request.Context(), h.kind, id); err != nil {
		respondError(c, err)
		return
	}
	cp, err := h.counterpartyService.FindByID(c.Request.Context(), h.kind, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cp)
}
