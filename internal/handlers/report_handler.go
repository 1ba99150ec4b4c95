package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smlcredit/smlcredit-api/internal/models"
	"github.com/smlcredit/smlcredit-api/internal/services"
)

// ReportHandler serves downloadable reports.
type ReportHandler struct {
	exportService *services.ExportService
}

func NewReportHandler(exportService *services.ExportService) *ReportHandler {
	return &ReportHandler{exportService: exportService}
}

// @Summary Balances CSV
// @Description Download every counterparty balance as CSV
// @Tags Reports
// @Produce text/csv
// @Success 200 {file} file
// @Security BearerAuth
// @Router /reports/balances.csv [get]
func (h *ReportHandler) BalancesCSV(c *gin.Context) {
	data, filename, err := h.exportService.BalancesCSV(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	sendFile(c, data, filename, "text/csv")
}

// @Summary Balances XLSX
// @Description Download every counterparty balance as a workbook
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Security BearerAuth
// @Router /reports/balances.xlsx [get]
func (h *ReportHandler) BalancesXLSX(c *gin.Context) {
	data, filename, err := h.exportService.BalancesXLSX(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	sendFile(c, data, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

// @Summary Supplier Statement PDF
// @Description Download one supplier's transaction history as PDF
// @Tags Reports
// @Produce application/pdf
// @Param id path string true "Supplier ID"
// @Success 200 {file} file
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /reports/suppliers/{id}/statement.pdf [get]
func (h *ReportHandler) SupplierStatementPDF(c *gin.Context) {
	h.statementPDF(c, models.KindSupplier)
}

// @Summary Client Statement PDF
// @Description Download one client's transaction history as PDF
// @Tags Reports
// @Produce application/pdf
// @Param id path string true "Client ID"
// @Success 200 {file} file
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /reports/clients/{id}/statement.pdf [get]
func (h *ReportHandler) ClientStatementPDF(c *gin.Context) {
	h.statementPDF(c, models.KindClient)
}

func (h *ReportHandler) statementPDF(c *gin.Context, kind models.Kind) {
	data, filename, err := h.exportService.StatementPDF(c.Request.Context(), kind, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	sendFile(c, data, filename, "application/pdf")
}

func sendFile(c *gin.Context, data []byte, filename, contentType string) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, data)
}
