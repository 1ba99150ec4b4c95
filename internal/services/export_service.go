package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/smlcredit/smlcredit-api/internal/models"
	"github.com/smlcredit/smlcredit-api/internal/repository"
	"github.com/xuri/excelize/v2"
)

// ExportService renders the ledger into downloadable report formats.
type ExportService struct {
	repos *repository.Repositories
}

func NewExportService(repos *repository.Repositories) *ExportService {
	return &ExportService{repos: repos}
}

func (s *ExportService) collect(ctx context.Context) ([]models.Counterparty, []models.Counterparty, error) {
	suppliers, err := s.repos.Suppliers.List(ctx)
	if err != nil {
		return nil, nil, fromRepo(err)
	}
	clients, err := s.repos.Clients.List(ctx)
	if err != nil {
		return nil, nil, fromRepo(err)
	}
	return suppliers, clients, nil
}

// BalancesCSV exports every counterparty's current balance.
func (s *ExportService) BalancesCSV(ctx context.Context) ([]byte, string, error) {
	suppliers, clients, err := s.collect(ctx)
	if err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	now := time.Now()
	_ = writer.Write([]string{"Balance Report", now.Format("2006-01-02 15:04")})
	_ = writer.Write([]string{""})

	writeSection := func(title string, cps []models.Counterparty, withDue bool) {
		_ = writer.Write([]string{title})
		header := []string{"Name", "Phone", "Balance", "Transactions"}
		if withDue {
			header = append(header, "Next Due")
		}
		_ = writer.Write(header)
		total := 0.0
		for i := range cps {
			cp := &cps[i]
			phone := ""
			if cp.Phone != nil {
				phone = *cp.Phone
			}
			record := []string{
				cp.Name,
				phone,
				fmt.Sprintf("%.2f", cp.TotalDebt),
				fmt.Sprintf("%d", len(cp.Transactions)),
			}
			if withDue {
				record = append(record, dueLabel(cp, now))
			}
			_ = writer.Write(record)
			total += cp.TotalDebt
		}
		_ = writer.Write([]string{"Total", "", fmt.Sprintf("%.2f", total), ""})
		_ = writer.Write([]string{""})
	}

	writeSection("Suppliers (owed by us)", suppliers, false)
	writeSection("Clients (owed to us)", clients, true)

	writer.Flush()

	filename := fmt.Sprintf("balances_%s.csv", now.Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// dueLabel renders a client's next due date for the reports, flagging debt
// past its due date.
func dueLabel(cp *models.Counterparty, now time.Time) string {
	if cp.NextDueDate == nil {
		return ""
	}
	if cp.Overdue(now) {
		return *cp.NextDueDate + " (overdue)"
	}
	return *cp.NextDueDate
}

// BalancesXLSX exports the same report as a workbook.
func (s *ExportService) BalancesXLSX(ctx context.Context) ([]byte, string, error) {
	suppliers, clients, err := s.collect(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Balances"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	now := time.Now()
	_ = f.SetCellValue(sheet, "A1", "Balance Report")
	_ = f.SetCellStyle(sheet, "A1", "A1", headerStyle)
	_ = f.SetCellValue(sheet, "B1", now.Format("2006-01-02 15:04"))

	row := 3
	writeSection := func(title string, cps []models.Counterparty, withDue bool) {
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), title)
		row++
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Name")
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), "Phone")
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), "Balance")
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), "Transactions")
		if withDue {
			_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), "Next Due")
		}
		row++
		total := 0.0
		for i := range cps {
			cp := &cps[i]
			_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), cp.Name)
			if cp.Phone != nil {
				_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), *cp.Phone)
			}
			_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), cp.TotalDebt)
			_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), len(cp.Transactions))
			if withDue {
				_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), dueLabel(cp, now))
			}
			total += cp.TotalDebt
			row++
		}
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Total")
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), total)
		row += 2
	}

	writeSection("Suppliers (owed by us)", suppliers, false)
	writeSection("Clients (owed to us)", clients, true)

	_ = f.SetColWidth(sheet, "A", "A", 30)
	_ = f.SetColWidth(sheet, "B", "E", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to build workbook: %w", err)
	}

	filename := fmt.Sprintf("balances_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// StatementPDF renders one counterparty's transaction history.
func (s *ExportService) StatementPDF(ctx context.Context, kind models.Kind, id string) ([]byte, string, error) {
	cp, err := s.repos.ForKind(kind).FindByID(ctx, id)
	if err != nil {
		return nil, "", fromRepo(err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Account Statement")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("%s: %s", titleFor(kind), cp.Name))
	pdf.Ln(6)
	if cp.Phone != nil {
		pdf.Cell(0, 6, fmt.Sprintf("Phone: %s", *cp.Phone))
		pdf.Ln(6)
	}
	if cp.NextDueDate != nil {
		pdf.Cell(0, 6, fmt.Sprintf("Next due date: %s", *cp.NextDueDate))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04")))
	pdf.Ln(10)

	// Table header
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(224, 224, 224)
	pdf.CellFormat(30, 8, "Date", "1", 0, "", true, 0, "")
	pdf.CellFormat(25, 8, "Kind", "1", 0, "", true, 0, "")
	pdf.CellFormat(30, 8, "Amount", "1", 0, "R", true, 0, "")
	pdf.CellFormat(95, 8, "Note", "1", 1, "", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, tx := range cp.Transactions {
		note := ""
		if tx.Note != nil {
			note = *tx.Note
		}
		pdf.CellFormat(30, 7, time.UnixMilli(tx.Date).Format("02/01/2006"), "1", 0, "", false, 0, "")
		pdf.CellFormat(25, 7, tx.Kind, "1", 0, "", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", tx.Signed()), "1", 0, "R", false, 0, "")
		pdf.CellFormat(95, 7, note, "1", 1, "", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(55, 8, "Balance", "1", 0, "", true, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", cp.TotalDebt), "1", 0, "R", true, 0, "")
	pdf.CellFormat(95, 8, "", "1", 1, "", true, 0, "")

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", fmt.Errorf("failed to render PDF: %w", err)
	}

	filename := fmt.Sprintf("statement_%s_%s.pdf", cp.ID, time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func titleFor(kind models.Kind) string {
	if kind == models.KindClient {
		return "Client"
	}
	return "Supplier"
}
