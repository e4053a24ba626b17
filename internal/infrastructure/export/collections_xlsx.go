// Package export renders ledger reports as spreadsheet workbooks.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rentdesk/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Sheet names of the collections workbook
const (
	SheetSummary    = "Summary"
	SheetPayments   = "Payments"
	SheetByTenant   = "By Tenant"
	SheetByProperty = "By Property"
)

// ContentTypeXLSX is the MIME type of the generated workbook
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var title = cases.Title(language.English)

// Label turns a snake_case identifier such as "bi_weekly" into "Bi Weekly"
func Label(identifier string) string {
	return title.String(strings.ReplaceAll(identifier, "_", " "))
}

// PaymentState classifies a payment by how much of it was applied
func PaymentState(p *ledger.Payment) string {
	switch {
	case p.UnappliedAmount.IsZero():
		return "allocated"
	case p.AllocatedAmount.IsZero():
		return "unapplied_credit"
	default:
		return "partially_applied"
	}
}

type column struct {
	header string
	value  func(p *ledger.Payment) any
}

var paymentColumns = []column{
	{"payment_id", func(p *ledger.Payment) any { return p.ID.String() }},
	{"payment_date", func(p *ledger.Payment) any { return p.PaymentDate.String() }},
	{"tenant_id", func(p *ledger.Payment) any { return p.TenantID.String() }},
	{"property_id", func(p *ledger.Payment) any { return p.PropertyID.String() }},
	{"amount", func(p *ledger.Payment) any { return money(p.Amount) }},
	{"allocated_amount", func(p *ledger.Payment) any { return money(p.AllocatedAmount) }},
	{"unapplied_amount", func(p *ledger.Payment) any { return money(p.UnappliedAmount) }},
	{"state", func(p *ledger.Payment) any { return Label(PaymentState(p)) }},
	{"notes", func(p *ledger.Payment) any { return p.Notes }},
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// CollectionsWorkbook renders summary and the payments behind it as XLSX bytes.
func CollectionsWorkbook(summary *ledger.CollectionSummary, payments []*ledger.Payment) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetSummary); err != nil {
		return nil, fmt.Errorf("failed to name summary sheet: %w", err)
	}
	_ = f.SetDocProps(&excelize.DocProperties{
		Creator: "rentdesk",
		Title:   fmt.Sprintf("Collections %s to %s", summary.Start, summary.End),
	})

	summaryRows := [][]any{
		{Label("range_start"), summary.Start.String()},
		{Label("range_end"), summary.End.String()},
		{Label("total_collected"), money(summary.TotalCollected)},
		{Label("total_allocated"), money(summary.TotalAllocated)},
		{Label("total_unapplied"), money(summary.TotalUnapplied)},
		{Label("payment_count"), summary.PaymentCount},
	}
	if err := writeRows(f, SheetSummary, summaryRows); err != nil {
		return nil, err
	}

	rows := make([][]any, 0, len(payments)+1)
	header := make([]any, len(paymentColumns))
	for i, col := range paymentColumns {
		header[i] = Label(col.header)
	}
	rows = append(rows, header)
	for _, p := range payments {
		row := make([]any, len(paymentColumns))
		for i, col := range paymentColumns {
			row[i] = col.value(p)
		}
		rows = append(rows, row)
	}
	if err := writeSheet(f, SheetPayments, rows); err != nil {
		return nil, err
	}

	if err := writeBreakdown(f, SheetByTenant, "tenant_id", summary.ByTenant); err != nil {
		return nil, err
	}
	if err := writeBreakdown(f, SheetByProperty, "property_id", summary.ByProperty); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return bytes.Clone(buf.Bytes()), nil
}

func writeBreakdown(f *excelize.File, sheet, idHeader string, entries []ledger.BreakdownEntry) error {
	rows := [][]any{{Label(idHeader), Label("total_collected"), Label("payment_count")}}
	for _, e := range entries {
		rows = append(rows, []any{e.ID.String(), money(e.TotalCollected), e.PaymentCount})
	}
	return writeSheet(f, sheet, rows)
}

func writeSheet(f *excelize.File, sheet string, rows [][]any) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheet, err)
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d of %q: %w", r+1, sheet, err)
		}
	}
	return nil
}
