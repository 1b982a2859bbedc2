package payroll

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"time"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-payroll-go/internal/pkg/storage"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// Local storage serves keys under /api/v1/payroll, so exportPrefix lines
// the download URL up with the /payroll/exports/{name} route.
const (
	exportSheet  = "Payroll"
	exportPrefix = "exports/"
)

// exportFileName matches names produced by ExportPayroll and nothing else.
var exportFileName = regexp.MustCompile(`^payroll_\d{8}_\d{6}_[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.xlsx$`)

type exportColumn struct {
	Header string
	Value  func(r payroll.PayrollRecord) any
}

var exportColumns = []exportColumn{
	{Header: "Employee ID", Value: func(r payroll.PayrollRecord) any { return r.EmployeeID }},
	{Header: "Employee", Value: func(r payroll.PayrollRecord) any { return strPtr(r.EmployeeName) }},
	{Header: "Department", Value: func(r payroll.PayrollRecord) any { return strPtr(r.Department) }},
	{Header: "Period", Value: func(r payroll.PayrollRecord) any { return fmt.Sprintf("%04d-%02d", r.PeriodYear, r.PeriodMonth) }},
	{Header: "Basic Salary", Value: func(r payroll.PayrollRecord) any { return r.BasicSalary.InexactFloat64() }},
	{Header: "Earnings", Value: func(r payroll.PayrollRecord) any { return r.TotalEarnings.InexactFloat64() }},
	{Header: "Gross Salary", Value: func(r payroll.PayrollRecord) any { return r.GrossSalary.InexactFloat64() }},
	{Header: "Deductions", Value: func(r payroll.PayrollRecord) any { return r.TotalDeductions.InexactFloat64() }},
	{Header: "Net Salary", Value: func(r payroll.PayrollRecord) any { return r.NetSalary.InexactFloat64() }},
	{Header: "Status", Value: func(r payroll.PayrollRecord) any { return string(r.Status) }},
	{Header: "Payment Method", Value: func(r payroll.PayrollRecord) any { return string(r.PaymentMethod) }},
	{Header: "Payment Date", Value: func(r payroll.PayrollRecord) any {
		if r.PaymentDate == nil {
			return ""
		}
		return r.PaymentDate.Format("2006-01-02")
	}},
}

// ExportPayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) ExportPayroll(ctx context.Context, filter payroll.PayrollFilter) (payroll.ExportPayrollResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return payroll.ExportPayrollResponse{}, err
	}
	if !user.CanExportPayroll(actor.Role) {
		return payroll.ExportPayrollResponse{}, user.ErrInsufficientPermissions
	}

	records, err := s.listRecords(ctx, filter)
	if err != nil {
		return payroll.ExportPayrollResponse{}, err
	}

	data, err := buildWorkbook(records, payroll.Summarize(records), actor.UserID)
	if err != nil {
		return payroll.ExportPayrollResponse{}, err
	}

	nonce, err := uuid.NewV7()
	if err != nil {
		return payroll.ExportPayrollResponse{}, fmt.Errorf("failed to generate export name: %w", err)
	}
	fileName := fmt.Sprintf("payroll_%s_%s.xlsx", s.now().Format("20060102_150405"), nonce)
	key, err := s.fileStorage.Upload(ctx, bytes.NewReader(data), int64(len(data)), exportPrefix+fileName, storage.ContentTypeXLSX)
	if err != nil {
		return payroll.ExportPayrollResponse{}, fmt.Errorf("failed to upload payroll export: %w", err)
	}

	url, err := s.fileStorage.GetURL(ctx, key, s.exportURLExpiry)
	if err != nil {
		if delErr := s.fileStorage.Delete(ctx, key); delErr != nil {
			slog.Warn("failed to remove orphaned payroll export", "key", key, "error", delErr)
		}
		return payroll.ExportPayrollResponse{}, fmt.Errorf("failed to get payroll export url: %w", err)
	}

	slog.Info("payroll exported", "file", fileName, "records", len(records), "exported_by", actor.UserID)

	return payroll.ExportPayrollResponse{
		FileName:    fileName,
		URL:         url,
		RecordCount: len(records),
	}, nil
}

// DownloadExport implements payroll.PayrollService.
func (s *PayrollServiceImpl) DownloadExport(ctx context.Context, fileName string) (io.ReadCloser, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !user.CanExportPayroll(actor.Role) {
		return nil, user.ErrInsufficientPermissions
	}
	if !exportFileName.MatchString(fileName) {
		return nil, payroll.ErrExportNotFound
	}

	rc, err := s.fileStorage.Open(ctx, exportPrefix+fileName)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			return nil, payroll.ErrExportNotFound
		}
		return nil, fmt.Errorf("failed to open payroll export: %w", err)
	}

	slog.Info("payroll export downloaded", "file", fileName, "downloaded_by", actor.UserID)
	return rc, nil
}

// NewExportRetentionJob returns a cron job that deletes payroll exports older than retention.
func NewExportRetentionJob(purger storage.Purger, retention time.Duration) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		removed, err := purger.PurgeOlderThan(ctx, exportPrefix, time.Now().Add(-retention))
		if err != nil {
			return fmt.Errorf("failed to purge payroll exports: %w", err)
		}
		if removed > 0 {
			slog.Info("purged payroll exports", "removed", removed, "retention", retention)
		}
		return nil
	}
}

// buildWorkbook renders one row per record followed by a totals row.
func buildWorkbook(records []payroll.PayrollRecord, summary payroll.Summary, createdBy string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), exportSheet)
	_ = f.SetDocProps(&excelize.DocProperties{Creator: createdBy, Created: time.Now().Format(time.RFC3339)})

	for i, col := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, col.Header); err != nil {
			return nil, fmt.Errorf("failed to write export header: %w", err)
		}
	}

	rowIdx := 2
	for _, r := range records {
		for colIdx, col := range exportColumns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx)
			if err := f.SetCellValue(exportSheet, cell, col.Value(r)); err != nil {
				return nil, fmt.Errorf("failed to write export row: %w", err)
			}
		}
		rowIdx++
	}

	totals := map[string]any{
		"Employee ID":  "TOTAL",
		"Employee":     fmt.Sprintf("%d employees", summary.EmployeeCount),
		"Gross Salary": summary.TotalGross.InexactFloat64(),
		"Deductions":   summary.TotalDeductions.InexactFloat64(),
		"Net Salary":   summary.TotalNetPay.InexactFloat64(),
	}
	for colIdx, col := range exportColumns {
		value, ok := totals[col.Header]
		if !ok {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx)
		if err := f.SetCellValue(exportSheet, cell, value); err != nil {
			return nil, fmt.Errorf("failed to write export totals: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render payroll export: %w", err)
	}
	return buf.Bytes(), nil
}

func strPtr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
