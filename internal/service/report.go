package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/sitewatch/sitewatch/internal/core"
	"github.com/sitewatch/sitewatch/internal/domain/model"
	apperrors "github.com/sitewatch/sitewatch/internal/errors"
)

// ReportServiceOptions groups dependencies for ReportService.
type ReportServiceOptions struct {
	Results core.ResultRepository // Required: result repository
	Logs    core.ScanLogRepository
}

// ReportService serves dashboard listings, statistics and exports.
type ReportService struct {
	results core.ResultRepository
	logs    core.ScanLogRepository
}

// NewReportService constructs a new ReportService.
func NewReportService(opts ReportServiceOptions) (*ReportService, error) {
	if opts.Results == nil {
		return nil, errors.New("ResultRepository is required")
	}
	return &ReportService{results: opts.Results, logs: opts.Logs}, nil
}

// List returns one page of results matching the filter.
func (s *ReportService) List(ctx context.Context, opts model.ResultListOptions) (*model.ResultPage, error) {
	return s.results.List(ctx, opts)
}

// Stats aggregates counts over the trailing windowDays (default 7).
func (s *ReportService) Stats(ctx context.Context, windowDays int) (*model.Stats, error) {
	return s.results.Stats(ctx, windowDays)
}

// ExtendedStats returns the dashboard's secondary statistics.
func (s *ReportService) ExtendedStats(ctx context.Context) (*model.ExtendedStats, error) {
	return s.results.ExtendedStats(ctx)
}

// Compare contrasts the two most recent distinct scan dates. Returns a
// NotFound error when fewer than two scan dates exist in the window.
func (s *ReportService) Compare(ctx context.Context) (*model.ScanComparison, error) {
	summaries, err := s.results.CompareScanDates(ctx)
	if err != nil {
		return nil, err
	}
	if len(summaries) < 2 {
		return nil, apperrors.NotFound("need at least two scan dates to compare")
	}

	latest, previous := summaries[0], summaries[1]
	return &model.ScanComparison{
		Latest:   latest,
		Previous: previous,
		Diff: model.ScanDiff{
			TotalURLs:       latest.TotalURLs - previous.TotalURLs,
			NoindexCount:    latest.NoindexCount - previous.NoindexCount,
			AvgResponseTime: latest.AvgResponseTime - previous.AvgResponseTime,
		},
	}, nil
}

// exportHeader is the column order shared by the CSV and XLSX exports.
var exportHeader = []string{"URL", "HTTP Code", "Status", "Reasons", "Response Time (s)", "Checked At"}

const exportTimeLayout = "2006-01-02 15:04:05"

// ExportCSV streams matching results as CSV.
func (s *ReportService) ExportCSV(ctx context.Context, opts model.ExportOptions, w io.Writer) error {
	rows, err := s.results.Export(ctx, opts)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i := range rows {
		row := &rows[i]
		record := []string{
			row.URL,
			strconv.Itoa(row.HTTPCode),
			string(row.Status),
			row.Reasons,
			strconv.FormatFloat(row.ResponseTime, 'f', 2, 64),
			row.CheckedAt.Format(exportTimeLayout),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportXLSX writes matching results as a single-sheet spreadsheet.
func (s *ReportService) ExportXLSX(ctx context.Context, opts model.ExportOptions, w io.Writer) error {
	rows, err := s.results.Export(ctx, opts)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Results"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	for col, title := range exportHeader {
		cell, cellErr := excelize.CoordinatesToCellName(col+1, 1)
		if cellErr != nil {
			return fmt.Errorf("header cell name: %w", cellErr)
		}
		if setErr := f.SetCellValue(sheet, cell, title); setErr != nil {
			return fmt.Errorf("write header: %w", setErr)
		}
	}

	for i := range rows {
		row := &rows[i]
		values := []any{
			row.URL,
			row.HTTPCode,
			string(row.Status),
			row.Reasons,
			row.ResponseTime,
			row.CheckedAt.Format(exportTimeLayout),
		}
		for col, v := range values {
			cell, cellErr := excelize.CoordinatesToCellName(col+1, i+2)
			if cellErr != nil {
				return fmt.Errorf("cell name: %w", cellErr)
			}
			if setErr := f.SetCellValue(sheet, cell, v); setErr != nil {
				return fmt.Errorf("write row %d: %w", i+1, setErr)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// LatestScanLog returns the most recent audit row for a scan run.
func (s *ReportService) LatestScanLog(ctx context.Context, scanID string) (*model.ScanLogEntry, error) {
	if s.logs == nil {
		return nil, apperrors.NotFound("scan log is not available")
	}
	return s.logs.Latest(ctx, scanID)
}
