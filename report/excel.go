// Package report synthesizes the spreadsheet artifact from extracted
// listing records: styled header, per-record rows, a below-average price
// highlight, an autofilter, and a bar chart.
package report

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/xuri/excelize/v2"

	"shopquery/models"
	"shopquery/utils"
)

const sheetName = "Query Results"

var headers = []string{"Site", "Product Title", "Price", "Timestamp"}

// nonPriceChars matches everything that is not a digit or decimal point.
var nonPriceChars = regexp.MustCompile(`[^0-9.]`)

// Builder persists query results as an .xlsx report.
type Builder struct {
	outDir string
	logger *utils.Logger
}

// NewBuilder creates a Builder writing reports under outDir.
func NewBuilder(outDir string, logger *utils.Logger) *Builder {
	return &Builder{outDir: outDir, logger: logger}
}

// Build writes one report for the record set and returns its path. It
// fails only when the file cannot be persisted; per-row formatting
// problems are logged and skipped. Records are written in input order.
func (b *Builder) Build(records []models.ListingRecord, query string) (string, error) {
	b.logger.Info("[report] Creating Excel report for query: %s", query)

	rows := deriveRows(records)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return "", fmt.Errorf("report: rename sheet: %w", err)
	}

	if err := b.writeHeader(f); err != nil {
		return "", fmt.Errorf("report: write header: %w", err)
	}
	b.writeRows(f, rows)
	b.highlightBelowAverage(f, rows)

	filterRange := fmt.Sprintf("A1:D%d", len(rows)+1)
	if err := f.AutoFilter(sheetName, filterRange, nil); err != nil {
		b.logger.Warn("[report] Auto-filter failed: %v", err)
	}

	if len(rows) > 0 {
		b.addChart(f, len(rows))
	}

	b.autoSizeColumns(f, rows)

	if err := os.MkdirAll(b.outDir, 0755); err != nil {
		return "", fmt.Errorf("report: create output dir: %w", err)
	}
	path := filepath.Join(b.outDir, fmt.Sprintf("query_report_%s.xlsx", randomSuffix()))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("report: save %q: %w", path, err)
	}

	b.logger.Info("[report] Excel report saved: %s", path)
	return path, nil
}

// deriveRows computes the numeric price and below-average flag for every
// record. Unparsable prices count as 0 and stay in the average; that
// drags the mean down for malformed rows, which is the defined behavior.
func deriveRows(records []models.ListingRecord) []models.ReportRow {
	rows := make([]models.ReportRow, 0, len(records))
	var total float64
	for _, r := range records {
		p := numericPrice(r.Price)
		total += p
		rows = append(rows, models.ReportRow{ListingRecord: r, NumericPrice: p})
	}

	mean := 0.0
	if len(rows) > 0 {
		mean = total / float64(len(rows))
	}
	for i := range rows {
		rows[i].BelowAverage = rows[i].NumericPrice < mean
	}
	return rows
}

// numericPrice strips every non-digit, non-dot character and parses the
// remainder; 0 on failure.
func numericPrice(raw string) float64 {
	cleaned := nonPriceChars.ReplaceAllString(raw, "")
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

func (b *Builder) writeHeader(f *excelize.File) error {
	styleID, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D3D3D3"}},
	})
	if err != nil {
		return err
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, styleID); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) writeRows(f *excelize.File, rows []models.ReportRow) {
	for i, row := range rows {
		values := []string{row.Site, row.Title, row.Price, row.Timestamp}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				b.logger.Warn("[report] Row %d: bad cell coordinates: %v", i+2, err)
				continue
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				b.logger.Warn("[report] Row %d: write failed: %v", i+2, err)
			}
		}
	}
	b.logger.Debug("[report] Wrote %d data row(s)", len(rows))
}

// highlightBelowAverage applies a green fill to the price cell of every
// row whose numeric price is strictly below the mean.
func (b *Builder) highlightBelowAverage(f *excelize.File, rows []models.ReportRow) {
	styleID, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"90EE90"}},
	})
	if err != nil {
		b.logger.Warn("[report] Highlight style failed: %v", err)
		return
	}

	for i, row := range rows {
		if !row.BelowAverage {
			continue
		}
		cell := fmt.Sprintf("C%d", i+2)
		if err := f.SetCellStyle(sheetName, cell, cell, styleID); err != nil {
			b.logger.Warn("[report] Highlight %s failed: %v", cell, err)
		}
	}
}

func (b *Builder) addChart(f *excelize.File, rowCount int) {
	lastRow := rowCount + 1
	err := f.AddChart(sheetName, "F5", &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       "Price",
			Categories: fmt.Sprintf("'%s'!$B$2:$B$%d", sheetName, lastRow),
			Values:     fmt.Sprintf("'%s'!$C$2:$C$%d", sheetName, lastRow),
		}},
		Title: []excelize.RichTextRun{{Text: "Price Comparison by Site"}},
		XAxis: excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Product"}}},
		YAxis: excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Price"}}},
	})
	if err != nil {
		b.logger.Warn("[report] Chart embed failed: %v", err)
		return
	}
	b.logger.Debug("[report] Bar chart added")
}

// autoSizeColumns widens every column to its longest stringified value
// plus fixed padding.
func (b *Builder) autoSizeColumns(f *excelize.File, rows []models.ReportRow) {
	for col := range headers {
		maxLen := len(headers[col])
		for _, row := range rows {
			v := [...]string{row.Site, row.Title, row.Price, row.Timestamp}[col]
			if len(v) > maxLen {
				maxLen = len(v)
			}
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			continue
		}
		if err := f.SetColWidth(sheetName, name, name, float64(maxLen+2)); err != nil {
			b.logger.Warn("[report] Column width %s failed: %v", name, err)
		}
	}
}

// randomSuffix returns 8 hex characters; collisions are negligible and
// no overwrite protection is needed beyond that.
func randomSuffix() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "00000000"
	}
	return hex.EncodeToString(buf)
}
