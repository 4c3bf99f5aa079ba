package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Field names the catalog columns the reader understands. Spreadsheet headers
// are matched against a set of aliases per field, case-insensitively.
type Field string

const (
	FieldNumber       Field = "number"
	FieldTitle        Field = "title"
	FieldPageCount    Field = "page_count"
	FieldFilename     Field = "filename"
	FieldLanguage     Field = "language"
	FieldDate         Field = "date"
	FieldCategory     Field = "category"
	FieldBody         Field = "body"
	FieldRemarks      Field = "remarks"
	FieldConfidential Field = "confidential"
	FieldSourceURL    Field = "source_url"
	FieldExclude      Field = "exclude"
)

// headerAliases maps each field to the spreadsheet headers that may carry it.
var headerAliases = map[Field][]string{
	FieldNumber:       {"Attachment Number", "Attachment #", "Number"},
	FieldTitle:        {"Title", "Document Title"},
	FieldPageCount:    {"Page count", "Pages", "Page Count"},
	FieldFilename:     {"Filename Reference", "Filename", "File"},
	FieldLanguage:     {"Language", "Lang", "Language Code"},
	FieldDate:         {"Date", "Date (time Pacific)", "Document Date"},
	FieldCategory:     {"Category", "Document Category"},
	FieldBody:         {"Body", "Description", "Body (Description)"},
	FieldRemarks:      {"Additional Remarks about File", "Remarks", "Notes"},
	FieldConfidential: {"Confidential", "Confidentiality"},
	FieldSourceURL:    {"Source URL", "URL", "Source"},
	FieldExclude:      {"Exclude", "Skip"},
}

// Required column sets per purpose. TOC generation needs titles; merging
// needs filenames.
var (
	RequiredForTOC   = []Field{FieldNumber, FieldTitle}
	RequiredForMerge = []Field{FieldNumber, FieldFilename}
)

// Reader loads attachment records from an xlsx workbook.
type Reader struct {
	Path   string
	Sheet  string
	Logger *slog.Logger
}

// Read loads, filters, normalizes and sorts the catalog. Missing workbook,
// missing sheet, or missing required columns are configuration errors and
// abort the run before any PDF work starts.
func (r *Reader) Read(required []Field) ([]Record, error) {
	log := r.Logger
	if log == nil {
		log = slog.Default()
	}

	if _, err := os.Stat(r.Path); err != nil {
		return nil, fmt.Errorf("catalog spreadsheet not found: %s", r.Path)
	}

	f, err := excelize.OpenFile(r.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet %s: %w", r.Path, err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(r.Sheet)
	if err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found in %s", r.Sheet, r.Path)
	}

	rows, err := f.GetRows(r.Sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", r.Sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", r.Sheet)
	}

	records, err := parseRows(rows[0], rows[1:], required)
	if err != nil {
		return nil, err
	}

	log.Info("catalog loaded", "path", r.Path, "sheet", r.Sheet, "attachments", len(records))
	return records, nil
}

// mapHeaders resolves the column index for each known field.
func mapHeaders(headers []string) map[Field]int {
	indices := make(map[Field]int)
	for field, aliases := range headerAliases {
		for i, header := range headers {
			h := strings.TrimSpace(header)
			for _, alias := range aliases {
				if strings.EqualFold(h, alias) {
					indices[field] = i
					break
				}
			}
			if _, ok := indices[field]; ok {
				break
			}
		}
	}
	return indices
}

// parseRows converts raw sheet rows into sorted records. Exposed to tests
// via the package boundary so reader behavior is testable without a workbook.
func parseRows(headers []string, rows [][]string, required []Field) ([]Record, error) {
	indices := mapHeaders(headers)

	for _, field := range required {
		if _, ok := indices[field]; !ok {
			return nil, fmt.Errorf("required column %q not found in catalog headers", field)
		}
	}

	cell := func(row []string, field Field) string {
		i, ok := indices[field]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []Record
	for _, row := range rows {
		if isEmptyRow(row) {
			continue
		}
		if isExcluded(cell(row, FieldExclude)) {
			continue
		}

		rec := Record{
			Number:       NormalizeNumber(cell(row, FieldNumber)),
			Title:        cell(row, FieldTitle),
			Language:     cell(row, FieldLanguage),
			Filename:     cell(row, FieldFilename),
			PageCount:    NormalizePageCount(cell(row, FieldPageCount)),
			Date:         cell(row, FieldDate),
			Category:     cell(row, FieldCategory),
			Body:         cell(row, FieldBody),
			Remarks:      cell(row, FieldRemarks),
			Confidential: cell(row, FieldConfidential),
			SourceURL:    cell(row, FieldSourceURL),
		}
		if rec.Number == "" {
			continue
		}
		if rec.Language == "" {
			rec.Language = DefaultLanguage
		}
		records = append(records, rec)
	}

	SortRecords(records)
	return records, nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func isExcluded(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "y", "1", "x":
		return true
	}
	return false
}
