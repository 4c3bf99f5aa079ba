// Package catalog loads and normalizes the attachment catalog that drives a
// binder run. Records come from a spreadsheet; everything downstream keys off
// the canonical attachment number produced here.
package catalog

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// DefaultLanguage is assumed when the catalog does not specify one.
const DefaultLanguage = "EN"

// Record describes one attachment from the catalog. Records are immutable
// once read; identity is the canonical form of Number.
type Record struct {
	Number    string // canonical, see NormalizeNumber
	Title     string
	Language  string
	Filename  string
	PageCount int // declared content page count, defaults to 1

	// Optional descriptive metadata rendered onto the cover page.
	Date         string
	Category     string
	Body         string
	Remarks      string
	Confidential string
	SourceURL    string
}

// Path returns the expected location of the attachment PDF under inputDir.
// Attachments are filed by lower-cased language code.
func (r Record) Path(inputDir string) string {
	return filepath.Join(inputDir, strings.ToLower(r.Language), r.Filename)
}

// Label returns the display label used for TOC rows and outline entries.
func (r Record) Label() string {
	title := r.Title
	if title == "" {
		title = "Untitled"
	}
	return fmt.Sprintf("Attachment %s: %s", r.Number, title)
}

// NormalizeNumber converts an attachment number to its canonical string form.
// Integral floats collapse ("14.0" -> "14"); fractional numbers keep their
// fraction ("14.1" stays "14.1"). Non-numeric input is trimmed and returned
// as-is.
func NormalizeNumber(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return s
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// NormalizePageCount parses a declared page count, defaulting to 1 on any
// failure. Page counts are display hints only, so a bad value is never an
// error.
func NormalizePageCount(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 1
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 1 {
		return 1
	}
	return int(f)
}

// numberValue returns the sort value for a canonical number. Non-numeric
// numbers sort after all numeric ones.
func numberValue(number string) (float64, bool) {
	f, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// SortRecords orders records ascending by attachment number. Non-numeric
// numbers sort last, alphabetically among themselves. The sort is stable so
// catalog order breaks remaining ties.
func SortRecords(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		vi, oki := numberValue(records[i].Number)
		vj, okj := numberValue(records[j].Number)
		if oki && okj {
			return vi < vj
		}
		if oki != okj {
			return oki
		}
		return records[i].Number < records[j].Number
	})
}

// ByNumber builds a lookup from canonical number to record.
func ByNumber(records []Record) map[string]Record {
	m := make(map[string]Record, len(records))
	for _, r := range records {
		m[r.Number] = r
	}
	return m
}
