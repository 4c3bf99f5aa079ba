// Package render generates the TOC/cover-page HTML and drives the external
// HTML-to-PDF renderer. The page numbers printed here are estimates; the
// resolver corrects all navigation after assembly, so drift is cosmetic.
package render

import (
	"fmt"
	"strings"

	"github.com/jackzampolin/binder/internal/catalog"
	"github.com/jackzampolin/binder/internal/layout"
)

// documentCSS lays out the TOC table and centered cover pages for a letter
// page with one inch margins.
const documentCSS = `
    @page {
      size: 8.5in 11in;
      margin: 1in;
      @bottom-center {
        content: counter(page);
        font-family: Arial, sans-serif;
        font-size: 10pt;
      }
    }
    body {
      font-family: Arial, sans-serif;
      font-size: 12pt;
      line-height: 1.5;
    }
    h1 {
      font-size: 18pt;
      font-weight: bold;
      text-align: center;
      margin-top: 0.5in;
      margin-bottom: 0.25in;
    }
    table.toc-table {
      width: 100%;
      border-collapse: collapse;
      margin-top: 0.25in;
      table-layout: fixed;
    }
    table.toc-table td.attachment-num { width: 1.5in; vertical-align: top; padding-bottom: 0.15in; }
    table.toc-table td.attachment-title { vertical-align: top; padding-bottom: 0.15in; }
    table.toc-table td.page-num { width: 0.5in; text-align: right; vertical-align: top; padding-bottom: 0.15in; }
    a.toc-link { color: blue; text-decoration: underline; white-space: nowrap; }
    .toc-container { break-after: page; width: 100%; }
    .cover-page { page-break-before: always; page-break-after: always; text-align: center; }
    .cover-title { font-size: 16pt; font-weight: bold; margin-top: 3in; margin-bottom: 0.25in; }
    .cover-number { font-size: 14pt; margin-bottom: 0.25in; }
    .cover-info { font-size: 12pt; margin-bottom: 0.15in; }
`

// BuildHTML renders the TOC table and one cover page per record. Each TOC
// row links to "#cover-<number>" and each cover page carries the literal
// "Attachment <number>" and "Page <estimate>" lines near its top, which is
// exactly what the resolver later scans for.
func BuildHTML(records []catalog.Record, est layout.Estimate) string {
	var sb strings.Builder

	sb.WriteString(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Table of Contents and Cover Pages</title>
  <style>`)
	sb.WriteString(documentCSS)
	sb.WriteString(`</style>
</head>
<body>
`)

	sb.WriteString("  <div class=\"toc-container\">\n")
	sb.WriteString("    <h1>Table of Contents</h1>\n")
	sb.WriteString("    <table class=\"toc-table\">\n")
	for _, rec := range records {
		page := est.CoverPages[rec.Number]
		sb.WriteString("      <tr id=\"toc-entry-")
		sb.WriteString(escapeHTML(rec.Number))
		sb.WriteString("\">\n")
		fmt.Fprintf(&sb, "        <td class=\"attachment-num\"><a class=\"toc-link\" href=\"#cover-%s\">Attachment %s</a></td>\n",
			escapeHTML(rec.Number), escapeHTML(rec.Number))
		fmt.Fprintf(&sb, "        <td class=\"attachment-title\">%s</td>\n", escapeHTML(titleOf(rec)))
		fmt.Fprintf(&sb, "        <td class=\"page-num\">%d</td>\n", page)
		sb.WriteString("      </tr>\n")
	}
	sb.WriteString("    </table>\n")
	sb.WriteString("  </div>\n")

	for _, rec := range records {
		writeCoverPage(&sb, rec, est.CoverPages[rec.Number])
	}

	sb.WriteString("</body>\n</html>\n")
	return sb.String()
}

// writeCoverPage emits one cover page div. The heading lines come first so
// the cover pattern lands within the resolver's scan window.
func writeCoverPage(sb *strings.Builder, rec catalog.Record, page int) {
	fmt.Fprintf(sb, "  <div class=\"cover-page\" id=\"cover-%s\">\n", escapeHTML(rec.Number))
	fmt.Fprintf(sb, "    <div class=\"cover-title\">%s</div>\n", escapeHTML(titleOf(rec)))
	fmt.Fprintf(sb, "    <div class=\"cover-number\">Attachment %s</div>\n", escapeHTML(rec.Number))
	fmt.Fprintf(sb, "    <div class=\"cover-info\">Page %d</div>\n", page)

	meta := []struct{ label, value string }{
		{"Date", rec.Date},
		{"Category", rec.Category},
		{"", rec.Body},
		{"Remarks", rec.Remarks},
		{"Confidentiality", rec.Confidential},
		{"Source", rec.SourceURL},
	}
	for _, m := range meta {
		if m.value == "" {
			continue
		}
		if m.label == "" {
			fmt.Fprintf(sb, "    <div class=\"cover-info\">%s</div>\n", escapeHTML(m.value))
			continue
		}
		fmt.Fprintf(sb, "    <div class=\"cover-info\">%s: %s</div>\n", m.label, escapeHTML(m.value))
	}
	sb.WriteString("  </div>\n")
}

func titleOf(rec catalog.Record) string {
	if rec.Title == "" {
		return "Untitled"
	}
	return rec.Title
}

func escapeHTML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return r.Replace(s)
}
