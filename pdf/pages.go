package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"pdf_exporter/pagerange"
)

// ParseRanges resolves a page range expression against a PDF file. The
// returned selection is 0-based; the page count is the ceiling it was
// validated against. Parse errors are returned untouched so callers can
// branch on *pagerange.ParseError.
func ParseRanges(inFile, ranges string) (pagerange.Selection, int, error) {
	totalPages, err := GetPageCount(inFile)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get page count: %v", err)
	}

	sel, err := pagerange.Parse(ranges, totalPages)
	if err != nil {
		return nil, 0, err
	}
	return sel, totalPages, nil
}

// ExtractPagesFromPDF copies the selected pages into a new PDF using pdfcpu
// collect, which preserves selection order and keeps repeated pages. With
// optimize set the output is additionally compacted.
func ExtractPagesFromPDF(inFile, outFile, ranges string, optimize bool) error {
	sel, _, err := ParseRanges(inFile, ranges)
	if err != nil {
		return err
	}

	// pdfcpu collect command: pdfcpu collect -p pages -- inFile outFile
	output, err := execCommandWithTimeout(DefaultCLITimeout, "pdfcpu", "collect", "-p", pageSpec(sel), "--", inFile, outFile)
	if err != nil {
		return fmt.Errorf("pdfcpu collect failed: %v\nOutput: %s", err, string(output))
	}

	if optimize {
		output, err := execCommandWithTimeout(DefaultCLITimeout, "pdfcpu", "optimize", outFile)
		if err != nil {
			return fmt.Errorf("pdfcpu optimize failed: %v\nOutput: %s", err, string(output))
		}
	}

	return nil
}

// RemovePagesFromPDF removes the selected pages from a PDF file using the
// pdfcpu CLI. Removing every page is rejected before pdfcpu runs, since the
// result would be an empty document.
func RemovePagesFromPDF(inFile, outFile, ranges string) error {
	sel, totalPages, err := ParseRanges(inFile, ranges)
	if err != nil {
		return err
	}

	remaining := totalPages
	for p := 0; p < totalPages; p++ {
		if sel.Contains(p) {
			remaining--
		}
	}
	if remaining == 0 {
		return fmt.Errorf("selection covers all %d pages, nothing would remain", totalPages)
	}

	// pdfcpu pages remove command: pdfcpu pages remove -p pages -- inFile outFile
	output, err := execCommandWithTimeout(DefaultCLITimeout, "pdfcpu", "pages", "remove", "-p", pageSpec(sel), "--", inFile, outFile)
	if err != nil {
		return fmt.Errorf("pdfcpu remove failed: %v\nOutput: %s", err, string(output))
	}

	return nil
}

// RangePart is one output of a split: the entry it came from and the file
// the pages were written to.
type RangePart struct {
	Index int
	Entry pagerange.Entry
	File  string
}

// SplitPDFByRanges writes one PDF per range entry into outDir, numbered in
// selection order.
func SplitPDFByRanges(inFile, outDir, ranges string) ([]RangePart, error) {
	sel, _, err := ParseRanges(inFile, ranges)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %v", err)
	}

	parts := make([]RangePart, 0, len(sel))
	for i, entry := range sel {
		outFile := filepath.Join(outDir, fmt.Sprintf("part_%02d_pages_%d-%d.pdf", i+1, entry.First+1, entry.Last+1))

		spec := pageSpec(pagerange.Selection{entry})
		output, err := execCommandWithTimeout(SplitTimeout, "pdfcpu", "collect", "-p", spec, "--", inFile, outFile)
		if err != nil {
			// Remove parts already written so a failed split leaves nothing behind
			for _, p := range parts {
				os.Remove(p.File)
			}
			return nil, fmt.Errorf("pdfcpu collect failed for range %d-%d: %v\nOutput: %s", entry.First+1, entry.Last+1, err, string(output))
		}

		parts = append(parts, RangePart{Index: i, Entry: entry, File: outFile})
	}

	return parts, nil
}

// pageSpec renders a selection as pdfcpu's comma separated 1-based page list
func pageSpec(sel pagerange.Selection) string {
	pages := sel.Pages()
	pageStrs := make([]string, len(pages))
	for i, p := range pages {
		pageStrs[i] = strconv.Itoa(p)
	}
	return strings.Join(pageStrs, ",")
}
