// Package pagerange parses page range expressions like "1, 3-5, -2" into
// page intervals for export, print and removal operations.
package pagerange

import (
	"strconv"
	"strings"
)

// Entry is an inclusive interval of 0-based page indices.
type Entry struct {
	First int
	Last  int
}

// Parse converts a page range expression into an ordered list of 0-based
// inclusive page intervals.
//
// The expression is a sequence of sub-expressions separated by ',', ';' or
// ':'. Each sub-expression is one of "n" (a single page), "n-" (from page n
// to the end), "-m" (from the start to page m), "n-m" (a closed range) or
// "-" (all pages), where n and m are 1-based page numbers. Whitespace around
// numbers and the hyphen is ignored. pageCount is the largest page number
// that may be referenced.
//
// Bounds larger than pageCount, references to page 0 and decreasing ranges
// are rejected, not clamped. The first invalid sub-expression aborts the
// whole parse with a *ParseError; no partial result is returned. Parsing
// against pageCount < 1 returns ErrZeroPageCount.
func Parse(s string, pageCount int) (Selection, error) {
	if pageCount < 1 {
		return nil, ErrZeroPageCount
	}

	var entries Selection
	for _, token := range splitExpressions(s) {
		first, last, ok := recognize(token, pageCount)
		if !ok {
			return nil, &ParseError{Kind: InvalidRange, Token: token}
		}

		if first > pageCount || last > pageCount {
			bound := last
			if first > pageCount {
				bound = first
			}
			return nil, &ParseError{Kind: OutOfRange, Token: token, Bound: bound, PageCount: pageCount}
		}
		if last < first {
			return nil, &ParseError{Kind: InvalidOrder, Token: token}
		}
		if first == 0 { // last cannot be 0 unless first is
			return nil, &ParseError{Kind: InvalidPageNumber, Token: token}
		}

		// User input is 1-based, page indices are 0-based. Neither bound
		// can be 0 here, so the decrement cannot underflow.
		entries = append(entries, Entry{First: first - 1, Last: last - 1})
	}
	return entries, nil
}

// splitExpressions breaks the expression at every separator occurrence.
// Empty sub-expressions are kept so the recognizer can report them.
func splitExpressions(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ',', ';', ':':
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}

// recognize matches one sub-expression against the accepted shapes and
// returns its 1-based bounds. Matching is exact over the whole trimmed
// token; anything with more than one hyphen or with non-digit page numbers
// fails.
func recognize(token string, pageCount int) (first, last int, ok bool) {
	s := strings.TrimSpace(token)

	dash := strings.IndexByte(s, '-')
	if dash < 0 {
		n, ok := parsePageNumber(s)
		if !ok {
			return 0, 0, false
		}
		return n, n, true
	}

	left := strings.TrimSpace(s[:dash])
	right := strings.TrimSpace(s[dash+1:])

	switch {
	case left == "" && right == "":
		// "-" selects the whole document
		return 1, pageCount, true
	case right == "":
		n, ok := parsePageNumber(left)
		if !ok {
			return 0, 0, false
		}
		return n, pageCount, true
	case left == "":
		m, ok := parsePageNumber(right)
		if !ok {
			return 0, 0, false
		}
		return 1, m, true
	default:
		n, okN := parsePageNumber(left)
		m, okM := parsePageNumber(right)
		if !okN || !okM {
			return 0, 0, false
		}
		return n, m, true
	}
}

// parsePageNumber parses a bare decimal page number. Signs, decimal points
// and embedded whitespace are all rejected.
func parsePageNumber(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
