package pagerange

import (
	"errors"
	"fmt"
)

// ErrZeroPageCount reports a caller error: parsing against a document with no
// pages. It is never produced by malformed user input.
var ErrZeroPageCount = errors.New("page range: page count must be at least 1")

// ErrorKind classifies why a page range expression was rejected.
type ErrorKind int

const (
	// InvalidRange means a sub-expression matched none of the accepted shapes.
	InvalidRange ErrorKind = iota

	// OutOfRange means a bound was larger than the document's page count.
	OutOfRange

	// InvalidOrder means a range's bounds were not in increasing order.
	InvalidOrder

	// InvalidPageNumber means page 0 was referenced; numbering starts at 1.
	InvalidPageNumber
)

// String returns a stable machine-readable code for the kind.
func (k ErrorKind) String() string {
	switch k {
	case OutOfRange:
		return "out_of_range"
	case InvalidOrder:
		return "invalid_order"
	case InvalidPageNumber:
		return "invalid_page_number"
	default:
		return "invalid_range"
	}
}

// ParseError describes a rejected page range expression. Kind and Token are
// always set; Bound and PageCount are set for OutOfRange. Callers branch on
// Kind rather than on message text.
type ParseError struct {
	Kind      ErrorKind
	Token     string // offending sub-expression as written
	Bound     int    // offending page number (OutOfRange only)
	PageCount int    // largest page number that may be referenced (OutOfRange only)
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case OutOfRange:
		return fmt.Sprintf("page range %q: page %d is larger than the page count %d", e.Token, e.Bound, e.PageCount)
	case InvalidOrder:
		return fmt.Sprintf("page range %q: interval bounds must be in increasing order", e.Token)
	case InvalidPageNumber:
		return fmt.Sprintf("page range %q: page numbers start at 1", e.Token)
	default:
		return fmt.Sprintf("page range %q: invalid page range", e.Token)
	}
}
