package pagerange

// Selection is the ordered list of page intervals produced by Parse. Entry
// order follows the expression, and downstream consumers rely on it (e.g.
// export ordering).
type Selection []Entry

// Contains reports whether any entry covers the 0-based page index.
func (sel Selection) Contains(page int) bool {
	for _, e := range sel {
		if page >= e.First && page <= e.Last {
			return true
		}
	}
	return false
}

// Pages expands the selection into 1-based page numbers in selection order.
// Pages covered by more than one entry appear once per entry.
func (sel Selection) Pages() []int {
	var pages []int
	for _, e := range sel {
		for p := e.First; p <= e.Last; p++ {
			pages = append(pages, p+1)
		}
	}
	return pages
}

// PageCount returns the number of pages the selection expands to, counting
// overlaps once per entry.
func (sel Selection) PageCount() int {
	total := 0
	for _, e := range sel {
		total += e.Last - e.First + 1
	}
	return total
}
