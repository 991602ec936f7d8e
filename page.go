// page.go - Whole-page decoding
package goheappage

import "fmt"

// HeapPage is one fully decoded page: header, slot table and the tuples
// the slot table references. Decoding is stateless, so decoding the same
// buffer twice yields identical pages.
type HeapPage struct {
	Index        int
	Header       PageHeader
	LinePointers []LinePointer
	Tuples       []TupleData
	Data         []byte // full page bytes, owned by this page
}

// NewHeapPage decodes one fixed-size page buffer. The buffer becomes owned
// by the returned page and must not be mutated by the caller afterwards.
func NewHeapPage(index int, page []byte) (*HeapPage, error) {
	if len(page) != PageSize {
		return nil, fmt.Errorf("expected %dB page, got %d", PageSize, len(page))
	}
	cur := NewCursor(page)
	hdr, err := ParsePageHeader(cur)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", index, err)
	}
	lps, err := ParseLinePointers(cur, hdr.Lower)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", index, err)
	}
	tuples, err := ParseTuples(page, lps, hdr.Upper)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", index, err)
	}
	return &HeapPage{
		Index:        index,
		Header:       hdr,
		LinePointers: lps,
		Tuples:       tuples,
		Data:         page,
	}, nil
}

// FreeSpaceMap derives the occupancy grid for this page.
func (p *HeapPage) FreeSpaceMap(cellSize int) [][]MapCell {
	return BuildFreeSpaceMap(p.Header, cellSize)
}
