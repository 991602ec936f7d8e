// header.go - Page header parsing
package goheappage

import "fmt"

// PageHeader is the fixed 24-byte header at the start of every heap page.
// Lower and Upper bound the page's free space: the slot table grows up to
// Lower and tuple storage grows down to Upper.
type PageHeader struct {
	LSNLo       string // low half of the last-write LSN, hex formatted
	LSNHi       string // high half
	Checksum    uint16
	Flags       PageFlags
	Lower       uint16 // byte offset where free space starts
	Upper       uint16 // byte offset where free space ends
	Special     uint16
	SizeVersion uint16 // page size and layout version, packed
	PruneXID    uint32
}

// ParsePageHeader consumes exactly PageHeaderSize bytes from the cursor.
// No cross-field validation is performed; out-of-range offsets surface
// later, when the dependent structures are decoded.
func ParsePageHeader(cur *Cursor) (PageHeader, error) {
	if cur.Remaining() < PageHeaderSize {
		return PageHeader{}, fmt.Errorf("page header: %w", ErrExhausted)
	}
	lsnLo, _ := cur.Uint32()
	lsnHi, _ := cur.Uint32()
	checksum, _ := cur.Uint16()
	flags, _ := cur.Uint16()
	lower, _ := cur.Uint16()
	upper, _ := cur.Uint16()
	special, _ := cur.Uint16()
	sizeVersion, _ := cur.Uint16()
	pruneXID, _ := cur.Uint32()
	return PageHeader{
		LSNLo:       fmt.Sprintf("%#x", lsnLo),
		LSNHi:       fmt.Sprintf("%#x", lsnHi),
		Checksum:    checksum,
		Flags:       PageFlags(flags),
		Lower:       lower,
		Upper:       upper,
		Special:     special,
		SizeVersion: sizeVersion,
		PruneXID:    pruneXID,
	}, nil
}

// FreeSpace returns the number of free bytes between the slot table and
// the tuple region. Zero for an unformatted page.
func (h PageHeader) FreeSpace() int {
	if h.Upper < h.Lower {
		return 0
	}
	return int(h.Upper) - int(h.Lower)
}
