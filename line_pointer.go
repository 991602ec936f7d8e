// line_pointer.go - Slot table (line pointer) parsing
package goheappage

import "fmt"

// Line pointer word layout, most significant bit first:
// bits 31-17 tuple length, bits 16-15 flag, bits 14-0 tuple offset.
const (
	lpLengthMask = 0xFFFE0000
	lpFlagMask   = 0x00018000
	lpOffsetMask = 0x00007FFF
)

// LinePointer is one 4-byte slot table entry locating a tuple in the page.
type LinePointer struct {
	Length uint16 // tuple length in bytes (15 bits)
	Flag   LinePointerFlag
	Offset uint16 // tuple byte offset within the page (15 bits)
}

// ParseLinePointer decodes a single little-endian slot word.
func ParseLinePointer(cur *Cursor) (LinePointer, error) {
	w, err := cur.Uint32()
	if err != nil {
		return LinePointer{}, err
	}
	return LinePointer{
		Length: uint16((w & lpLengthMask) >> 17),
		Flag:   LinePointerFlag((w & lpFlagMask) >> 15),
		Offset: uint16(w & lpOffsetMask),
	}, nil
}

// Word packs the line pointer back into its on-disk representation.
func (lp LinePointer) Word() uint32 {
	return uint32(lp.Length)<<17 | uint32(lp.Flag)<<15 | uint32(lp.Offset)
}

// ParseLinePointers decodes the slot table that immediately follows the
// page header. The table occupies the bytes from the end of the header up
// to the lower free-space offset. A lower offset inside the header means
// an unformatted page and yields an empty table; a table length that is
// not a whole number of slot words is a malformed header.
func ParseLinePointers(cur *Cursor, lower uint16) ([]LinePointer, error) {
	if lower <= PageHeaderSize {
		return nil, nil
	}
	tableLen := int(lower) - PageHeaderSize
	if tableLen%LinePointerSize != 0 {
		return nil, fmt.Errorf("slot table length %d is not a multiple of %d", tableLen, LinePointerSize)
	}
	count := tableLen / LinePointerSize
	lps := make([]LinePointer, 0, count)
	for i := 0; i < count; i++ {
		lp, err := ParseLinePointer(cur)
		if err != nil {
			return nil, fmt.Errorf("line pointer %d: %w", i, err)
		}
		lps = append(lps, lp)
	}
	return lps, nil
}
