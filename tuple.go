// tuple.go - Row version header and payload parsing
package goheappage

import (
	"fmt"
	"sort"
)

// TupleData is one decoded row version: the fixed tuple header plus the
// raw payload bytes its line pointer covers. The payload is copied out of
// the page buffer, so a TupleData never aliases its source page.
type TupleData struct {
	Offset       uint16 // copied from the line pointer
	Length       uint16 // copied from the line pointer
	Xmin         uint32 // creating transaction
	Xmax         uint32 // invalidating transaction, 0 if live
	CID          uint32
	CTIDBlock    uint32
	CTIDOffset   uint16
	Infomask2    Infomask2
	Infomask     Infomask
	HeaderOffset uint16 // byte offset within the tuple where the payload begins
	Data         []byte
}

// ParseTuple decodes one tuple through a fresh window into the full page
// buffer starting at the line pointer's offset. The window is independent
// of the cursor used for the header and slot table.
func ParseTuple(page []byte, lp LinePointer) (TupleData, error) {
	if int(lp.Offset) > len(page) {
		return TupleData{}, fmt.Errorf("tuple at %d: %w", lp.Offset, ErrExhausted)
	}
	cur := NewCursor(page[lp.Offset:])
	if cur.Remaining() < TupleHeaderSize {
		return TupleData{}, fmt.Errorf("tuple header at %d: %w", lp.Offset, ErrExhausted)
	}
	xmin, _ := cur.Uint32()
	xmax, _ := cur.Uint32()
	cid, _ := cur.Uint32()
	ctidBlock, _ := cur.Uint32()
	ctidOff, _ := cur.Uint16()
	mask2, _ := cur.Uint16()
	mask, _ := cur.Uint16()
	headerOff, _ := cur.Uint16()

	if headerOff > lp.Length {
		return TupleData{}, fmt.Errorf("tuple at %d: header offset %d beyond length %d", lp.Offset, headerOff, lp.Length)
	}
	raw, err := cur.Bytes(int(lp.Length) - int(headerOff))
	if err != nil {
		return TupleData{}, fmt.Errorf("tuple payload at %d: %w", lp.Offset, err)
	}
	data := make([]byte, len(raw))
	copy(data, raw)

	return TupleData{
		Offset:       lp.Offset,
		Length:       lp.Length,
		Xmin:         xmin,
		Xmax:         xmax,
		CID:          cid,
		CTIDBlock:    ctidBlock,
		CTIDOffset:   ctidOff,
		Infomask2:    Infomask2(mask2 & infomask2Bits),
		Infomask:     Infomask(mask),
		HeaderOffset: headerOff,
		Data:         data,
	}, nil
}

// ParseTuples decodes every tuple stored in the tuple region of the page.
// Line pointers whose offset falls below the upper free-space offset point
// into free space or the slot table and are skipped. Tuples are decoded in
// ascending offset order so the result does not depend on slot order.
func ParseTuples(page []byte, lps []LinePointer, upper uint16) ([]TupleData, error) {
	qualifying := make([]LinePointer, 0, len(lps))
	for _, lp := range lps {
		if lp.Offset >= upper {
			qualifying = append(qualifying, lp)
		}
	}
	sort.Slice(qualifying, func(i, j int) bool {
		return qualifying[i].Offset < qualifying[j].Offset
	})
	tuples := make([]TupleData, 0, len(qualifying))
	for _, lp := range qualifying {
		t, err := ParseTuple(page, lp)
		if err != nil {
			return nil, err
		}
		tuples = append(tuples, t)
	}
	return tuples, nil
}

// CTID formats the tuple identifier the way it is usually printed.
func (t TupleData) CTID() string {
	return fmt.Sprintf("(%d,%d)", t.CTIDBlock, t.CTIDOffset)
}
