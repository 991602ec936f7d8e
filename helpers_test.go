package goheappage

import "encoding/binary"

// rawHeader builds the 24-byte on-disk header encoding used across tests.
type rawHeader struct {
	lsnLo, lsnHi                                  uint32
	checksum, flags, lower, upper, special, sizeV uint16
	pruneXID                                      uint32
}

func (h rawHeader) encode() []byte {
	b := make([]byte, PageHeaderSize)
	binary.LittleEndian.PutUint32(b[0:], h.lsnLo)
	binary.LittleEndian.PutUint32(b[4:], h.lsnHi)
	binary.LittleEndian.PutUint16(b[8:], h.checksum)
	binary.LittleEndian.PutUint16(b[10:], h.flags)
	binary.LittleEndian.PutUint16(b[12:], h.lower)
	binary.LittleEndian.PutUint16(b[14:], h.upper)
	binary.LittleEndian.PutUint16(b[16:], h.special)
	binary.LittleEndian.PutUint16(b[18:], h.sizeV)
	binary.LittleEndian.PutUint32(b[20:], h.pruneXID)
	return b
}

func packLinePointer(length uint16, flag LinePointerFlag, offset uint16) uint32 {
	return uint32(length)<<17 | uint32(flag)<<15 | uint32(offset)
}

// rawTuple places one tuple's fixed header and payload into a page buffer.
type rawTuple struct {
	xmin, xmax, cid uint32
	ctidBlock       uint32
	ctidOff         uint16
	infomask2       uint16
	infomask        uint16
	headerOff       uint16
	payload         []byte
}

func (t rawTuple) writeAt(page []byte, off int) {
	binary.LittleEndian.PutUint32(page[off+0:], t.xmin)
	binary.LittleEndian.PutUint32(page[off+4:], t.xmax)
	binary.LittleEndian.PutUint32(page[off+8:], t.cid)
	binary.LittleEndian.PutUint32(page[off+12:], t.ctidBlock)
	binary.LittleEndian.PutUint16(page[off+16:], t.ctidOff)
	binary.LittleEndian.PutUint16(page[off+18:], t.infomask2)
	binary.LittleEndian.PutUint16(page[off+20:], t.infomask)
	binary.LittleEndian.PutUint16(page[off+22:], t.headerOff)
	copy(page[off+TupleHeaderSize:], t.payload)
}

func (t rawTuple) length() uint16 {
	return TupleHeaderSize + uint16(len(t.payload))
}

// buildPage lays out a whole page: header at byte 0, slot table right
// after it, tuples at the offsets the slots name.
func buildPage(hdr rawHeader, slots []uint32, tuples map[int]rawTuple) []byte {
	page := make([]byte, PageSize)
	copy(page, hdr.encode())
	for i, w := range slots {
		binary.LittleEndian.PutUint32(page[PageHeaderSize+i*LinePointerSize:], w)
	}
	for off, tup := range tuples {
		tup.writeAt(page, off)
	}
	return page
}
