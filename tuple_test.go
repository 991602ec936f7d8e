package goheappage

import (
	"bytes"
	"errors"
	"sort"
	"strings"
	"testing"
)

func TestParseTuple(t *testing.T) {
	tup := rawTuple{
		xmin: 731, xmax: 0, cid: 3,
		ctidBlock: 0, ctidOff: 1,
		infomask2: 0x2003, // attribute count in the low bits must be masked off
		infomask:  0x0902, // HASVARWIDTH | XMIN_COMMITTED | XMAX_INVALID
		headerOff: TupleHeaderSize,
		payload:   []byte("hello tuple"),
	}
	page := make([]byte, PageSize)
	const off = 8000
	tup.writeAt(page, off)

	lp := LinePointer{Length: tup.length(), Flag: LpNormal, Offset: off}
	got, err := ParseTuple(page, lp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Offset != off || got.Length != tup.length() {
		t.Errorf("offset/length not copied from line pointer: %+v", got)
	}
	if got.Xmin != 731 || got.Xmax != 0 || got.CID != 3 {
		t.Errorf("transaction fields wrong: %+v", got)
	}
	if got.CTID() != "(0,1)" {
		t.Errorf("expected ctid (0,1), got %s", got.CTID())
	}
	if got.Infomask2 != MaskKeysUpdated {
		t.Errorf("expected infomask2 KEYS_UPDATED, got %s", got.Infomask2)
	}
	if got.Infomask != MaskHasVarWidth|MaskXminCommitted|MaskXmaxInvalid {
		t.Errorf("unexpected infomask: %s", got.Infomask)
	}
	if got.HeaderOffset != TupleHeaderSize {
		t.Errorf("expected header offset %d, got %d", TupleHeaderSize, got.HeaderOffset)
	}
	if !bytes.Equal(got.Data, []byte("hello tuple")) {
		t.Errorf("unexpected payload: %q", got.Data)
	}
}

func TestParseTuplePayloadIsCopied(t *testing.T) {
	tup := rawTuple{xmin: 1, headerOff: TupleHeaderSize, payload: []byte("immutable")}
	page := make([]byte, PageSize)
	const off = 4096
	tup.writeAt(page, off)

	got, err := ParseTuple(page, LinePointer{Length: tup.length(), Flag: LpNormal, Offset: off})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// scribbling over the page must not reach the decoded tuple
	for i := range page {
		page[i] = 0xFF
	}
	if !bytes.Equal(got.Data, []byte("immutable")) {
		t.Errorf("payload aliases the page buffer: %q", got.Data)
	}
}

func TestParseTupleMalformed(t *testing.T) {
	page := make([]byte, PageSize)

	t.Run("Offset beyond page", func(t *testing.T) {
		_, err := ParseTuple(page[:100], LinePointer{Length: 30, Offset: 200})
		if !errors.Is(err, ErrExhausted) {
			t.Errorf("expected ErrExhausted, got %v", err)
		}
	})

	t.Run("Header past end of page", func(t *testing.T) {
		_, err := ParseTuple(page, LinePointer{Length: 30, Offset: PageSize - 10})
		if !errors.Is(err, ErrExhausted) {
			t.Errorf("expected ErrExhausted, got %v", err)
		}
	})

	t.Run("Header offset beyond tuple length", func(t *testing.T) {
		tup := rawTuple{headerOff: 60}
		tup.writeAt(page, 1000)
		_, err := ParseTuple(page, LinePointer{Length: 40, Offset: 1000})
		if err == nil || !strings.Contains(err.Error(), "header offset") {
			t.Errorf("expected header offset error, got %v", err)
		}
	})
}

func TestParseTuplesOrdering(t *testing.T) {
	// slots listed in descending offset order; output must ascend by offset
	offsets := []uint16{7900, 7500, 7700, 7600, 7800}
	page := make([]byte, PageSize)
	lps := make([]LinePointer, 0, len(offsets))
	for i, off := range offsets {
		tup := rawTuple{xmin: uint32(i + 1), headerOff: TupleHeaderSize, payload: []byte{byte(i)}}
		tup.writeAt(page, int(off))
		lps = append(lps, LinePointer{Length: tup.length(), Flag: LpNormal, Offset: off})
	}

	tuples, err := ParseTuples(page, lps, 7000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tuples) != len(offsets) {
		t.Fatalf("expected %d tuples, got %d", len(offsets), len(tuples))
	}
	if !sort.SliceIsSorted(tuples, func(i, j int) bool { return tuples[i].Offset < tuples[j].Offset }) {
		t.Errorf("tuples not sorted by offset: %+v", tuples)
	}
}

func TestParseTuplesSkipsFreeSpacePointers(t *testing.T) {
	page := make([]byte, PageSize)
	tup := rawTuple{xmin: 9, headerOff: TupleHeaderSize, payload: []byte("live")}
	tup.writeAt(page, 7800)

	lps := []LinePointer{
		{Length: tup.length(), Flag: LpNormal, Offset: 7800},
		{Length: 0, Flag: LpRedirect, Offset: 2}, // redirect into the slot table
		{Length: 0, Flag: LpUnused, Offset: 0},
	}

	tuples, err := ParseTuples(page, lps, 7500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tuples) != 1 {
		t.Fatalf("expected 1 tuple, got %d", len(tuples))
	}
	if tuples[0].Xmin != 9 {
		t.Errorf("decoded the wrong tuple: %+v", tuples[0])
	}
}

func TestInfomaskStrings(t *testing.T) {
	tests := []struct {
		mask Infomask
		want string
	}{
		{0, "NONE"},
		{MaskHasNull, "HASNULL"},
		{MaskXminCommitted | MaskXmaxInvalid, "XMIN_COMMITTED|XMAX_INVALID"},
	}
	for _, tt := range tests {
		if got := tt.mask.String(); got != tt.want {
			t.Errorf("mask %#x: expected %q, got %q", uint16(tt.mask), tt.want, got)
		}
	}

	m2 := MaskHotUpdated | MaskOnlyTuple
	if got := m2.String(); got != "HOT_UPDATED|ONLY_TUPLE" {
		t.Errorf("unexpected infomask2 string: %q", got)
	}
}
