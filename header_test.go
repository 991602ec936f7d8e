package goheappage

import (
	"errors"
	"testing"
)

func TestParsePageHeader(t *testing.T) {
	tests := []struct {
		name string
		raw  rawHeader
		want PageHeader
	}{
		{
			name: "Typical formatted page",
			raw: rawHeader{
				lsnLo: 0x16b2d48, lsnHi: 0x1,
				checksum: 41290, flags: 0x0001,
				lower: 52, upper: 7432,
				special: 8192, sizeV: 8196, pruneXID: 0,
			},
			want: PageHeader{
				LSNLo: "0x16b2d48", LSNHi: "0x1",
				Checksum: 41290, Flags: FlagHasFreeLines,
				Lower: 52, Upper: 7432,
				Special: 8192, SizeVersion: 8196, PruneXID: 0,
			},
		},
		{
			name: "Unformatted page",
			raw:  rawHeader{},
			want: PageHeader{LSNLo: "0x0", LSNHi: "0x0"},
		},
		{
			name: "All flags set",
			raw: rawHeader{
				flags: 0x0007, lower: 24, upper: 8192, pruneXID: 731,
			},
			want: PageHeader{
				LSNLo: "0x0", LSNHi: "0x0",
				Flags: FlagHasFreeLines | FlagPageFull | FlagAllVisible,
				Lower: 24, Upper: 8192, PruneXID: 731,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur := NewCursor(tt.raw.encode())
			got, err := ParsePageHeader(cur)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
			if cur.Pos() != PageHeaderSize {
				t.Errorf("expected %d bytes consumed, got %d", PageHeaderSize, cur.Pos())
			}
		})
	}
}

func TestParsePageHeaderShort(t *testing.T) {
	cur := NewCursor(make([]byte, PageHeaderSize-1))
	if _, err := ParsePageHeader(cur); !errors.Is(err, ErrExhausted) {
		t.Errorf("expected ErrExhausted, got %v", err)
	}
}

func TestPageFlagsString(t *testing.T) {
	tests := []struct {
		flags PageFlags
		want  string
	}{
		{0, "NONE"},
		{FlagHasFreeLines, "HAS_FREE_LINES"},
		{FlagHasFreeLines | FlagPageFull, "HAS_FREE_LINES|PAGE_FULL"},
		{FlagHasFreeLines | FlagPageFull | FlagAllVisible, "HAS_FREE_LINES|PAGE_FULL|ALL_VISIBLE"},
		{0x0008, "UNKNOWN(0x8)"},
	}
	for _, tt := range tests {
		if got := tt.flags.String(); got != tt.want {
			t.Errorf("flags %#x: expected %q, got %q", uint16(tt.flags), tt.want, got)
		}
	}
}

func TestPageHeaderFreeSpace(t *testing.T) {
	tests := []struct {
		name         string
		lower, upper uint16
		want         int
	}{
		{"Mostly free", 28, 8000, 7972},
		{"Full", 4000, 4000, 0},
		{"Unformatted", 0, 0, 0},
		{"Inverted offsets clamp to zero", 100, 50, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := PageHeader{Lower: tt.lower, Upper: tt.upper}
			if got := h.FreeSpace(); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}
