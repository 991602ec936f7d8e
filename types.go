package goheappage

import (
	"fmt"
	"strings"
)

// Sizes and constants
const (
	PageSize        = 8 * 1024 // 8192
	PageHeaderSize  = 24
	LinePointerSize = 4
	TupleHeaderSize = 24 // fixed tuple header fields before the payload
)

// PageFlags is the header's pd_flags bitset.
type PageFlags uint16

const (
	FlagHasFreeLines PageFlags = 0x0001
	FlagPageFull     PageFlags = 0x0002
	FlagAllVisible   PageFlags = 0x0004
)

func (f PageFlags) String() string {
	if f == 0 {
		return "NONE"
	}
	var parts []string
	if f&FlagHasFreeLines != 0 {
		parts = append(parts, "HAS_FREE_LINES")
	}
	if f&FlagPageFull != 0 {
		parts = append(parts, "PAGE_FULL")
	}
	if f&FlagAllVisible != 0 {
		parts = append(parts, "ALL_VISIBLE")
	}
	if extra := f &^ (FlagHasFreeLines | FlagPageFull | FlagAllVisible); extra != 0 {
		parts = append(parts, fmt.Sprintf("UNKNOWN(%#x)", uint16(extra)))
	}
	return strings.Join(parts, "|")
}

// LinePointerFlag is the 2-bit status field of a line pointer.
type LinePointerFlag uint8

const (
	LpUnused   LinePointerFlag = 0
	LpNormal   LinePointerFlag = 1
	LpRedirect LinePointerFlag = 2
	LpDead     LinePointerFlag = 3
)

func (f LinePointerFlag) String() string {
	switch f {
	case LpUnused:
		return "UNUSED"
	case LpNormal:
		return "NORMAL"
	case LpRedirect:
		return "REDIRECT"
	case LpDead:
		return "DEAD"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(f))
	}
}

// Infomask2 carries a tuple's structural flags. Only the top bits are
// meaningful; the low bits hold the attribute count and are masked off
// during decoding.
type Infomask2 uint16

const (
	MaskKeysUpdated Infomask2 = 0x2000
	MaskHotUpdated  Infomask2 = 0x4000
	MaskOnlyTuple   Infomask2 = 0x8000

	infomask2Bits = 0xF800
)

func (m Infomask2) String() string {
	if m == 0 {
		return "NONE"
	}
	var parts []string
	if m&MaskKeysUpdated != 0 {
		parts = append(parts, "KEYS_UPDATED")
	}
	if m&MaskHotUpdated != 0 {
		parts = append(parts, "HOT_UPDATED")
	}
	if m&MaskOnlyTuple != 0 {
		parts = append(parts, "ONLY_TUPLE")
	}
	if extra := m &^ (MaskKeysUpdated | MaskHotUpdated | MaskOnlyTuple); extra != 0 {
		parts = append(parts, fmt.Sprintf("UNKNOWN(%#x)", uint16(extra)))
	}
	return strings.Join(parts, "|")
}

// Infomask is the full 16-bit visibility bitset of a tuple.
type Infomask uint16

const (
	MaskHasNull        Infomask = 0x0001
	MaskHasVarWidth    Infomask = 0x0002
	MaskHasExternal    Infomask = 0x0004
	MaskHasOIDOld      Infomask = 0x0008
	MaskXmaxKeyShrLock Infomask = 0x0010
	MaskComboCID       Infomask = 0x0020
	MaskXmaxExclLock   Infomask = 0x0040
	MaskXmaxLockOnly   Infomask = 0x0080
	MaskXminCommitted  Infomask = 0x0100
	MaskXminInvalid    Infomask = 0x0200
	MaskXmaxCommitted  Infomask = 0x0400
	MaskXmaxInvalid    Infomask = 0x0800
	MaskXmaxIsMulti    Infomask = 0x1000
	MaskUpdated        Infomask = 0x2000
	MaskMovedOff       Infomask = 0x4000
	MaskMovedIn        Infomask = 0x8000
)

var infomaskNames = []struct {
	bit  Infomask
	name string
}{
	{MaskHasNull, "HASNULL"},
	{MaskHasVarWidth, "HASVARWIDTH"},
	{MaskHasExternal, "HASEXTERNAL"},
	{MaskHasOIDOld, "HASOID_OLD"},
	{MaskXmaxKeyShrLock, "XMAX_KEYSHR_LOCK"},
	{MaskComboCID, "COMBOCID"},
	{MaskXmaxExclLock, "XMAX_EXCL_LOCK"},
	{MaskXmaxLockOnly, "XMAX_LOCK_ONLY"},
	{MaskXminCommitted, "XMIN_COMMITTED"},
	{MaskXminInvalid, "XMIN_INVALID"},
	{MaskXmaxCommitted, "XMAX_COMMITTED"},
	{MaskXmaxInvalid, "XMAX_INVALID"},
	{MaskXmaxIsMulti, "XMAX_IS_MULTI"},
	{MaskUpdated, "UPDATED"},
	{MaskMovedOff, "MOVED_OFF"},
	{MaskMovedIn, "MOVED_IN"},
}

func (m Infomask) String() string {
	if m == 0 {
		return "NONE"
	}
	var parts []string
	for _, f := range infomaskNames {
		if m&f.bit != 0 {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, "|")
}

// CellType classifies one free-space map cell.
type CellType uint8

const (
	CellFree CellType = iota
	CellHeader
	CellLinePointer
	CellTuple
)

func (t CellType) String() string {
	switch t {
	case CellFree:
		return "FREE"
	case CellHeader:
		return "HEADER"
	case CellLinePointer:
		return "LINE_POINTER"
	case CellTuple:
		return "TUPLE"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(t))
	}
}
