// freespace.go - Free-space occupancy map derivation
package goheappage

// DefaultCellSize is the byte width of one map cell.
const DefaultCellSize = 8

// mapRowBytes is how many page bytes one rendered map row covers.
const mapRowBytes = 1024

// MapCell is one fixed-width window of the page extent, classified by what
// occupies it and how full it is.
type MapCell struct {
	FreeSpaceProportion float64 // 0.0 fully free .. 1.0 fully occupied
	Type                CellType
}

// BuildFreeSpaceMap derives the occupancy grid for a page from its header.
// Cells cover cellSize bytes each and are arranged in rows of
// 1024/cellSize cells, eight rows covering the full page extent.
// Classification depends only on the header's free-space offsets; it never
// reads slot or tuple contents.
func BuildFreeSpaceMap(hdr PageHeader, cellSize int) [][]MapCell {
	rowWidth := mapRowBytes / cellSize
	total := rowWidth * (PageSize / mapRowBytes)
	grid := make([][]MapCell, 0, PageSize/mapRowBytes)
	row := make([]MapCell, 0, rowWidth)
	for i := 0; i < total; i++ {
		cell := classifyCell(hdr.Lower, hdr.Upper, i*cellSize, (i+1)*cellSize-1, cellSize)
		row = append(row, cell)
		if len(row) == rowWidth {
			grid = append(grid, row)
			row = make([]MapCell, 0, rowWidth)
		}
	}
	return grid
}

// classifyCell applies the occupancy rules in order. The rules are
// mutually exclusive and exhaustive for 0 <= lower <= upper <= extent;
// cells that sit exactly on a free-space boundary fall through to FREE.
func classifyCell(lower, upper uint16, cellLower, cellUpper, cellSize int) MapCell {
	lo, up := int(lower), int(upper)
	switch {
	case lo == 0 && up == 0:
		// unformatted page
		return MapCell{FreeSpaceProportion: 0.0, Type: CellFree}
	case cellUpper < lo:
		// entirely before free space
		if cellUpper > PageHeaderSize {
			return MapCell{FreeSpaceProportion: 1.0, Type: CellLinePointer}
		}
		return MapCell{FreeSpaceProportion: 1.0, Type: CellHeader}
	case cellLower > up:
		// entirely after free space
		return MapCell{FreeSpaceProportion: 1.0, Type: CellTuple}
	case cellLower > lo && cellUpper < up:
		// entirely inside free space
		return MapCell{FreeSpaceProportion: 0.0, Type: CellFree}
	case cellLower < lo && lo < cellUpper:
		// straddles the end of the slot table
		return MapCell{FreeSpaceProportion: float64(lo-cellLower) / float64(cellSize), Type: CellLinePointer}
	case cellLower < up && up < cellUpper:
		// straddles the start of the tuple region
		return MapCell{FreeSpaceProportion: float64(up-cellLower) / float64(cellSize), Type: CellTuple}
	}
	return MapCell{FreeSpaceProportion: 0.0, Type: CellFree}
}
