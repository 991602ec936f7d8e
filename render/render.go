// Package render turns decoded heap pages into styled terminal output:
// the free-space occupancy grid and the header, slot table and tuple
// reports.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	goheappage "github.com/heaplens/go-heappage"
)

var (
	bannerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	sectionStyle = lipgloss.NewStyle().Bold(true)

	headerCellStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // yellow
	linePtrCellStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // green
	tupleCellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("4")) // blue
)

// Options selects which reports are emitted per page.
type Options struct {
	ShowMap       bool
	ShowTupleData bool
	CellSize      int // byte width of one map cell
	MaxTuples     int // cap on tuple table rows per page, 0 = unlimited
}

// Renderer writes per-page reports to a single output writer.
type Renderer struct {
	w    io.Writer
	opts Options
}

func New(w io.Writer, opts Options) *Renderer {
	if opts.CellSize <= 0 {
		opts.CellSize = goheappage.DefaultCellSize
	}
	return &Renderer{w: w, opts: opts}
}

// Page writes the reports selected in Options for one decoded page.
func (r *Renderer) Page(p *goheappage.HeapPage) {
	fmt.Fprintln(r.w, bannerStyle.Render(fmt.Sprintf("PAGE: %d", p.Index)))
	if r.opts.ShowMap {
		r.pageMap(p)
	}
	if r.opts.ShowTupleData {
		r.pageHeader(p.Header)
		r.linePointers(p.LinePointers)
		r.tuples(p.Tuples)
	}
}

func (r *Renderer) pageMap(p *goheappage.HeapPage) {
	fmt.Fprintln(r.w, sectionStyle.Render(fmt.Sprintf("Map (cell size: %dB)", r.opts.CellSize)))
	for _, row := range p.FreeSpaceMap(r.opts.CellSize) {
		var b strings.Builder
		for _, cell := range row {
			b.WriteString(CellGlyph(cell))
		}
		fmt.Fprintln(r.w, b.String())
	}
	fmt.Fprintln(r.w)
}

// CellGlyph maps one map cell to its display glyph: a dot for free space,
// a full block for a fully occupied cell and a partial block for a cell
// straddling a free-space boundary. Occupied glyphs are colored by what
// fills the cell.
func CellGlyph(c goheappage.MapCell) string {
	var style lipgloss.Style
	switch c.Type {
	case goheappage.CellHeader:
		style = headerCellStyle
	case goheappage.CellLinePointer:
		style = linePtrCellStyle
	case goheappage.CellTuple:
		style = tupleCellStyle
	default:
		style = lipgloss.NewStyle()
	}
	switch c.FreeSpaceProportion {
	case 0.0:
		return "·"
	case 1.0:
		return style.Render("▉")
	default:
		return style.Render("▋")
	}
}

func (r *Renderer) pageHeader(h goheappage.PageHeader) {
	fmt.Fprintln(r.w, sectionStyle.Render("Page headers"))
	w := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "LSN\t(%s, %s)\n", h.LSNLo, h.LSNHi)
	fmt.Fprintf(w, "Checksum\t%d\n", h.Checksum)
	fmt.Fprintf(w, "Flags\t%s\n", h.Flags)
	fmt.Fprintf(w, "Free space lower offset\t%d\n", h.Lower)
	fmt.Fprintf(w, "Free space upper offset\t%d\n", h.Upper)
	fmt.Fprintf(w, "Special\t%d\n", h.Special)
	fmt.Fprintf(w, "Page size\t%d\n", h.SizeVersion)
	fmt.Fprintf(w, "Prune XID\t%d\n", h.PruneXID)
	fmt.Fprintf(w, "Free space\t%s\n", humanize.Bytes(uint64(h.FreeSpace())))
	w.Flush()
	fmt.Fprintln(r.w)
}

func (r *Renderer) linePointers(lps []goheappage.LinePointer) {
	fmt.Fprintln(r.w, sectionStyle.Render("Line pointers"))
	w := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "LP\tTuple offset\tTuple length\tFlag\n")
	for i, lp := range lps {
		fmt.Fprintf(w, "%d\t%d\t%d\t%s\n", i+1, lp.Offset, lp.Length, lp.Flag)
	}
	w.Flush()
	fmt.Fprintln(r.w)
}

func (r *Renderer) tuples(tuples []goheappage.TupleData) {
	fmt.Fprintln(r.w, sectionStyle.Render("Tuples"))
	shown := tuples
	if r.opts.MaxTuples > 0 && len(tuples) > r.opts.MaxTuples {
		shown = tuples[:r.opts.MaxTuples]
	}
	w := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Offset\tt_xmin\tt_xmax\tctid\tinfomask2\tinfomask\tData\n")
	for _, t := range shown {
		fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%s\t%s\t%s\n",
			t.Offset, t.Xmin, t.Xmax, t.CTID(), t.Infomask2, t.Infomask, FormatPayload(t.Data))
	}
	w.Flush()
	if len(shown) < len(tuples) {
		fmt.Fprintf(r.w, "... (showing first %d of %d tuples)\n", len(shown), len(tuples))
	}
	fmt.Fprintln(r.w)
}

// FormatPayload renders opaque payload bytes as hex, truncated for wide
// rows, with any readable ASCII runs appended.
func FormatPayload(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	var hex string
	if len(data) > 32 {
		hex = fmt.Sprintf("%x... (%d bytes)", data[:32], len(data))
	} else {
		hex = fmt.Sprintf("%x", data)
	}
	if readable := extractReadableStrings(data); readable != "" {
		return hex + " [" + readable + "]"
	}
	return hex
}

// extractReadableStrings pulls printable ASCII runs out of binary data.
func extractReadableStrings(data []byte) string {
	var result []string
	var current []byte

	for _, b := range data {
		if b >= 32 && b <= 126 {
			current = append(current, b)
		} else {
			if len(current) >= 3 {
				result = append(result, string(current))
			}
			current = nil
		}
	}
	if len(current) >= 3 {
		result = append(result, string(current))
	}
	return strings.Join(result, " | ")
}
