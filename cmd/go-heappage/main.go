package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	goheappage "github.com/heaplens/go-heappage"
	"github.com/heaplens/go-heappage/render"
	"github.com/heaplens/go-heappage/tui"
)

func main() {
	var (
		file     = flag.String("file", "", "Path to heap page file (required)")
		showMap  = flag.Bool("map", false, "Show the free-space occupancy map per page")
		showTups = flag.Bool("tuples", false, "Show header, line pointer and tuple tables per page")
		cellSize = flag.Int("cell-size-kb", goheappage.DefaultCellSize, "Byte width of one map cell")
		format    = flag.String("format", "text", "Output format: text, json, or summary")
		pageNum   = flag.Int("page", -1, "Decode a single page number instead of the whole file")
		maxTuples = flag.Int("max-tuples", 100, "Maximum tuples to display per page")
		browse    = flag.Bool("browse", false, "Open the interactive page browser")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Heap Page Viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -file 16384 -map\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -file 16384 -tuples -format json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -file 16384 -browse\n", os.Args[0])
	}

	flag.Parse()

	if *file == "" {
		fmt.Fprintf(os.Stderr, "Error: -file is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	if *browse {
		if err := tui.Run(*file, *cellSize); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	f, err := os.Open(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	r := render.New(os.Stdout, render.Options{
		ShowMap:       *showMap,
		ShowTupleData: *showTups,
		CellSize:      *cellSize,
		MaxTuples:     *maxTuples,
	})

	// text and summary output stream page by page; json is a single
	// document and aggregates before encoding
	var jsonPages []*goheappage.HeapPage
	emit := func(p *goheappage.HeapPage) {
		switch *format {
		case "json":
			jsonPages = append(jsonPages, p)
		case "summary":
			outputSummary(p)
		default:
			r.Page(p)
		}
	}

	if *pageNum >= 0 {
		page, err := goheappage.NewPageReader(f).ReadPage(*pageNum)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading page %d: %v\n", *pageNum, err)
			os.Exit(1)
		}
		emit(page)
	} else {
		sr := goheappage.NewStreamReader(f)
		for {
			page, err := sr.NextPage()
			if err == io.EOF {
				break
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			emit(page)
		}
	}

	if *format == "json" {
		outputJSON(jsonPages, *maxTuples)
	}
}

func outputSummary(p *goheappage.HeapPage) {
	fmt.Printf("Page %d: LSN=(%s, %s), Flags=%s, LinePointers=%d, Tuples=%d, FreeSpace=%d\n",
		p.Index, p.Header.LSNLo, p.Header.LSNHi, p.Header.Flags,
		len(p.LinePointers), len(p.Tuples), p.Header.FreeSpace())
}

func outputJSON(pages []*goheappage.HeapPage, maxTuples int) {
	out := make([]map[string]interface{}, 0, len(pages))
	for _, p := range pages {
		lps := make([]map[string]interface{}, len(p.LinePointers))
		for i, lp := range p.LinePointers {
			lps[i] = map[string]interface{}{
				"tuple_offset": lp.Offset,
				"tuple_length": lp.Length,
				"flag":         lp.Flag.String(),
			}
		}
		shown := p.Tuples
		if maxTuples > 0 && len(shown) > maxTuples {
			shown = shown[:maxTuples]
		}
		tuples := make([]map[string]interface{}, len(shown))
		for i, t := range shown {
			tuples[i] = map[string]interface{}{
				"offset":        t.Offset,
				"length":        t.Length,
				"t_xmin":        t.Xmin,
				"t_xmax":        t.Xmax,
				"cid":           t.CID,
				"ctid":          t.CTID(),
				"infomask2":     t.Infomask2.String(),
				"infomask":      t.Infomask.String(),
				"header_offset": t.HeaderOffset,
				"data":          fmt.Sprintf("%x", t.Data),
			}
		}
		out = append(out, map[string]interface{}{
			"page_index": p.Index,
			"header": map[string]interface{}{
				"lsn":                     []string{p.Header.LSNLo, p.Header.LSNHi},
				"checksum":                p.Header.Checksum,
				"flags":                   p.Header.Flags.String(),
				"free_space_lower_offset": p.Header.Lower,
				"free_space_upper_offset": p.Header.Upper,
				"special":                 p.Header.Special,
				"page_size":               p.Header.SizeVersion,
				"prune_xid":               p.Header.PruneXID,
			},
			"line_pointers": lps,
			"tuple_count":   len(p.Tuples),
			"tuples":        tuples,
		})
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}
