// Package goheappage provides a Go library for decoding and inspecting
// heap pages from database storage files.
//
// The library is organized into logical groups of functionality:
//
// Core Types and Constants:
//   - types.go: Basic type definitions and constants (PageSize, flag bitsets, CellType, etc.)
//   - cursor.go: Little-endian forward-only byte cursor
//
// Page Structure Components:
//   - header.go: Fixed 24-byte page header parsing
//   - line_pointer.go: Slot table (line pointer) parsing
//   - tuple.go: Row version header and payload parsing
//   - freespace.go: Free-space occupancy map derivation
//   - page.go: Whole-page decoding (header + slot table + tuples)
//
// I/O Operations:
//   - reader.go: Sequential and random-access page readers
//
// Basic usage:
//
//	file, _ := os.Open("16384")
//	defer file.Close()
//
//	sr := goheappage.NewStreamReader(file)
//	for {
//		page, err := sr.NextPage()
//		if err == io.EOF {
//			break
//		}
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Printf("page %d: %d line pointers, %d tuples\n",
//			page.Index, len(page.LinePointers), len(page.Tuples))
//	}
package goheappage
