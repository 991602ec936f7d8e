// reader.go - Sequential and random-access page readers
package goheappage

import (
	"errors"
	"fmt"
	"io"
)

// ErrTruncatedPage reports input that ended partway through a page. It is
// distinct from the clean end-of-stream reported as io.EOF at a page
// boundary.
var ErrTruncatedPage = errors.New("truncated page")

// StreamReader decodes consecutive fixed-size pages from a byte stream.
type StreamReader struct {
	r    io.Reader
	next int
}

func NewStreamReader(r io.Reader) *StreamReader { return &StreamReader{r: r} }

// NextPage reads and decodes the next page. It returns io.EOF once the
// stream is exhausted exactly at a page boundary; a stream that ends
// inside a page reports ErrTruncatedPage instead.
func (sr *StreamReader) NextPage() (*HeapPage, error) {
	buf := make([]byte, PageSize)
	n, err := io.ReadFull(sr.r, buf)
	switch {
	case err == io.EOF:
		return nil, io.EOF
	case err == io.ErrUnexpectedEOF:
		return nil, fmt.Errorf("page %d: got %d of %d bytes: %w", sr.next, n, PageSize, ErrTruncatedPage)
	case err != nil:
		return nil, fmt.Errorf("read page %d: %w", sr.next, err)
	}
	idx := sr.next
	sr.next++
	return NewHeapPage(idx, buf)
}

// PageReader reads pages by page number from a random-access source.
type PageReader struct {
	r io.ReaderAt
}

func NewPageReader(r io.ReaderAt) *PageReader { return &PageReader{r: r} }

// ReadPage reads and decodes the page at the given index. Reading past the
// end of the source returns io.EOF; a partial page at the end of the
// source reports ErrTruncatedPage.
func (pr *PageReader) ReadPage(pageNo int) (*HeapPage, error) {
	buf := make([]byte, PageSize)
	off := int64(pageNo) * int64(PageSize)
	n, err := pr.r.ReadAt(buf, off)
	if err == io.EOF {
		if n == 0 {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("page %d: got %d of %d bytes: %w", pageNo, n, PageSize, ErrTruncatedPage)
	}
	if err != nil {
		return nil, fmt.Errorf("read page %d: %w", pageNo, err)
	}
	return NewHeapPage(pageNo, buf)
}

// NumPages reports how many whole pages fit in size bytes.
func NumPages(size int64) int { return int(size / PageSize) }
