package tui

import (
	"github.com/dgraph-io/ristretto/v2"

	goheappage "github.com/heaplens/go-heappage"
)

// pageCache keeps recently decoded pages so paging back and forth through
// a file does not re-read and re-decode them. A miss is harmless; the
// caller just decodes the page again.
type pageCache struct {
	c *ristretto.Cache[int, *goheappage.HeapPage]
}

func newPageCache() (*pageCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config[int, *goheappage.HeapPage]{
		NumCounters: 1 << 12,
		MaxCost:     256, // pages, one unit of cost each
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &pageCache{c: c}, nil
}

func (pc *pageCache) get(pageNo int) (*goheappage.HeapPage, bool) {
	return pc.c.Get(pageNo)
}

func (pc *pageCache) put(pageNo int, p *goheappage.HeapPage) {
	pc.c.Set(pageNo, p, 1)
}
