// Package tui is an interactive terminal browser over the pages of a heap
// page file: one decoded page at a time with its occupancy map and tables,
// navigable by page number.
package tui

import (
	"bytes"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	goheappage "github.com/heaplens/go-heappage"
	"github.com/heaplens/go-heappage/render"
)

type keyMap struct {
	Quit         key.Binding
	NextPage     key.Binding
	PrevPage     key.Binding
	FirstPage    key.Binding
	LastPage     key.Binding
	ToggleMap    key.Binding
	ToggleTuples key.Binding
}

var keys = keyMap{
	Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	NextPage:     key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n", "next page")),
	PrevPage:     key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("p", "prev page")),
	FirstPage:    key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first page")),
	LastPage:     key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last page")),
	ToggleMap:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "toggle map")),
	ToggleTuples: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle tuples")),
}

type model struct {
	reader     *goheappage.PageReader
	cache      *pageCache
	path       string
	pageNo     int
	totalPages int

	page *goheappage.HeapPage
	err  error

	showMap    bool
	showTuples bool
	cellSize   int

	viewport viewport.Model
	ready    bool
	width    int
	height   int
}

type pageLoadedMsg struct {
	pageNo int
	page   *goheappage.HeapPage
	err    error
}

func loadPage(reader *goheappage.PageReader, cache *pageCache, pageNo int) tea.Cmd {
	return func() tea.Msg {
		if p, ok := cache.get(pageNo); ok {
			return pageLoadedMsg{pageNo: pageNo, page: p}
		}
		p, err := reader.ReadPage(pageNo)
		if err != nil {
			return pageLoadedMsg{pageNo: pageNo, err: err}
		}
		cache.put(pageNo, p)
		return pageLoadedMsg{pageNo: pageNo, page: p}
	}
}

func (m model) Init() tea.Cmd {
	if m.totalPages == 0 {
		return nil
	}
	return loadPage(m.reader, m.cache, 0)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pageLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.pageNo = msg.pageNo
		m.page = msg.page
		m.setContent()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width-2, msg.Height-6)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 2
			m.viewport.Height = msg.Height - 6
		}
		m.setContent()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.NextPage):
			if m.pageNo < m.totalPages-1 {
				return m, loadPage(m.reader, m.cache, m.pageNo+1)
			}
		case key.Matches(msg, keys.PrevPage):
			if m.pageNo > 0 {
				return m, loadPage(m.reader, m.cache, m.pageNo-1)
			}
		case key.Matches(msg, keys.FirstPage):
			if m.totalPages > 0 {
				return m, loadPage(m.reader, m.cache, 0)
			}
		case key.Matches(msg, keys.LastPage):
			if m.totalPages > 0 {
				return m, loadPage(m.reader, m.cache, m.totalPages-1)
			}
		case key.Matches(msg, keys.ToggleMap):
			m.showMap = !m.showMap
			m.setContent()
			return m, nil
		case key.Matches(msg, keys.ToggleTuples):
			m.showTuples = !m.showTuples
			m.setContent()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// setContent re-renders the current page into the viewport.
func (m *model) setContent() {
	if !m.ready || m.page == nil {
		return
	}
	var buf bytes.Buffer
	r := render.New(&buf, render.Options{
		ShowMap:       m.showMap,
		ShowTupleData: m.showTuples,
		CellSize:      m.cellSize,
	})
	r.Page(m.page)
	m.viewport.SetContent(buf.String())
}

func (m model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.totalPages == 0 {
		return titleStyle.Render("Heap Page Browser") + "\n" +
			"File holds no whole pages.\n\n" +
			helpStyle.Render("q: quit")
	}
	if !m.ready || m.page == nil {
		return titleStyle.Render("Heap Page Browser") + "\nLoading...\n"
	}

	title := titleStyle.Render(fmt.Sprintf("Heap Page Browser — %s", m.path))
	status := statusBarStyle.Render(fmt.Sprintf(" Page %d/%d | %d line pointers | %d tuples ",
		m.pageNo+1, m.totalPages, len(m.page.LinePointers), len(m.page.Tuples)))
	help := helpStyle.Render("n/p: next/prev page | g/G: first/last | m: map | t: tuples | ↑/↓: scroll | q: quit")

	return title + "\n" + m.viewport.View() + "\n" + status + help
}

// Run opens the page file and starts the browser.
func Run(path string, cellSize int) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return err
	}

	cache, err := newPageCache()
	if err != nil {
		return err
	}

	if cellSize <= 0 {
		cellSize = goheappage.DefaultCellSize
	}

	m := model{
		reader:     goheappage.NewPageReader(f),
		cache:      cache,
		path:       path,
		totalPages: goheappage.NumPages(st.Size()),
		showMap:    true,
		showTuples: true,
		cellSize:   cellSize,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
