package gallery

import (
	"image"
	"path/filepath"
	"slices"
)

// Entry is one displayed image. Handle belongs to the view layer and holds
// whatever widget renders the entry.
type Entry struct {
	Path   string
	Name   string
	Thumb  image.Image
	Handle any
}

// NewEntry builds an entry for path with the given thumbnail.
func NewEntry(path string, thumb image.Image) *Entry {
	return &Entry{Path: path, Name: filepath.Base(path), Thumb: thumb}
}

// Gallery is the ordered set of displayed entries keyed by path, plus at
// most one selected entry. It is not safe for concurrent use; callers keep
// it on the UI goroutine.
type Gallery struct {
	order    []string
	entries  map[string]*Entry
	selected string
}

func New() *Gallery {
	return &Gallery{entries: make(map[string]*Entry)}
}

// Add appends e unless its path is already tracked.
func (g *Gallery) Add(e *Entry) bool {
	if _, ok := g.entries[e.Path]; ok {
		return false
	}
	g.entries[e.Path] = e
	g.order = append(g.order, e.Path)
	return true
}

// Remove drops path, clearing the selection if it pointed there.
func (g *Gallery) Remove(path string) (*Entry, bool) {
	e, ok := g.entries[path]
	if !ok {
		return nil, false
	}
	delete(g.entries, path)
	if i := slices.Index(g.order, path); i >= 0 {
		g.order = slices.Delete(g.order, i, i+1)
	}
	if g.selected == path {
		g.selected = ""
	}
	return e, true
}

func (g *Gallery) Get(path string) (*Entry, bool) {
	e, ok := g.entries[path]
	return e, ok
}

func (g *Gallery) Has(path string) bool {
	_, ok := g.entries[path]
	return ok
}

// Entries returns the entries in insertion order.
func (g *Gallery) Entries() []*Entry {
	out := make([]*Entry, 0, len(g.order))
	for _, p := range g.order {
		out = append(out, g.entries[p])
	}
	return out
}

func (g *Gallery) Len() int {
	return len(g.order)
}

// Clear forgets every entry and the selection.
func (g *Gallery) Clear() {
	g.order = nil
	g.entries = make(map[string]*Entry)
	g.selected = ""
}

// Select marks path as the only selected entry.
func (g *Gallery) Select(path string) bool {
	if !g.Has(path) {
		return false
	}
	g.selected = path
	return true
}

// Selected returns the selected entry, if any.
func (g *Gallery) Selected() (*Entry, bool) {
	if g.selected == "" {
		return nil, false
	}
	return g.Get(g.selected)
}

func (g *Gallery) ClearSelection() {
	g.selected = ""
}

// Stale returns the tracked paths missing from present, in display order.
func (g *Gallery) Stale(present []string) []string {
	keep := make(map[string]struct{}, len(present))
	for _, p := range present {
		keep[p] = struct{}{}
	}
	var stale []string
	for _, p := range g.order {
		if _, ok := keep[p]; !ok {
			stale = append(stale, p)
		}
	}
	return stale
}
