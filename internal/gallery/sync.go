package gallery

import (
	"image"

	"imagehelper/internal/errors"
	"imagehelper/internal/log"
	"imagehelper/pkg/types"
)

// Result reports how a Sync changed the gallery.
type Result struct {
	Added   []*Entry
	Removed []*Entry
}

// Changed reports whether anything was added or removed.
func (r Result) Changed() bool {
	return len(r.Added) > 0 || len(r.Removed) > 0
}

// Syncer reconciles a Gallery with the contents of a folder.
type Syncer struct {
	Scanner *Scanner
	Box     int
	Decode  func(path string) (image.Image, error)
}

// NewSyncer returns a Syncer using the package Decode and box size.
func NewSyncer(scanner *Scanner, box int) *Syncer {
	if box <= 0 {
		box = ThumbnailSize
	}
	return &Syncer{Scanner: scanner, Box: box, Decode: Decode}
}

// Sync lists dir, drops entries whose files are gone and adds entries for new
// files. Files that fail to decode are skipped and retried on the next call.
// If the folder cannot be listed the gallery is left untouched.
func (s *Syncer) Sync(g *Gallery, dir string) (Result, error) {
	files, err := s.Scanner.List(dir)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for _, path := range g.Stale(types.Paths(files)) {
		if e, ok := g.Remove(path); ok {
			res.Removed = append(res.Removed, e)
		}
	}

	for _, f := range files {
		if g.Has(f.Path) {
			continue
		}
		img, err := s.Decode(f.Path)
		if err != nil {
			if errors.IsDecodeFailed(err) {
				log.LogWithError(err).Debug("skipping undecodable file")
			} else {
				log.LogWithError(err).Debug("file went away before decoding")
			}
			continue
		}
		e := NewEntry(f.Path, Thumbnail(img, s.Box))
		g.Add(e)
		res.Added = append(res.Added, e)
	}

	if res.Changed() {
		log.LogWithFields(log.F("folder", dir), log.F("added", len(res.Added)), log.F("removed", len(res.Removed))).
			Debug("gallery synced")
	}
	return res, nil
}
