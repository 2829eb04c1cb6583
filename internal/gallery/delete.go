package gallery

import (
	"os"

	"imagehelper/internal/errors"
	"imagehelper/internal/log"
)

// DeleteSelected removes the selected entry's file and drops the entry.
// Removing the file is best effort: a failure is only logged and the entry is
// dropped regardless. It reports false when nothing is selected.
func DeleteSelected(g *Gallery) (*Entry, bool) {
	e, ok := g.Selected()
	if !ok {
		return nil, false
	}
	if err := os.Remove(e.Path); err != nil {
		log.LogWithError(errors.NewFileError("cannot delete file", e.Path, errors.DeleteFailed, err)).
			Debug("delete failed")
	}
	g.Remove(e.Path)
	g.ClearSelection()
	return e, true
}
