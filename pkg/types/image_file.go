package types

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ImageFile describes an image file found directly inside a folder.
type ImageFile struct {
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// NewImageFile builds an ImageFile from a stat result.
func NewImageFile(path string, info os.FileInfo) ImageFile {
	return ImageFile{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
}

// Name returns the base name of the file
func (f ImageFile) Name() string {
	return filepath.Base(f.Path)
}

// Ext returns the lowercased extension without the dot.
func (f ImageFile) Ext() string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(f.Path)), ".")
}

// ToJSON converts ImageFile to JSON string
func (f ImageFile) ToJSON() string {
	jsonBytes, _ := json.Marshal(f)
	return string(jsonBytes)
}

// String returns a human-readable representation
func (f ImageFile) String() string {
	return fmt.Sprintf("%s (%d bytes)", f.Name(), f.Size)
}

// Paths extracts the paths of files, preserving order.
func Paths(files []ImageFile) []string {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return paths
}
