// ABOUTME: Remembers image files recently uploaded with products
// ABOUTME: Persists up to MaxImages paths in recent.json in the config directory

package recentimages

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// MaxImages is the number of paths kept
const MaxImages = 5

// FileName is the list's file inside the config directory
const FileName = "recent.json"

// Recent is the most-recently-used list of image paths. An empty config
// directory keeps the list in memory only.
type Recent struct {
	configDir string
	images    []string
	loaded    bool
}

type recentData struct {
	Images []string `json:"images"`
}

// New returns a list stored in configDir
func New(configDir string) *Recent {
	return &Recent{configDir: configDir}
}

func (r *Recent) path() string {
	return filepath.Join(r.configDir, FileName)
}

// Load reads the list, dropping files that no longer exist
func (r *Recent) Load() ([]string, error) {
	r.loaded = true
	r.images = []string{}
	if r.configDir == "" {
		return r.images, nil
	}

	data, err := os.ReadFile(r.path())
	if errors.Is(err, fs.ErrNotExist) {
		return r.images, nil
	}
	if err != nil {
		return nil, err
	}

	var stored recentData
	if err := json.Unmarshal(data, &stored); err != nil {
		return r.images, nil
	}

	for _, p := range stored.Images {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			r.images = append(r.images, p)
		}
	}
	return r.images, nil
}

// Add moves path to the front of the list and saves it
func (r *Recent) Add(path string) error {
	if !r.loaded {
		if _, err := r.Load(); err != nil {
			r.images = []string{}
		}
	}

	images := make([]string, 0, len(r.images)+1)
	images = append(images, path)
	for _, p := range r.images {
		if p != path {
			images = append(images, p)
		}
	}
	if len(images) > MaxImages {
		images = images[:MaxImages]
	}
	r.images = images

	if r.configDir == "" {
		return nil
	}
	if err := os.MkdirAll(r.configDir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(recentData{Images: images}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path(), data, 0o600)
}

// List returns the current list, loading it on first use
func (r *Recent) List() []string {
	if !r.loaded {
		r.Load()
	}
	return r.images
}
