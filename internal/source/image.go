package source

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

// ImageSource turns a folder of images (or a single image) into pages,
// one per file in name order
type ImageSource struct {
	paths []string
}

func NewImageSource(path string) (*ImageSource, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return &ImageSource{paths: []string{path}}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	src := &ImageSource{}
	for _, entry := range entries {
		if entry.IsDir() || !imageExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		src.paths = append(src.paths, filepath.Join(path, entry.Name()))
	}
	sort.Strings(src.paths)

	return src, nil
}

func (s *ImageSource) PageCount() int {
	return len(s.paths)
}

// Page returns the image path and a caption derived from the file name
func (s *ImageSource) Page(index int) (Page, error) {
	p := s.paths[index]
	name := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
	caption := strings.NewReplacer("_", " ", "-", " ").Replace(name)
	return Page{Index: index, Text: caption, ImagePath: p}, nil
}

func (s *ImageSource) Close() error {
	return nil
}
