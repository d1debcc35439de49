package adrules

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

// FileLoader reads a list from a local file.
type FileLoader struct {
	filename string
}

var _ BlocklistLoader = &FileLoader{}

func NewFileLoader(filename string) *FileLoader {
	return &FileLoader{filename}
}

func (l *FileLoader) Load() ([]string, error) {
	log := Log.WithField("file", l.filename)
	log.Debug("loading list")

	f, err := os.Open(l.filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	lines, err := readLines(f)
	if err != nil {
		return lines, errors.Wrapf(err, "failed reading %s", l.filename)
	}
	log.WithField("lines", len(lines)).Debug("completed loading list")
	return lines, nil
}

func (l *FileLoader) String() string {
	return filepath.Base(l.filename)
}

// DirLoaders returns a FileLoader for every regular file in dir, sorted by name.
// Sub-directories and hidden files are skipped.
func DirLoaders(dir string) ([]BlocklistLoader, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s", dir)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || e.Name()[0] == '.' {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	loaders := make([]BlocklistLoader, 0, len(names))
	for _, name := range names {
		loaders = append(loaders, NewFileLoader(filepath.Join(dir, name)))
	}
	return loaders, nil
}
