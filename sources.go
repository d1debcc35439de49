package adrules

import (
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// FriendlyNames maps source URLs to the local filenames they are stored under.
type FriendlyNames map[string]string

var unsafeFilenameChars = regexp.MustCompile(`[^\w.-]`)

// SafeFilename returns the local filename for a source URL. URLs listed in names
// use the mapped name, others use the last path element with unsafe characters
// replaced.
func SafeFilename(rawURL string, names FriendlyNames) string {
	if name, ok := names[rawURL]; ok {
		return name
	}
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		p = u.Path
	} else if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if i := strings.LastIndex(p, "/"); i >= 0 {
		p = p[i+1:]
	}
	name := unsafeFilenameChars.ReplaceAllString(p, "_")
	if name == "" || name == "." || name == ".." {
		return "unnamed.txt"
	}
	return name
}

// LoadSourceList reads source URLs from a file, one per line. Blank lines and
// lines starting with # are ignored.
func LoadSourceList(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open source list")
	}
	defer f.Close()
	lines, err := readLines(f)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read source list")
	}
	return ParseSourceList(lines), nil
}

// ParseSourceList returns the trimmed, non-comment entries of a source list.
func ParseSourceList(lines []string) []string {
	var urls []string
	for _, line := range lines {
		if strings.HasPrefix(line, "#") {
			continue
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		urls = append(urls, line)
	}
	return urls
}
