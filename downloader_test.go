package adrules

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type listServer struct {
	mu    sync.Mutex
	lists map[string]string
}

func (s *listServer) set(path, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists[path] = content
}

func (s *listServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/slow.txt" {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
		return
	}
	s.mu.Lock()
	content, ok := s.lists[r.URL.Path]
	s.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Write([]byte(content))
}

func TestDownloader(t *testing.T) {
	ls := &listServer{lists: map[string]string{
		"/a.txt": "||ads.example.com^\n",
		"/c.txt": "0.0.0.0 tracker.example.com\n",
	}}
	srv := httptest.NewServer(ls)
	defer srv.Close()

	dir := t.TempDir()
	cacheFile := filepath.Join(dir, "hash_cache.json")
	rulesDir := filepath.Join(dir, "rules")
	urls := []string{srv.URL + "/a.txt", srv.URL + "/b.txt", srv.URL + "/c.txt"}

	newDownloader := func() *Downloader {
		return NewDownloader(DownloaderOptions{
			Dir:     rulesDir,
			Names:   FriendlyNames{srv.URL + "/a.txt": "List_A.txt"},
			Workers: 2,
			Client:  srv.Client(),
			Cache:   NewFileHashCache(cacheFile),
		})
	}

	// First run fetches everything that exists
	report, err := newDownloader().Run(context.Background(), urls)
	require.NoError(t, err)
	require.Equal(t, []string{srv.URL + "/a.txt", srv.URL + "/c.txt"}, report.Updated)
	require.Equal(t, []string{srv.URL + "/b.txt"}, report.Failed)
	require.Empty(t, report.Unchanged)

	b, err := os.ReadFile(filepath.Join(rulesDir, "List_A.txt"))
	require.NoError(t, err)
	require.Equal(t, "||ads.example.com^\n", string(b))
	require.FileExists(t, filepath.Join(rulesDir, "c.txt"))
	require.Equal(t, 2, NewFileHashCache(cacheFile).Len())

	// Nothing changed upstream
	report, err = newDownloader().Run(context.Background(), urls)
	require.NoError(t, err)
	require.Empty(t, report.Updated)
	require.Equal(t, []string{srv.URL + "/a.txt", srv.URL + "/c.txt"}, report.Unchanged)

	// Changed content and a deleted local copy are both rewritten
	ls.set("/c.txt", "0.0.0.0 other.example.com\n")
	require.NoError(t, os.Remove(filepath.Join(rulesDir, "List_A.txt")))
	report, err = newDownloader().Run(context.Background(), urls)
	require.NoError(t, err)
	require.Equal(t, []string{srv.URL + "/a.txt", srv.URL + "/c.txt"}, report.Updated)
	b, err = os.ReadFile(filepath.Join(rulesDir, "c.txt"))
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0 other.example.com\n", string(b))

	// A failing source keeps its previous copy
	ls.mu.Lock()
	delete(ls.lists, "/c.txt")
	ls.mu.Unlock()
	report, err = newDownloader().Run(context.Background(), urls)
	require.NoError(t, err)
	require.Contains(t, report.Failed, srv.URL+"/c.txt")
	require.FileExists(t, filepath.Join(rulesDir, "c.txt"))
}

func TestDownloaderTimeout(t *testing.T) {
	srv := httptest.NewServer(&listServer{lists: map[string]string{"/a.txt": "example.com\n"}})
	defer srv.Close()

	d := NewDownloader(DownloaderOptions{
		Dir:     t.TempDir(),
		Timeout: 50 * time.Millisecond,
		Client:  srv.Client(),
	})
	report, err := d.Run(context.Background(), []string{srv.URL + "/slow.txt", srv.URL + "/a.txt"})
	require.NoError(t, err)
	require.Equal(t, []string{srv.URL + "/slow.txt"}, report.Failed)
	require.Equal(t, []string{srv.URL + "/a.txt"}, report.Updated)
}
