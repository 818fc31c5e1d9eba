package provision_test

import (
	"crypto/sha1"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/kralicky/mcsetup/pkg/api"
)

// fileServer serves fixed contents and counts requests per path.
type fileServer struct {
	*httptest.Server

	mu    sync.Mutex
	files map[string][]byte
	hits  map[string]int
}

func newFileServer(t *testing.T) *fileServer {
	t.Helper()
	fs := &fileServer{
		files: map[string][]byte{},
		hits:  map[string]int{},
	}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.mu.Lock()
		data, ok := fs.files[r.URL.Path]
		fs.hits[r.URL.Path]++
		fs.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write(data)
	}))
	t.Cleanup(fs.Close)
	return fs
}

// add serves data at path and returns its URL and sha1.
func (fs *fileServer) add(path string, data []byte) (string, string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.files[path] = data
	return fs.URL + path, sha1Hex(data)
}

func (fs *fileServer) hitCount(path string) int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.hits[path]
}

func (fs *fileServer) client() api.Client {
	return api.NewClient(
		api.WithManifestURL(fs.URL+"/mc/game/version_manifest_v2.json"),
		api.WithResourcesURL(fs.URL+"/resources"),
	)
}

func sha1Hex(data []byte) string {
	return fmt.Sprintf("%x", sha1.Sum(data))
}

func assetPath(hash string) string {
	return "/resources/" + hash[:2] + "/" + hash
}

func jsonString(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
