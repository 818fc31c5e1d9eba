package provision

import (
	"context"
	"crypto/sha1"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/kralicky/mcsetup/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var payload = []byte("not really a jar")

func payloadSHA1() string {
	return fmt.Sprintf("%x", sha1.Sum(payload))
}

func newPayloadServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write(payload)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestFetchIfInvalid(t *testing.T) {
	srv, hits := newPayloadServer(t)
	dest := filepath.Join(t.TempDir(), "a", "b", "file.jar")
	f := &fetcher{client: api.NewClient()}
	ctx := context.Background()

	fetched, err := f.fetchIfInvalid(ctx, srv.URL, dest, payloadSHA1())
	require.NoError(t, err)
	assert.True(t, fetched)
	assert.FileExists(t, dest)
	assert.Equal(t, payloadSHA1(), readSidecar(dest))

	fetched, err = f.fetchIfInvalid(ctx, srv.URL, dest, payloadSHA1())
	require.NoError(t, err)
	assert.False(t, fetched)
	assert.EqualValues(t, 1, hits.Load())

	// a stale sidecar forces a fresh download
	require.NoError(t, os.WriteFile(sidecarPath(dest), []byte("0000"), 0644))
	require.NoError(t, os.WriteFile(dest, []byte("corrupt"), 0644))
	fetched, err = f.fetchIfInvalid(ctx, srv.URL, dest, payloadSHA1())
	require.NoError(t, err)
	assert.True(t, fetched)
	assert.EqualValues(t, 2, hits.Load())
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestFetchIfInvalidMissingSidecar(t *testing.T) {
	srv, hits := newPayloadServer(t)
	dest := filepath.Join(t.TempDir(), "file.jar")
	require.NoError(t, os.WriteFile(dest, payload, 0644))

	f := &fetcher{client: api.NewClient()}
	fetched, err := f.fetchIfInvalid(context.Background(), srv.URL, dest, payloadSHA1())
	require.NoError(t, err)
	assert.False(t, fetched)
	assert.Zero(t, hits.Load())
	assert.Equal(t, payloadSHA1(), readSidecar(dest))
}

func TestFetchIfInvalidHashMismatch(t *testing.T) {
	srv, _ := newPayloadServer(t)
	dest := filepath.Join(t.TempDir(), "file.jar")

	f := &fetcher{client: api.NewClient()}
	_, err := f.fetchIfInvalid(context.Background(), srv.URL, dest, "da39a3ee5e6b4b0d3255bfef95601890afd80709")
	assert.ErrorContains(t, err, "unexpected hash")
	assert.NoFileExists(t, dest)
	assert.NoFileExists(t, sidecarPath(dest))

	entries, err := os.ReadDir(filepath.Dir(dest))
	require.NoError(t, err)
	assert.Empty(t, entries, "temporary files should be cleaned up")
}

func TestFetchIfInvalidRefresh(t *testing.T) {
	srv, hits := newPayloadServer(t)
	dest := filepath.Join(t.TempDir(), "file.jar")
	ctx := context.Background()

	f := &fetcher{client: api.NewClient()}
	_, err := f.fetchIfInvalid(ctx, srv.URL, dest, payloadSHA1())
	require.NoError(t, err)

	f.refresh = true
	fetched, err := f.fetchIfInvalid(ctx, srv.URL, dest, payloadSHA1())
	require.NoError(t, err)
	assert.True(t, fetched)
	assert.EqualValues(t, 2, hits.Load())
}

func TestFetchIfInvalidNoHash(t *testing.T) {
	srv, hits := newPayloadServer(t)
	dest := filepath.Join(t.TempDir(), "file.json")
	ctx := context.Background()

	f := &fetcher{client: api.NewClient()}
	fetched, err := f.fetchIfInvalid(ctx, srv.URL, dest, "")
	require.NoError(t, err)
	assert.True(t, fetched)

	fetched, err = f.fetchIfInvalid(ctx, srv.URL, dest, "")
	require.NoError(t, err)
	assert.False(t, fetched)
	assert.EqualValues(t, 1, hits.Load())
}

func TestFetchIfInvalidOffline(t *testing.T) {
	srv, hits := newPayloadServer(t)
	dir := t.TempDir()
	f := &fetcher{client: api.NewClient(), offline: true}
	ctx := context.Background()

	_, err := f.fetchIfInvalid(ctx, srv.URL, filepath.Join(dir, "missing.jar"), payloadSHA1())
	assert.ErrorIs(t, err, ErrOffline)

	present := filepath.Join(dir, "present.jar")
	require.NoError(t, os.WriteFile(present, []byte("anything"), 0644))
	fetched, err := f.fetchIfInvalid(ctx, srv.URL, present, payloadSHA1())
	require.NoError(t, err)
	assert.False(t, fetched)
	assert.Zero(t, hits.Load())
}

func TestFetchIfInvalidServerError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)
	dest := filepath.Join(t.TempDir(), "file.jar")

	f := &fetcher{client: api.NewClient()}
	_, err := f.fetchIfInvalid(context.Background(), srv.URL, dest, payloadSHA1())
	assert.Error(t, err)
	assert.NoFileExists(t, dest)
}
