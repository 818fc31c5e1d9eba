package provision_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/kralicky/mcsetup/pkg/meta"
	"github.com/kralicky/mcsetup/pkg/provision"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildJar writes a zip archive with the given entries and returns its bytes.
func buildJar(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "build.jar")
	out, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(out)
	for name, contents := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(contents))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, out.Close())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func writeNativeJar(t *testing.T, jarStore, rel string, data []byte) provision.NativeDownload {
	t.Helper()
	dest := filepath.Join(jarStore, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(dest), 0755))
	require.NoError(t, os.WriteFile(dest, data, 0644))
	return provision.NativeDownload{
		Name: rel,
		Classifier: &meta.Classifier{Downloadable: meta.Downloadable{
			Path: rel,
			SHA1: sha1Hex(data),
			Size: int64(len(data)),
		}},
	}
}

func TestExtractNatives(t *testing.T) {
	dir := t.TempDir()
	jarStore := filepath.Join(dir, "natives-jarstore")
	nativesDir := filepath.Join(dir, "natives")

	natives := []provision.NativeDownload{
		writeNativeJar(t, jarStore, "org/lwjgl/lwjgl-platform-natives-linux.jar", buildJar(t, map[string]string{
			"liblwjgl.so":          "lwjgl",
			"META-INF/MANIFEST.MF": "Manifest-Version: 1.0",
		})),
		writeNativeJar(t, jarStore, "net/java/jinput-platform-natives-linux.jar", buildJar(t, map[string]string{
			"libjinput-linux.so": "jinput",
		})),
	}

	required, err := provision.RequiresExtract(natives, jarStore, nativesDir)
	require.NoError(t, err)
	assert.True(t, required)

	require.NoError(t, provision.ExtractNatives(natives, jarStore, nativesDir, false))
	data, err := os.ReadFile(filepath.Join(nativesDir, "liblwjgl.so"))
	require.NoError(t, err)
	assert.Equal(t, "lwjgl", string(data))
	assert.FileExists(t, filepath.Join(nativesDir, "libjinput-linux.so"))
	assert.FileExists(t, filepath.Join(nativesDir, "META-INF", "MANIFEST.MF"))

	marker, err := os.ReadFile(filepath.Join(nativesDir, "lwjgl-platform-natives-linux.jar.sha1"))
	require.NoError(t, err)
	assert.Equal(t, natives[0].Classifier.SHA1, string(marker))

	required, err = provision.RequiresExtract(natives, jarStore, nativesDir)
	require.NoError(t, err)
	assert.False(t, required)

	// an unchanged set is left alone
	stray := filepath.Join(nativesDir, "stray.txt")
	require.NoError(t, os.WriteFile(stray, nil, 0644))
	require.NoError(t, provision.ExtractNatives(natives, jarStore, nativesDir, false))
	assert.FileExists(t, stray)

	// a new jar hash triggers a clean extraction
	natives[1].Classifier.SHA1 = "0000000000000000000000000000000000000000"
	required, err = provision.RequiresExtract(natives, jarStore, nativesDir)
	require.NoError(t, err)
	assert.True(t, required)
	require.NoError(t, provision.ExtractNatives(natives, jarStore, nativesDir, false))
	assert.NoFileExists(t, stray)

	require.NoError(t, os.WriteFile(stray, nil, 0644))
	require.NoError(t, provision.ExtractNatives(natives, jarStore, nativesDir, true))
	assert.NoFileExists(t, stray)
}

func TestExtractNativesErrors(t *testing.T) {
	dir := t.TempDir()
	jarStore := filepath.Join(dir, "natives-jarstore")
	nativesDir := filepath.Join(dir, "natives")

	err := provision.ExtractNatives(nil, jarStore, nativesDir, false)
	assert.ErrorIs(t, err, provision.ErrNoPlatformNatives)

	missing := []provision.NativeDownload{{
		Name:       "missing",
		Classifier: &meta.Classifier{Downloadable: meta.Downloadable{Path: "missing.jar", SHA1: "abc"}},
	}}
	assert.ErrorContains(t, provision.ExtractNatives(missing, jarStore, nativesDir, false), "not found")

	noPath := []provision.NativeDownload{{
		Name:       "nopath",
		Classifier: &meta.Classifier{Downloadable: meta.Downloadable{SHA1: "abc"}},
	}}
	_, err = provision.RequiresExtract(noPath, jarStore, nativesDir)
	assert.ErrorIs(t, err, meta.ErrMissingPath)
}

func TestExtractNativesRejectsEscapingEntries(t *testing.T) {
	dir := t.TempDir()
	jarStore := filepath.Join(dir, "natives-jarstore")
	nativesDir := filepath.Join(dir, "natives")

	natives := []provision.NativeDownload{
		writeNativeJar(t, jarStore, "evil.jar", buildJar(t, map[string]string{
			"../escaped.so": "nope",
		})),
	}
	err := provision.ExtractNatives(natives, jarStore, nativesDir, false)
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "escaped.so"))
}
