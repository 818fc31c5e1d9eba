package provision

import (
	"os"
	"path/filepath"
)

func DataDir() (string, error) {
	cache, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cache, "mcsetup-data"), nil
}

func UpsertDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return dir, os.MkdirAll(dir, 0755)
}

// Layout describes where provisioned files live under a data directory.
type Layout struct {
	Root string
}

func (l Layout) VersionDir(id string) string {
	return filepath.Join(l.Root, "versions", id)
}

func (l Layout) VersionJSON(id string) string {
	return filepath.Join(l.VersionDir(id), id+".json")
}

func (l Layout) ClientJar(id string) string {
	return filepath.Join(l.VersionDir(id), id+".jar")
}

func (l Layout) LibrariesDir() string {
	return filepath.Join(l.Root, "libraries")
}

func (l Layout) NativesDir(id string) string {
	return filepath.Join(l.VersionDir(id), "natives")
}

func (l Layout) NativesJarStore(id string) string {
	return filepath.Join(l.VersionDir(id), "natives-jarstore")
}

func (l Layout) AssetsDir() string {
	return filepath.Join(l.Root, "assets")
}

func (l Layout) ResourcesDir(id string) string {
	return filepath.Join(l.VersionDir(id), "resources")
}
