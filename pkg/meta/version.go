package meta

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrMissingPath = errors.New("cannot get relative file from an empty path")
	ErrMissingID   = errors.New("version descriptor has no id")
	ErrUnsafePath  = errors.New("path escapes its base directory")
)

// VersionDescriptor is the parsed form of one version's manifest (e.g. 1.8.9.json).
type VersionDescriptor struct {
	ID                     string               `json:"id"`
	Type                   string               `json:"type"`
	Time                   string               `json:"time"`
	ReleaseTime            string               `json:"releaseTime"`
	ComplianceLevel        int                  `json:"complianceLevel"`
	MinimumLauncherVersion int                  `json:"minimumLauncherVersion"`
	MainClass              string               `json:"mainClass"`
	Assets                 string               `json:"assets"`
	AssetIndex             *AssetIndex          `json:"assetIndex,omitempty"`
	Downloads              map[string]*Download `json:"downloads"`
	Libraries              []Library            `json:"libraries"`

	Arguments json.RawMessage `json:"arguments,omitempty"`
	Logging   json.RawMessage `json:"logging,omitempty"`
}

func (v *VersionDescriptor) Download(kind string) (*Download, bool) {
	d, ok := v.Downloads[kind]
	return d, ok && d != nil
}

// Downloadable holds the fields shared by everything that can be fetched.
type Downloadable struct {
	URL  string `json:"url"`
	SHA1 string `json:"sha1"`
	Size int64  `json:"size"`
	Path string `json:"path,omitempty"`
}

// RelativeFile resolves the artifact's path under baseDir.
func (d Downloadable) RelativeFile(baseDir string) (string, error) {
	if d.Path == "" {
		return "", ErrMissingPath
	}
	return SafeJoin(baseDir, d.Path)
}

// SafeJoin joins the slash-separated rel under baseDir and fails if the
// result would land outside baseDir.
func SafeJoin(baseDir, rel string) (string, error) {
	target := filepath.Join(baseDir, filepath.FromSlash(rel))
	if !strings.HasPrefix(target, filepath.Clean(baseDir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, rel)
	}
	return target, nil
}

type Download struct {
	Downloadable
}

type AssetIndex struct {
	Downloadable
	ID        string `json:"id"`
	TotalSize int64  `json:"totalSize"`
}

// CacheID combines the owning version id with the index id so that
// versions sharing an index id but not a version id don't collide.
func (a *AssetIndex) CacheID(versionID string) string {
	if a.ID == versionID {
		return versionID
	}
	return versionID + "-" + a.ID
}

type Library struct {
	Name      string            `json:"name"`
	Downloads *Downloads        `json:"downloads,omitempty"`
	Natives   map[string]string `json:"natives,omitempty"`
	Rules     []Rule            `json:"rules,omitempty"`
}

type Downloads struct {
	Artifact    *Artifact              `json:"artifact,omitempty"`
	Classifiers map[string]*Classifier `json:"classifiers,omitempty"`
}

type Artifact struct {
	Downloadable
}

type Classifier struct {
	Downloadable
}

type Rule struct {
	Action string `json:"action"`
	OS     *OS    `json:"os,omitempty"`
}

// OS constrains a rule to one platform. An empty name matches every platform.
type OS struct {
	Name string `json:"name,omitempty"`
}
