package api

import (
	"time"

	"github.com/unascribed/FlexVer/go/flexver"
)

type VersionKind string

const (
	KindRelease  VersionKind = "release"
	KindSnapshot VersionKind = "snapshot"
	KindOldBeta  VersionKind = "old_beta"
	KindOldAlpha VersionKind = "old_alpha"
)

// VersionManifest is the index of every published version.
type VersionManifest struct {
	Latest struct {
		Release  string `json:"release"`
		Snapshot string `json:"snapshot"`
	} `json:"latest"`
	Versions []VersionEntry `json:"versions"`
}

type VersionEntry struct {
	ID          string      `json:"id"`
	Type        VersionKind `json:"type"`
	URL         string      `json:"url"`
	Time        time.Time   `json:"time"`
	ReleaseTime time.Time   `json:"releaseTime"`
	SHA1        string      `json:"sha1,omitempty"`
}

func (m *VersionManifest) Find(id string) (VersionEntry, bool) {
	for _, v := range m.Versions {
		if v.ID == id {
			return v, true
		}
	}
	return VersionEntry{}, false
}

// Sorted returns version entries newest first. Snapshots and old
// alpha/beta builds are only included when includeSnapshots is set.
func (m *VersionManifest) Sorted(includeSnapshots bool) []VersionEntry {
	byID := make(map[string]VersionEntry, len(m.Versions))
	ids := make([]string, 0, len(m.Versions))
	for _, v := range m.Versions {
		if v.Type != KindRelease && !includeSnapshots {
			continue
		}
		if _, dup := byID[v.ID]; dup {
			continue
		}
		byID[v.ID] = v
		ids = append(ids, v.ID)
	}
	flexver.VersionSlice(ids).Sort()

	out := make([]VersionEntry, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		out = append(out, byID[ids[i]])
	}
	return out
}

// Releases returns the ids of release versions, newest first.
func (m *VersionManifest) Releases() []string {
	entries := m.Sorted(false)
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}
