package provision

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/kralicky/mcsetup/pkg/meta"
	log "github.com/sirupsen/logrus"
)

// AssetObjects is the content of an asset index file.
type AssetObjects struct {
	Objects        map[string]AssetObject `json:"objects"`
	MapToResources bool                   `json:"map_to_resources,omitempty"`
	Virtual        bool                   `json:"virtual,omitempty"`
}

type AssetObject struct {
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}

func (s *Syncer) assetIndexPath(desc *meta.VersionDescriptor) string {
	return filepath.Join(s.Layout.AssetsDir(), "indexes", desc.AssetIndex.CacheID(desc.ID)+".json")
}

func LoadAssetObjects(path string) (*AssetObjects, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var objects AssetObjects
	if err := json.Unmarshal(data, &objects); err != nil {
		return nil, fmt.Errorf("failed to parse asset index %s: %w", path, err)
	}
	return &objects, nil
}

// SyncAssets fetches the version's asset index and every object it lists.
func (s *Syncer) SyncAssets(ctx context.Context, desc *meta.VersionDescriptor) error {
	if desc.AssetIndex == nil {
		log.Debugf("version %s has no asset index", desc.ID)
		return nil
	}
	indexPath := s.assetIndexPath(desc)
	if _, err := s.fetcher().fetchIfInvalid(ctx, desc.AssetIndex.URL, indexPath, desc.AssetIndex.SHA1); err != nil {
		return fmt.Errorf("failed to download asset index: %w", err)
	}
	objects, err := LoadAssetObjects(indexPath)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(objects.Objects))
	for name := range objects.Objects {
		names = append(names, name)
	}
	sort.Strings(names)

	jobs := make([]job, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		obj := objects.Objects[name]
		if len(obj.Hash) < 2 {
			return fmt.Errorf("asset %s has an invalid hash %q", name, obj.Hash)
		}
		var dest string
		if objects.MapToResources {
			dest, err = meta.SafeJoin(s.Layout.ResourcesDir(desc.ID), name)
		} else {
			dest, err = meta.SafeJoin(s.Layout.AssetsDir(), "objects/"+obj.Hash[:2]+"/"+obj.Hash)
		}
		if err != nil {
			return fmt.Errorf("asset %s: %w", name, err)
		}
		// many names share one object
		if _, ok := seen[dest]; ok {
			continue
		}
		seen[dest] = struct{}{}
		jobs = append(jobs, job{name: name, url: s.Client.AssetURL(obj.Hash), dest: dest, sha1: obj.Hash})
	}
	return s.run(ctx, "assets", jobs)
}
