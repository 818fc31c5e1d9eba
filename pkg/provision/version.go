package provision

import (
	"context"
	"fmt"
	"os"

	"github.com/kralicky/mcsetup/pkg/api"
	"github.com/kralicky/mcsetup/pkg/meta"
)

// LoadVersion fetches (or, offline, reads) the descriptor of version id
// and caches it under the layout.
func LoadVersion(ctx context.Context, client api.Client, layout Layout, id string, offline bool) (*meta.VersionDescriptor, error) {
	path := layout.VersionJSON(id)
	if !offline {
		manifest, err := client.DownloadVersionManifest(ctx)
		if err != nil {
			return nil, err
		}
		entry, ok := manifest.Find(id)
		if !ok {
			return nil, fmt.Errorf("version %s not found", id)
		}
		f := &fetcher{client: client}
		if _, err := f.fetchIfInvalid(ctx, entry.URL, path, entry.SHA1); err != nil {
			return nil, fmt.Errorf("failed to fetch version %s: %w", id, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if offline && os.IsNotExist(err) {
			return nil, fmt.Errorf("version %s: %w", id, ErrOffline)
		}
		return nil, err
	}
	desc, err := meta.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("version %s: %w", id, err)
	}
	return desc, nil
}
