package provision

import (
	"errors"
	"fmt"

	"github.com/kralicky/mcsetup/pkg/meta"
)

type LibraryDownload struct {
	Name     string
	Artifact *meta.Artifact
}

type NativeDownload struct {
	Name       string
	Classifier *meta.Classifier
}

// Unresolved is a library whose manifest entry references a native
// artifact that cannot be found.
type Unresolved struct {
	Name string
	Err  error
}

// DownloadSet is everything one version needs on one platform.
type DownloadSet struct {
	Version  string
	Platform string

	Client     *meta.Download
	Libraries  []LibraryDownload
	Natives    []NativeDownload
	Unresolved []Unresolved
	Skipped    []string
}

// Resolve walks the descriptor's libraries in order and sorts each one into
// the download set for hostOS. Applicable libraries that carry neither an
// artifact nor natives for hostOS contribute nothing.
func Resolve(desc *meta.VersionDescriptor, hostOS string) *DownloadSet {
	set := &DownloadSet{
		Version:  desc.ID,
		Platform: hostOS,
	}
	if client, ok := desc.Download("client"); ok {
		set.Client = client
	}

	for i := range desc.Libraries {
		lib := &desc.Libraries[i]
		if !lib.IsApplicable(hostOS) {
			set.Skipped = append(set.Skipped, lib.Name)
			continue
		}
		if lib.HasPlatformNativeArtifact(hostOS) {
			classifier, err := lib.NativeArtifact(hostOS)
			if err != nil {
				set.Unresolved = append(set.Unresolved, Unresolved{Name: lib.Name, Err: err})
				continue
			}
			set.Natives = append(set.Natives, NativeDownload{Name: lib.Name, Classifier: classifier})
			continue
		}
		if lib.HasNatives() {
			continue
		}
		if artifact, ok := lib.PrimaryArtifact(); ok {
			set.Libraries = append(set.Libraries, LibraryDownload{Name: lib.Name, Artifact: artifact})
		}
	}
	return set
}

// Err reports every unresolved library, or nil if there are none.
func (s *DownloadSet) Err() error {
	if len(s.Unresolved) == 0 {
		return nil
	}
	errs := make([]error, 0, len(s.Unresolved))
	for _, u := range s.Unresolved {
		errs = append(errs, u.Err)
	}
	return fmt.Errorf("%d libraries could not be resolved for %s: %w", len(s.Unresolved), s.Platform, errors.Join(errs...))
}
