package provision

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/kralicky/mcsetup/pkg/api"
	"github.com/kralicky/mcsetup/pkg/meta"
	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const DefaultWorkers = 8

// Syncer downloads the files of a resolved version into a Layout.
type Syncer struct {
	Client  api.DownloadClient
	Layout  Layout
	Workers int
	Offline bool
	Refresh bool
	// Progress receives a progress bar per batch; nil disables it.
	Progress io.Writer
}

type job struct {
	name string
	url  string
	dest string
	sha1 string
}

type SyncOptions struct {
	SkipAssets  bool
	SkipNatives bool
}

// Sync fetches the client jar, libraries and natives of set, extracts the
// natives and, unless skipped, fetches the assets of desc.
func (s *Syncer) Sync(ctx context.Context, desc *meta.VersionDescriptor, set *DownloadSet, opts SyncOptions) error {
	if err := set.Err(); err != nil {
		return err
	}
	if err := s.SyncClient(ctx, set); err != nil {
		return err
	}
	if err := s.SyncLibraries(ctx, set); err != nil {
		return err
	}
	if !opts.SkipNatives && len(set.Natives) > 0 {
		if err := s.SyncNatives(ctx, set); err != nil {
			return err
		}
	}
	if !opts.SkipAssets {
		if err := s.SyncAssets(ctx, desc); err != nil {
			return err
		}
	}
	return nil
}

func (s *Syncer) SyncClient(ctx context.Context, set *DownloadSet) error {
	if set.Client == nil {
		log.Warnf("version %s has no client download", set.Version)
		return nil
	}
	return s.run(ctx, "client", []job{{
		name: set.Version + ".jar",
		url:  set.Client.URL,
		dest: s.Layout.ClientJar(set.Version),
		sha1: set.Client.SHA1,
	}})
}

func (s *Syncer) SyncLibraries(ctx context.Context, set *DownloadSet) error {
	jobs := make([]job, 0, len(set.Libraries))
	for _, lib := range set.Libraries {
		dest, err := lib.Artifact.RelativeFile(s.Layout.LibrariesDir())
		if err != nil {
			return fmt.Errorf("library %s: %w", lib.Name, err)
		}
		jobs = append(jobs, job{name: lib.Name, url: lib.Artifact.URL, dest: dest, sha1: lib.Artifact.SHA1})
	}
	return s.run(ctx, "libraries", jobs)
}

// SyncNatives downloads the native jars into the version's jar store and
// extracts them.
func (s *Syncer) SyncNatives(ctx context.Context, set *DownloadSet) error {
	jarStore := s.Layout.NativesJarStore(set.Version)
	jobs := make([]job, 0, len(set.Natives))
	for _, n := range set.Natives {
		dest, err := n.Classifier.RelativeFile(jarStore)
		if err != nil {
			return fmt.Errorf("natives %s: %w", n.Name, err)
		}
		jobs = append(jobs, job{name: n.Name, url: n.Classifier.URL, dest: dest, sha1: n.Classifier.SHA1})
	}
	if err := s.run(ctx, "natives", jobs); err != nil {
		return err
	}
	return ExtractNatives(set.Natives, jarStore, s.Layout.NativesDir(set.Version), s.Refresh)
}

func (s *Syncer) fetcher() *fetcher {
	return &fetcher{client: s.Client, offline: s.Offline, refresh: s.Refresh}
}

func (s *Syncer) workers() int {
	if s.Workers < 1 {
		return DefaultWorkers
	}
	return s.Workers
}

func (s *Syncer) newBar(total int, description string) *progressbar.ProgressBar {
	w := s.Progress
	if w == nil {
		w = io.Discard
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(200*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

// run fetches jobs with at most s.Workers downloads in flight. The first
// failure cancels the remaining jobs.
func (s *Syncer) run(ctx context.Context, description string, jobs []job) error {
	if len(jobs) == 0 {
		return nil
	}
	f := s.fetcher()
	bar := s.newBar(len(jobs), description)
	var downloaded atomic.Int64

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(s.workers())
	for _, j := range jobs {
		j := j
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fetched, err := f.fetchIfInvalid(ctx, j.url, j.dest, j.sha1)
			if err != nil {
				return fmt.Errorf("failed to download %s: %w", j.name, err)
			}
			if fetched {
				downloaded.Add(1)
			}
			bar.Add(1)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	bar.Finish()
	log.Infof("%s: %d files up to date, %d downloaded", description, len(jobs)-int(downloaded.Load()), downloaded.Load())
	return nil
}
