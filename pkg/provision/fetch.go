package provision

import (
	"context"
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kralicky/mcsetup/pkg/api"
	log "github.com/sirupsen/logrus"
)

var ErrOffline = errors.New("file is not available offline")

type fetcher struct {
	client  api.DownloadClient
	offline bool
	refresh bool
}

func sidecarPath(file string) string {
	return file + ".sha1"
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// readSidecar returns the hash recorded for file by the last verified
// download, or "" if there is none.
func readSidecar(file string) string {
	if !exists(file) {
		return ""
	}
	data, err := os.ReadFile(sidecarPath(file))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warnf("error reading sha1 file %s: %v", sidecarPath(file), err)
		}
		return ""
	}
	return strings.TrimSpace(string(data))
}

func removeWithSidecar(file string) {
	os.Remove(file)
	os.Remove(sidecarPath(file))
}

func fileSHA1(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	hash := sha1.New()
	if _, err := io.Copy(hash, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}

// fetchIfInvalid downloads url to dest unless the sha1 sidecar next to dest
// already records expectedSHA1. The downloaded contents are verified before
// they replace dest. It reports whether a download happened.
func (f *fetcher) fetchIfInvalid(ctx context.Context, url, dest, expectedSHA1 string) (bool, error) {
	if f.offline {
		if !exists(dest) {
			return false, fmt.Errorf("%s: %w", dest, ErrOffline)
		}
		return false, nil
	}
	if f.refresh {
		removeWithSidecar(dest)
	}

	if expectedSHA1 == "" {
		if exists(dest) {
			return false, nil
		}
	} else if strings.EqualFold(readSidecar(dest), expectedSHA1) {
		return false, nil
	} else if sum, err := fileSHA1(dest); err == nil && strings.EqualFold(sum, expectedSHA1) {
		// already correct on disk, only the sidecar is missing
		f.writeSidecar(dest, expectedSHA1)
		return false, nil
	}

	log.Debugf("downloading %s", url)
	if err := f.download(ctx, url, dest, expectedSHA1); err != nil {
		removeWithSidecar(dest)
		return false, err
	}
	f.writeSidecar(dest, expectedSHA1)
	return true, nil
}

func (f *fetcher) writeSidecar(dest, sum string) {
	if err := os.WriteFile(sidecarPath(dest), []byte(sum), 0644); err != nil {
		log.Warnf("error saving sha1 file %s: %v", sidecarPath(dest), err)
	}
}

func (f *fetcher) download(ctx context.Context, url, dest, expectedSHA1 string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	body, err := f.client.DownloadFile(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for download: %w", err)
	}
	defer os.Remove(tmp.Name())

	hash := sha1.New()
	if _, err := io.Copy(tmp, io.TeeReader(body, hash)); err != nil {
		tmp.Close()
		return fmt.Errorf("error while writing file %s: %w", dest, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	sum := fmt.Sprintf("%x", hash.Sum(nil))
	if expectedSHA1 != "" && !strings.EqualFold(sum, expectedSHA1) {
		return fmt.Errorf("downloaded file from %s to %s and got unexpected hash of %s, expected %s", url, dest, sum, expectedSHA1)
	}
	return os.Rename(tmp.Name(), dest)
}
