package provision

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/kralicky/mcsetup/pkg/meta"
	log "github.com/sirupsen/logrus"
)

var ErrNoPlatformNatives = errors.New("no natives found for the current system")

func markerPath(nativesDir, jar string) string {
	return filepath.Join(nativesDir, filepath.Base(jar)+".sha1")
}

// RequiresExtract reports whether any native jar lacks a matching marker
// in nativesDir.
func RequiresExtract(natives []NativeDownload, jarStore, nativesDir string) (bool, error) {
	if len(natives) == 0 {
		return false, ErrNoPlatformNatives
	}
	for _, n := range natives {
		jar, err := n.Classifier.RelativeFile(jarStore)
		if err != nil {
			return false, fmt.Errorf("natives %s: %w", n.Name, err)
		}
		data, err := os.ReadFile(markerPath(nativesDir, jar))
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				log.Errorf("failed to read %s: %v", markerPath(nativesDir, jar), err)
			}
			return true, nil
		}
		if !strings.EqualFold(strings.TrimSpace(string(data)), n.Classifier.SHA1) {
			return true, nil
		}
	}
	return false, nil
}

// ExtractNatives unpacks every native jar from jarStore into nativesDir,
// leaving a marker per jar so unchanged natives are not extracted again.
func ExtractNatives(natives []NativeDownload, jarStore, nativesDir string, force bool) error {
	required, err := RequiresExtract(natives, jarStore, nativesDir)
	if err != nil {
		return err
	}
	if !required && !force {
		log.Info("natives do not need extracting, skipping")
		return nil
	}

	if err := os.RemoveAll(nativesDir); err != nil {
		return fmt.Errorf("failed to delete the natives directory, is the game running? %w", err)
	}
	if err := os.MkdirAll(nativesDir, 0755); err != nil {
		return err
	}
	for _, n := range natives {
		jar, err := n.Classifier.RelativeFile(jarStore)
		if err != nil {
			return fmt.Errorf("natives %s: %w", n.Name, err)
		}
		if !exists(jar) {
			return fmt.Errorf("native jar not found at %s", jar)
		}
		log.Debugf("extracting %s", filepath.Base(jar))
		if err := unzip(jar, nativesDir); err != nil {
			return fmt.Errorf("failed to extract %s: %w", jar, err)
		}
		if err := os.WriteFile(markerPath(nativesDir, jar), []byte(n.Classifier.SHA1), 0644); err != nil {
			return err
		}
	}
	return nil
}

func unzip(src, destDir string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		target, err := meta.SafeJoin(destDir, f.Name)
		if err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}
		if err := extractFile(f, target); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
