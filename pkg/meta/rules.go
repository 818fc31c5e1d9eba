package meta

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoNatives          = errors.New("library declares no natives for platform")
	ErrNoDownloads        = errors.New("library has no downloads")
	ErrClassifierNotFound = errors.New("classifier not found")
)

const ActionAllow = "allow"

// Allowed reports whether the rule allows. Any token other than "allow" denies.
func (r Rule) Allowed() bool {
	return r.Action == ActionAllow
}

// AppliesTo reports whether the rule targets hostOS. Rules without an OS
// constraint target every platform.
func (r Rule) AppliesTo(hostOS string) bool {
	return r.OS == nil || r.OS.Matches(hostOS)
}

func (o *OS) Matches(hostOS string) bool {
	return o.Name == "" || strings.EqualFold(o.Name, hostOS)
}

// IsApplicable decides whether the library is needed on hostOS.
//
// A library without rules is always applicable. Otherwise a deny rule that
// targets hostOS excludes it, and inclusion further requires an allow rule
// with no OS constraint. Rules that only allow specific platforms therefore
// exclude the library everywhere.
func (l *Library) IsApplicable(hostOS string) bool {
	if len(l.Rules) == 0 {
		return true
	}
	if l.deniedOn(hostOS) {
		return false
	}
	return l.allowedEverywhere()
}

func (l *Library) deniedOn(hostOS string) bool {
	for _, rule := range l.Rules {
		if rule.AppliesTo(hostOS) && !rule.Allowed() {
			return true
		}
	}
	return false
}

func (l *Library) allowedEverywhere() bool {
	for _, rule := range l.Rules {
		if rule.Allowed() && rule.OS == nil {
			return true
		}
	}
	return false
}

func (l *Library) HasNatives() bool {
	return l.Natives != nil
}

// HasPlatformNativeArtifact reports whether the library carries a native
// classifier for hostOS and is applicable there.
func (l *Library) HasPlatformNativeArtifact(hostOS string) bool {
	if !l.HasNatives() {
		return false
	}
	if _, ok := l.Natives[hostOS]; !ok {
		return false
	}
	return l.IsApplicable(hostOS)
}

// NativeArtifact resolves the native classifier for hostOS. A missing
// classifier is a malformed manifest and is reported, not ignored.
func (l *Library) NativeArtifact(hostOS string) (*Classifier, error) {
	key, ok := l.Natives[hostOS]
	if !ok {
		return nil, fmt.Errorf("%s: %w %s", l.Name, ErrNoNatives, hostOS)
	}
	if l.Downloads == nil {
		return nil, fmt.Errorf("%s: %w", l.Name, ErrNoDownloads)
	}
	classifier, ok := l.Downloads.Classifiers[key]
	if !ok || classifier == nil {
		return nil, fmt.Errorf("%s: %w: %s", l.Name, ErrClassifierNotFound, key)
	}
	return classifier, nil
}

// PrimaryArtifact returns the main jar, if the library has one. Some
// libraries only exist to carry natives or rules.
func (l *Library) PrimaryArtifact() (*Artifact, bool) {
	if l.Downloads == nil || l.Downloads.Artifact == nil {
		return nil, false
	}
	return l.Downloads.Artifact, true
}
