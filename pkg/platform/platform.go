// Package platform names the host operating system the way version
// manifests do: "windows", "osx" or "linux".
package platform

import (
	"runtime"
	"strings"
)

const (
	Windows = "windows"
	OSX     = "osx"
	Linux   = "linux"
)

// Current returns the identifier of the running operating system.
func Current() string {
	return hostName
}

// Normalize maps an arbitrary operating system name onto a manifest
// platform identifier. Unknown names are treated as linux.
func Normalize(name string) string {
	lower := strings.ToLower(name)
	switch {
	// "darwin" contains "win"
	case strings.Contains(lower, "mac"), strings.Contains(lower, "darwin"), lower == OSX:
		return OSX
	case strings.Contains(lower, "win"):
		return Windows
	default:
		return Linux
	}
}

// Arch returns "64" or "32", the form used by ${arch} in native classifiers.
func Arch() string {
	return archBits(runtime.GOARCH)
}

func archBits(goarch string) string {
	switch goarch {
	case "386", "arm", "mips", "mipsle", "wasm":
		return "32"
	default:
		return "64"
	}
}
