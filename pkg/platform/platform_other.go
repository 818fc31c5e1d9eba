//go:build !linux && !darwin && !windows

package platform

const hostName = Linux
