//go:build darwin

package platform

const hostName = OSX
