//go:build linux

package platform

const hostName = Linux
