//go:build windows

package platform

const hostName = Windows
