//go:build !linux

package device

const platformEnumerationSupported = false
