//go:build windows
// +build windows

package sysutil

import "errors"

// RlimitNofile is not supported on windows.
func RlimitNofile() (uint64, error) {
	return 0, errors.New("open files limit is not supported on windows")
}
