// Package misc provides small helpers shared across the program.
package misc

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
)

// GetAppName returns the name of the running executable without path and
// extension.
func GetAppName() string {
	name := filepath.Base(os.Args[0])
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// GetVersion returns the main module version recorded in build information.
func GetVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "unknown"
}

// GetGitHash returns the VCS revision recorded in build information.
func GetGitHash() string {
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
