// Package misc keeps build identity helpers used across the program, mostly
// for logging and report naming.
package misc

import (
	rdebug "runtime/debug"
)

const appName = "osbc"

// GetAppName returns the short program name used in log and report file names.
func GetAppName() string {
	return appName
}

// GetVersion returns the module version recorded by the build.
func GetVersion() string {
	if bi, ok := rdebug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "(devel)"
}

// GetGitHash returns the vcs revision recorded by the build, shortened the
// way git log does it.
func GetGitHash() string {
	bi, ok := rdebug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			if len(s.Value) > 12 {
				return s.Value[:12]
			}
			return s.Value
		}
	}
	return "unknown"
}
