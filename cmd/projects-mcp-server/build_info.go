package main

import "fmt"

// These variables are set by the build process using ldflags.
var (
	version = "version"
	commit  = "commit"
	date    = "date"
)

type buildInfoStruct struct {
	commit  string
	date    string
	version string
}

func (b buildInfoStruct) String() string {
	return fmt.Sprintf("Commit: %s\nBuild Date: %s\nVersion: %s", b.commit, b.date, b.version)
}

// newBuildInfo falls back to "unknown" for values the build left empty.
func newBuildInfo(commit, date, version string) buildInfoStruct {
	orUnknown := func(s string) string {
		if s == "" {
			return "unknown"
		}
		return s
	}
	return buildInfoStruct{
		commit:  orUnknown(commit),
		date:    orUnknown(date),
		version: orUnknown(version),
	}
}

var buildInfo = newBuildInfo(commit, date, version)
