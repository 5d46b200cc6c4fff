package main

import (
	"fmt"
)

const (
	appMajor uint = 0
	appMinor uint = 5
	appPatch uint = 0

	appPreRelease = "beta"
)

// version returns the application version as a properly formed string.
func version() string {
	version := fmt.Sprintf("%d.%d.%d", appMajor, appMinor, appPatch)
	if appPreRelease != "" {
		version = fmt.Sprintf("%s-%s", version, appPreRelease)
	}
	return version
}
