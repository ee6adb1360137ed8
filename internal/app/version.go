package app

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Name is the command name shown in --version output and logs.
const Name = "luis2clu"

// Set via ldflags, e.g.
//
//	go build -ldflags "-X github.com/Jay-Jay-D/luis-json-converter/internal/app.Version=1.2.0" ./cmd/luis2clu
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// BuildVersion returns the --version line, for example
// "luis2clu 1.2.0 (commit 3f2a1c9, built 2026-10-01T10:00:00Z, go1.24.0)".
// Values missing from ldflags fall back to the module build info.
func BuildVersion() string {
	version, commit := Version, Commit
	if info, ok := debug.ReadBuildInfo(); ok {
		if version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
		if commit == "" {
			commit = buildSetting(info, "vcs.revision")
		}
	}
	if len(commit) > 7 {
		commit = commit[:7]
	}

	var details []string
	if commit != "" {
		details = append(details, "commit "+commit)
	}
	if BuildTime != "" {
		details = append(details, "built "+BuildTime)
	}
	details = append(details, runtime.Version())

	return fmt.Sprintf("%s %s (%s)", Name, version, strings.Join(details, ", "))
}

func buildSetting(info *debug.BuildInfo, key string) string {
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}
