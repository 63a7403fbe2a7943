package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Set via -ldflags "-X github.com/MacroPower/rpathgen/pkg/version.Version=...".
var (
	Version  = "0.0.0-dev"
	Revision = ""
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if ok {
		if v := info.Main.Version; v != "" && v != "(devel)" && Version == "0.0.0-dev" {
			Version = strings.TrimPrefix(v, "v")
		}

		if Revision == "" {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" {
					Revision = s.Value
				}
			}
		}
	}

	if Revision == "" {
		Revision = "unknown"
	}
}

// GetVersionString returns the version and short revision.
func GetVersionString() string {
	rev := Revision
	if len(rev) > 12 {
		rev = rev[:12]
	}

	return fmt.Sprintf("%s+%s", Version, rev)
}
