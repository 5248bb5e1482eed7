package version

import "fmt"

// These variables are overridden at build time using -ldflags, e.g.
// -X github.com/ericogr/war-cards/internal/version.Version=v1.2.0
var (
	Version = "dev"
	Commit  = "none"
	Date    = ""
	Dirty   = "false"
)

// Info is the build metadata served by the API and printed by the CLI.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Dirty   bool   `json:"dirty"`
}

func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date, Dirty: Dirty == "true"}
}

func (i Info) String() string {
	s := fmt.Sprintf("%s (%s", i.Version, i.Commit)
	if i.Dirty {
		s += ", dirty"
	}
	if i.Date != "" {
		s += ", " + i.Date
	}
	return s + ")"
}
