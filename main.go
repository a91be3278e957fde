package main

import "github.com/mrlokans/locallibrary/internal/cli"

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	cli.SetVersion(Version, Commit)
	cli.Execute()
}
