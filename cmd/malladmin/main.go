// Package main is the entry point for the malladmin CLI and HTTP host.
package main

import (
	"os"

	"malladmin/cmd/malladmin/commands"
)

// Version is the current version of malladmin
const Version = "v0.1.0"

func main() {
	commands.SetVersion(Version)

	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
