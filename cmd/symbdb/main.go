// Package main provides the symbdb CLI application.
// symbdb extracts regional snapshots of Symbiota databases into SQLite
// files.
package main

import "github.com/gnames/symbdb/cmd"

func main() {
	cmd.Execute()
}
