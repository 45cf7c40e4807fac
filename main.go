// main package for stitch command-line tool
// Package main is the entry point for the Stitch CLI.
package main

import "stitch.dev/pkg/stitch/cmd"

func main() {
	cmd.Execute()
}
