// Package main implements structurerun, a single-shot prompt runner for
// managed and local execution environments.
package main

import "os"

// main is the program entry point.
func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}
