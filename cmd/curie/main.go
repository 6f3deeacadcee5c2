// Package main is the single-binary entrypoint for Curie.
package main

import "github.com/curie-network/curie/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
