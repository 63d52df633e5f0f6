package main

import (
	"os"

	"github.com/kailas-cloud/shopsearch/cmd/searchctl/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
