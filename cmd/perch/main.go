package main

import (
	"os"

	"github.com/crowmatic/perch/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
