package main

import (
	"os"

	"github.com/wagiedev/conference-embed-go/cmd/confembed/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
