package main

import (
	"os"

	"github.com/mensylisir/coexm/cmd/coexm/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
