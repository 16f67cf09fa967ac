package main

import (
	"os"

	"github.com/theworkedge/contract-scout/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
