package main

import (
	"os"

	"github.com/obsnight/transitplan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
