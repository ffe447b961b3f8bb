package main

import (
	"os"

	"charsheet-restful/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
