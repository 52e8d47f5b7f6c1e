package main

import (
	"os"

	"github.com/canteen-dev/canteenctl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
