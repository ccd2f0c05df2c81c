package main

import (
	"os"

	"github.com/tinyhook/tinyhook/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:]))
}
