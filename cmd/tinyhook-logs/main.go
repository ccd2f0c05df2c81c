// Command tinyhook-logs opens the agent log viewer. It is the same as
// "tinyhook logs".
package main

import (
	"os"

	"github.com/tinyhook/tinyhook/internal/cli"
)

func main() {
	os.Exit(cli.Execute(append([]string{"logs"}, os.Args[1:]...)))
}
