// Command netzero is the solar net-zero calculator CLI.
package main

import (
	"context"
	"os"

	"github.com/rshade/netzero/internal/cli"
	"github.com/rshade/netzero/pkg/version"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:]))
}

// run executes the command tree and returns the process exit code.
func run(ctx context.Context, args []string) int {
	root := cli.NewRootCmd(version.GetVersion())
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
