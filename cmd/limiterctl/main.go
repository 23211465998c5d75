// Command limiterctl demonstrates github.com/andreyvlasov/ratelimiter
// against a burst of synthetic jobs, exposing its metrics over HTTP.
//
// Grounded on ChuLiYu-raft-recovery's cmd/queue/main.go: main stays a
// thin wrapper around internal/cli.BuildCLI(), with a top-level panic
// recovery so a bug in a demo job doesn't take down the whole process
// without a message.
package main

import (
	"fmt"
	"os"

	"github.com/andreyvlasov/ratelimiter/internal/cli"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "fatal: %v\n", r)
			os.Exit(1)
		}
	}()

	if err := cli.BuildCLI().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
