// Package cli is a small demo CLI for github.com/andreyvlasov/ratelimiter:
// it wires a Limiter to a Prometheus metrics endpoint and a synthetic
// job generator so the package's behavior can be observed from the
// command line.
//
// Grounded on ChuLiYu-raft-recovery's internal/cli.BuildCLI: a cobra
// root command with a persistent --config flag and one subcommand per
// concern, kept out of cmd/ so the binary's main stays a thin wrapper.
package cli

import (
	"github.com/spf13/cobra"
)

var configFile string

// BuildCLI assembles the limiterctl command tree.
func BuildCLI() *cobra.Command {
	root := &cobra.Command{
		Use:     "limiterctl",
		Short:   "Demo driver for the priority-aware interval rate limiter",
		Version: "0.1.0",
	}

	root.PersistentFlags().StringVarP(&configFile, "config", "c", "configs/default.yaml", "config file path")

	root.AddCommand(buildServeCommand())
	return root
}
