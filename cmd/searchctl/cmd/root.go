// Package cmd provides the searchctl commands.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/shopsearch/internal/version"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	env        string
	configPath string
	verbose    bool
}

// NewRootCmd creates the root command for the searchctl CLI.
func NewRootCmd() *cobra.Command {
	var opts globalOptions

	cmd := &cobra.Command{
		Use:   "searchctl",
		Short: "Operator CLI for the shopsearch engine",
		Long: `searchctl runs queries against the catalog configured for an
environment, without going through the HTTP API.

It reads the same config/<env>.yaml as the server.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.SetVersionTemplate("searchctl version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&opts.env, "env", "", "Config environment (default: $ENV or local)")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Explicit config file path (overrides --env)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log SDK operations to stderr")

	cmd.AddCommand(newQueryCmd(&opts))
	cmd.AddCommand(newSuggestCmd(&opts))
	cmd.AddCommand(newHealthCmd(&opts))

	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
