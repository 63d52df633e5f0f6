package cmd

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newSuggestCmd(global *globalOptions) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "suggest <token>",
		Short: "Show dictionary suggestions for a misspelled term",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			client, err := openClient(ctx, global)
			if err != nil {
				return err
			}
			defer client.Close()

			corrections, err := client.Suggest(ctx, strings.Join(args, " "))
			if err != nil {
				return err //nolint:wrapcheck // already prefixed by the SDK
			}
			return printJSON(cmd.OutOrStdout(), corrections)
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "Lookup deadline")
	return cmd
}
