package cmd

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"
)

func newHealthCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the catalog store and suggestion cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			client, err := openClient(ctx, global)
			if err != nil {
				return err
			}
			defer client.Close()

			status := client.Health(ctx)
			if err := printJSON(cmd.OutOrStdout(), status); err != nil {
				return err
			}
			if !status.Serving() {
				return errors.New("catalog store unhealthy")
			}
			return nil
		},
	}
}
