package cmd

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type queryOptions struct {
	page     int
	pageSize int
	timeout  time.Duration
}

func newQueryCmd(global *globalOptions) *cobra.Command {
	var opts queryOptions

	cmd := &cobra.Command{
		Use:   "query <text>",
		Short: "Search the catalog",
		Long: `Search the catalog exactly like GET /api/search and print the page as JSON.

Examples:
  searchctl query "iphone 14"
  searchctl query charger --page 1 --page-size 5
  searchctl --env prod query "usb-c cable"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, global, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().IntVar(&opts.page, "page", 0, "Zero-based page number")
	cmd.Flags().IntVar(&opts.pageSize, "page-size", 0, "Results per page (default from config)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 5*time.Second, "Query deadline")

	return cmd
}

func runQuery(cmd *cobra.Command, global *globalOptions, text string, opts queryOptions) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	client, err := openClient(ctx, global)
	if err != nil {
		return err
	}
	defer client.Close()

	page, err := client.Search(ctx, text, opts.page, opts.pageSize)
	if err != nil {
		return err //nolint:wrapcheck // already prefixed by the SDK
	}
	return printJSON(cmd.OutOrStdout(), page)
}
