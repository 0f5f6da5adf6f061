package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mmynk/spendwise/internal/models"
)

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List expense categories and their wire values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "VALUE\tCATEGORY\n")
			for _, c := range models.Categories() {
				marker := ""
				if c == models.DefaultCategory {
					marker = " (default)"
				}
				fmt.Fprintf(tw, "%d\t%s %s%s\n", int(c), c.Emoji(), c, marker)
			}
			return tw.Flush()
		},
	}
}
