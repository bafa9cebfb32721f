package main

import (
	"github.com/spf13/cobra"
)

func tagsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Browse catalogue tags",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			tags, err := a.tags.List(cmd.Context())
			if err != nil {
				return err
			}
			return a.printResult(tags, tagsTable(tags))
		},
	})

	return cmd
}
