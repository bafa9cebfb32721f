package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/TheManchineel/ludika-go/internal/api"
)

func catalogCmd(a *app) *cobra.Command {
	var params api.ListGamesParams

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Fetch games, tags, and review criteria in one shot",
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, err := a.catalog.Bundle(cmd.Context(), params)
			if err != nil {
				return err
			}
			return a.printResult(bundle, bundleTable(bundle))
		},
	}

	cmd.Flags().StringVar(&params.Search, "search", "", "Full-text search on name and description")
	cmd.Flags().IntSliceVar(&params.Tags, "tag", nil, "Restrict to games carrying this tag id (repeatable)")
	cmd.Flags().IntVar(&params.Page, "page", 0, "Page number")
	cmd.Flags().IntVar(&params.Limit, "limit", 0, "Page size")
	return cmd
}

func bundleTable(bundle *api.Bundle) func(io.Writer) error {
	return func(out io.Writer) error {
		if err := gamesTable(bundle.Games.Items, bundle.Games.Total, bundle.Games.ServerPaginated)(out); err != nil {
			return err
		}
		if err := writef(out, "\nTags (%d):\n", len(bundle.Tags)); err != nil {
			return err
		}
		if err := tagsTable(bundle.Tags)(out); err != nil {
			return err
		}
		if err := writef(out, "\nReview criteria (%d):\n", len(bundle.Criteria)); err != nil {
			return err
		}
		return criteriaTable(bundle.Criteria)(out)
	}
}
