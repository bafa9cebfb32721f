package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/TheManchineel/ludika-go/internal/api"
	"github.com/TheManchineel/ludika-go/internal/domain/model"
	"github.com/TheManchineel/ludika-go/internal/viewstate"
)

// gameListFunc adapts any of the three game listing endpoints to the
// observable view's lister interface.
type gameListFunc func(ctx context.Context, params api.ListGamesParams) (*api.Page[model.Game], error)

func (f gameListFunc) List(ctx context.Context, params api.ListGamesParams) (*api.Page[model.Game], error) {
	return f(ctx, params)
}

func gamesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "games",
		Short: "Browse and manage catalogue games",
	}
	cmd.AddCommand(
		gamesListCmd(a),
		gamesShowCmd(a),
		gamesCreateCmd(a),
		gamesUpdateCmd(a),
		gamesSubmitCmd(a),
		gamesDeleteCmd(a),
		gamesImageCmd(a),
	)
	return cmd
}

func gamesListCmd(a *app) *cobra.Command {
	var params api.ListGamesParams
	var mine, queue bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List games with optional search, tag, and pagination filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			if mine && queue {
				return fmt.Errorf("--mine and --queue are mutually exclusive")
			}

			lister := gameListFunc(a.games.List)
			switch {
			case mine:
				lister = a.games.MyGames
			case queue:
				lister = a.games.WaitingForApproval
			}

			snap, err := a.fetchGamesWith(cmd.Context(), lister, params)
			if err != nil {
				return err
			}
			return a.printResult(snap.Games,
				gamesTable(snap.Games, snap.Total, snap.Total > len(snap.Games)))
		},
	}

	cmd.Flags().StringVar(&params.Search, "search", "", "Full-text search on name and description")
	cmd.Flags().IntSliceVar(&params.Tags, "tag", nil, "Restrict to games carrying this tag id (repeatable)")
	cmd.Flags().IntVar(&params.Page, "page", 0, "Page number")
	cmd.Flags().IntVar(&params.Limit, "limit", 0, "Page size")
	cmd.Flags().BoolVar(&mine, "mine", false, "Only games proposed by the current user")
	cmd.Flags().BoolVar(&queue, "queue", false, "Submitted games awaiting moderation (privileged)")
	return cmd
}

func gamesShowCmd(a *app) *cobra.Command {
	var withReviews bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseGameID(args[0])
			if err != nil {
				return err
			}

			if withReviews {
				game, err := a.games.GetWithReviews(cmd.Context(), id)
				if err != nil {
					return err
				}
				return a.printResult(game, gameWithReviewsTable(game))
			}

			game, err := a.games.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.printResult(game, gameDetailTable(game))
		},
	}

	cmd.Flags().BoolVar(&withReviews, "reviews", false, "Include the game's reviews")
	return cmd
}

func gamesCreateCmd(a *app) *cobra.Command {
	var in model.GameCreate

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Propose a new game (starts as a draft)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.Name == "" {
				return fmt.Errorf("--name is required")
			}
			game, err := a.games.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			return a.printResult(game, gameDetailTable(game))
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Game name")
	cmd.Flags().StringVar(&in.Description, "description", "", "Game description")
	cmd.Flags().StringVar(&in.URL, "url", "", "Where the game is played or downloaded")
	cmd.Flags().IntSliceVar(&in.Tags, "tag", nil, "Tag id to attach (repeatable)")
	return cmd
}

func gamesUpdateCmd(a *app) *cobra.Command {
	var name, description, gameURL, status string
	var tags []int

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseGameID(args[0])
			if err != nil {
				return err
			}

			var in model.GameUpdate
			if cmd.Flags().Changed("name") {
				in.Name = &name
			}
			if cmd.Flags().Changed("description") {
				in.Description = &description
			}
			if cmd.Flags().Changed("url") {
				in.URL = &gameURL
			}
			if cmd.Flags().Changed("tag") {
				in.Tags = tags
			}
			if cmd.Flags().Changed("status") {
				s := model.GameStatus(status)
				if !s.Valid() {
					return fmt.Errorf("invalid status %q", status)
				}
				in.Status = &s
			}

			game, err := a.games.Update(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			return a.printResult(game, gameDetailTable(game))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&gameURL, "url", "", "New URL")
	cmd.Flags().IntSliceVar(&tags, "tag", nil, "Replacement tag id (repeatable)")
	cmd.Flags().StringVar(&status, "status", "", "New status (draft|submitted|approved|rejected)")
	return cmd
}

func gamesSubmitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "submit <id>",
		Short: "Send a draft to the moderation queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseGameID(args[0])
			if err != nil {
				return err
			}
			game, err := a.games.Submit(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.printResult(game, gameDetailTable(game))
		},
	}
}

func gamesDeleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseGameID(args[0])
			if err != nil {
				return err
			}
			if err := confirm(yes, fmt.Sprintf("This deletes game %d permanently", id)); err != nil {
				return err
			}
			if err := a.games.Delete(cmd.Context(), id); err != nil {
				return err
			}
			return writef(cmd.OutOrStdout(), "Deleted game %d\n", id)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompt")
	return cmd
}

func gamesImageCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Manage a game's screenshots",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <game-id> <file>",
		Short: "Upload a new screenshot, appended after the existing ones",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseGameID(args[0])
			if err != nil {
				return err
			}
			return withImageFile(args[1], func(name string, f *os.File) error {
				return a.games.AddImage(cmd.Context(), id, name, f)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "replace <game-id> <position> <file>",
		Short: "Replace the screenshot at a position",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseGameID(args[0])
			if err != nil {
				return err
			}
			position, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid position %q", args[1])
			}
			return withImageFile(args[2], func(name string, f *os.File) error {
				return a.games.ReplaceImage(cmd.Context(), id, position, name, f)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <game-id> <position>",
		Short: "Delete the screenshot at a position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseGameID(args[0])
			if err != nil {
				return err
			}
			position, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid position %q", args[1])
			}
			return a.games.DeleteImage(cmd.Context(), id, position)
		},
	})

	return cmd
}

func (a *app) fetchGamesWith(
	ctx context.Context, lister gameListFunc, params api.ListGamesParams,
) (viewstate.GamesSnapshot, error) {
	view := viewstate.NewGames(lister)
	view.Fetch(ctx, params)
	snap := view.Snapshot()
	if snap.Err != "" {
		return snap, fmt.Errorf("%s", snap.Err)
	}
	return snap, nil
}

func parseGameID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid game id %q", arg)
	}
	return id, nil
}

func withImageFile(path string, upload func(name string, f *os.File) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return upload(filepath.Base(path), f)
}
