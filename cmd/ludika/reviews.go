package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/TheManchineel/ludika-go/internal/domain/model"
)

func reviewsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "Read and write game reviews",
	}
	cmd.AddCommand(
		reviewsCriteriaCmd(a),
		reviewsShowCmd(a),
		reviewsMineCmd(a),
		reviewsSubmitCmd(a),
		reviewsDeleteCmd(a),
	)
	return cmd
}

func reviewsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <review-id>",
		Short: "Show one review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid review id %q", args[0])
			}
			review, err := a.reviews.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.printResult(review, reviewTable(review))
		},
	}
}

func reviewsCriteriaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "criteria",
		Short: "List the rating criteria reviews are scored against",
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria, err := a.reviews.Criteria(cmd.Context())
			if err != nil {
				return err
			}
			return a.printResult(criteria, criteriaTable(criteria))
		},
	}
}

func reviewsMineCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mine <game-id>",
		Short: "Show my review of a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID, err := parseGameID(args[0])
			if err != nil {
				return err
			}
			review, err := a.reviews.MyReview(cmd.Context(), gameID)
			if err != nil {
				return err
			}
			if review == nil {
				return writeln(cmd.OutOrStdout(), "You have not reviewed this game yet.")
			}
			return a.printResult(review, reviewTable(review))
		},
	}
}

func reviewsSubmitCmd(a *app) *cobra.Command {
	var text string
	var ratings []string

	cmd := &cobra.Command{
		Use:   "submit <game-id>",
		Short: "Create or replace my review of a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID, err := parseGameID(args[0])
			if err != nil {
				return err
			}

			in := model.ReviewCreate{}
			if cmd.Flags().Changed("text") {
				in.ReviewText = &text
			}
			for _, raw := range ratings {
				rating, err := parseRating(raw)
				if err != nil {
					return err
				}
				in.Ratings = append(in.Ratings, rating)
			}

			review, err := a.reviews.SubmitMine(cmd.Context(), gameID, in)
			if err != nil {
				return err
			}
			return a.printResult(review, reviewTable(review))
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Review text")
	cmd.Flags().StringArrayVar(&ratings, "rating", nil,
		"Score for one criterion as <criterion-id>=<1..5> (repeatable)")
	return cmd
}

func reviewsDeleteCmd(a *app) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "delete <game-id>",
		Short: "Delete my review, or another user's with --user (privileged)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID, err := parseGameID(args[0])
			if err != nil {
				return err
			}

			if userID != "" {
				id, err := uuid.Parse(userID)
				if err != nil {
					return fmt.Errorf("invalid user id %q", userID)
				}
				return a.reviews.DeleteUserReview(cmd.Context(), gameID, id)
			}
			return a.reviews.DeleteMine(cmd.Context(), gameID)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "Delete this user's review instead of mine")
	return cmd
}

func parseRating(raw string) (model.ReviewRatingCreate, error) {
	parts := strings.SplitN(raw, "=", 2)
	if len(parts) != 2 {
		return model.ReviewRatingCreate{}, fmt.Errorf("invalid rating %q, expected <criterion-id>=<score>", raw)
	}
	criterionID, err := strconv.Atoi(parts[0])
	if err != nil {
		return model.ReviewRatingCreate{}, fmt.Errorf("invalid criterion id in %q", raw)
	}
	score, err := strconv.Atoi(parts[1])
	if err != nil || score < 1 || score > 5 {
		return model.ReviewRatingCreate{}, fmt.Errorf("invalid score in %q, expected 1..5", raw)
	}
	return model.ReviewRatingCreate{CriterionID: criterionID, Score: score}, nil
}
