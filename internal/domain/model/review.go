package model

import "time"

// ReviewCriterion is a rating dimension (e.g. gameplay, accessibility)
// defined by platform administrators.
type ReviewCriterion struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// ReviewRating is a single 1..5 score against one criterion.
type ReviewRating struct {
	Score     int             `json:"score"`
	Criterion ReviewCriterion `json:"criterion"`
}

// ReviewRatingCreate is the write-side form of a rating.
type ReviewRatingCreate struct {
	CriterionID int `json:"criterion_id"`
	Score       int `json:"score"`
}

// Review is a user's review of a game.
type Review struct {
	ID         int            `json:"id"`
	ReviewText *string        `json:"review_text"`
	Author     User           `json:"author"`
	Ratings    []ReviewRating `json:"ratings"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// ReviewCreate is the submit-my-review request body.
type ReviewCreate struct {
	ReviewText *string              `json:"review_text,omitempty"`
	Ratings    []ReviewRatingCreate `json:"ratings,omitempty"`
}
