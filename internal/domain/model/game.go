package model

import (
	"time"

	"github.com/google/uuid"
)

// GameStatus tracks a game through the proposal workflow.
type GameStatus string

const (
	GameStatusDraft     GameStatus = "draft"
	GameStatusSubmitted GameStatus = "submitted"
	GameStatusApproved  GameStatus = "approved"
	GameStatusRejected  GameStatus = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s GameStatus) Valid() bool {
	switch s {
	case GameStatusDraft, GameStatusSubmitted, GameStatusApproved, GameStatusRejected:
		return true
	default:
		return false
	}
}

// Tag is a catalogue tag attachable to games.
type Tag struct {
	ID   int     `json:"id"`
	Name string  `json:"name"`
	Icon *string `json:"icon"`
}

// GameImage is one screenshot slot of a game. Position is the ordering key.
type GameImage struct {
	Position int    `json:"position"`
	Image    string `json:"image"`
}

// Game is the public view of a catalogue entry.
type Game struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	URL           string     `json:"url"`
	Status        GameStatus `json:"status"`
	ProposingUser *uuid.UUID `json:"proposing_user"`
	Tags          []Tag      `json:"tags"`
	Images        []GameImage `json:"images"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// GameWithReviews is a game detail view with its reviews included.
type GameWithReviews struct {
	Game
	Reviews []Review `json:"reviews"`
}

// GameCreate is a game proposal request. New games always start as drafts.
type GameCreate struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Tags        []int  `json:"tags,omitempty"`
}

// GameUpdate is a partial game update. Nil fields are left untouched.
type GameUpdate struct {
	Name        *string     `json:"name,omitempty"`
	Description *string     `json:"description,omitempty"`
	URL         *string     `json:"url,omitempty"`
	Tags        []int       `json:"tags,omitempty"`
	Status      *GameStatus `json:"status,omitempty"`
}
