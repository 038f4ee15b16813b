package entity

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
)

const (
	StatusOpen      = "open"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Game is the aggregate root: two boards, the lifecycle status, and the turn
// owner. Board2 and Player2ID stay empty while the game is open.
type Game struct {
	ID        string `json:"id"`
	Player1ID string `json:"player1_id"`
	Player2ID string `json:"player2_id,omitempty"`
	VsAI      bool   `json:"vs_ai,omitempty"`

	Board1 Board `json:"board1"`
	Board2 Board `json:"board2"`

	Status   string `json:"status"`
	Turn     string `json:"turn,omitempty"`
	WinnerID string `json:"winner_id,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	StartedAt *time.Time `json:"started_at,omitempty"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
}

// NewGame - creates an open game with the creator's layout on board 1 and an
// empty board 2. The creator attacks first once an opponent joins.
func NewGame(id, creatorID string, layout Board) *Game {
	return &Game{
		ID:        id,
		Player1ID: creatorID,
		Board1:    layout,
		Board2:    NewEmptyBoard(),
		Status:    StatusOpen,
		Turn:      creatorID,
		CreatedAt: time.Now().UTC(),
	}
}

func (that *Game) IsOpen() bool {
	return that.Status == StatusOpen
}

func (that *Game) IsActive() bool {
	return that.Status == StatusActive
}

func (that *Game) IsCompleted() bool {
	return that.Status == StatusCompleted
}

func (that *Game) IsParticipant(playerID string) bool {
	return playerID != "" && (playerID == that.Player1ID || playerID == that.Player2ID)
}

// Opponent - the other participant's id, or empty if there is none.
func (that *Game) Opponent(playerID string) string {
	switch playerID {
	case that.Player1ID:
		return that.Player2ID
	case that.Player2ID:
		return that.Player1ID
	default:
		return ""
	}
}

// BoardOf - the board belonging to the given participant.
func (that *Game) BoardOf(playerID string) (*Board, error) {
	switch playerID {
	case that.Player1ID:
		return &that.Board1, nil
	case that.Player2ID:
		if that.Player2ID == "" {
			break
		}
		return &that.Board2, nil
	}

	return nil, fmt.Errorf("%w: %s", apperror.ErrInvalidTarget, playerID)
}

// ConfirmActiveState - rejects mutation attempts on games that are not
// running. The winner check is kept separate so a decided game reports it
// even if the status were ever inconsistent.
func (that *Game) ConfirmActiveState() error {
	if !that.IsActive() {
		return apperror.ErrGameNotActive
	}

	if that.WinnerID != "" {
		return apperror.ErrAlreadyDecided
	}

	return nil
}

// Complete - ends the game with the given winner. No mutation is valid after
// this point.
func (that *Game) Complete(winnerID string) {
	now := time.Now().UTC()

	that.Status = StatusCompleted
	that.WinnerID = winnerID
	that.Turn = ""
	that.EndedAt = &now
}
