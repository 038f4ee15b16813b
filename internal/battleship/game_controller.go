package battleship

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

// AttackResult is the server-derived outcome of one attack. The client's own
// claims about the shot are never consulted.
type AttackResult struct {
	Hit      bool   `json:"hit"`
	SunkShip string `json:"sunk_ship,omitempty"`
	AllSunk  bool   `json:"all_sunk"`
}

// Join - adds the second player with their layout and starts the game. The
// turn stays with the creator; joining does not grant the first move.
func Join(gameInstance *entity.Game, joinerID string, layout entity.Board) error {
	if gameInstance.Player1ID == joinerID {
		return apperror.ErrSelfJoin
	}

	if gameInstance.Player2ID != "" {
		return apperror.ErrGameFull
	}

	if !gameInstance.IsOpen() {
		return apperror.ErrGameNotOpen
	}

	if err := layout.Validate(); err != nil {
		return fmt.Errorf("joiner layout: %w", err)
	}

	now := time.Now().UTC()

	gameInstance.Player2ID = joinerID
	gameInstance.Board2 = layout
	gameInstance.Status = entity.StatusActive
	gameInstance.StartedAt = &now

	return nil
}

// Attack - resolves one shot against the target's board and advances or ends
// the game.
func Attack(gameInstance *entity.Game, attackerID, targetID string, coords entity.Coordinates) (AttackResult, error) {
	if err := gameInstance.ConfirmActiveState(); err != nil {
		return AttackResult{}, err
	}

	if err := validateAttacker(gameInstance, attackerID); err != nil {
		return AttackResult{}, err
	}

	targetBoard, err := gameInstance.BoardOf(targetID)
	if err != nil {
		return AttackResult{}, err
	}

	hit, sunkShip, err := targetBoard.ApplyAttack(coords)
	if err != nil {
		return AttackResult{}, err
	}

	result := AttackResult{
		Hit:      hit,
		SunkShip: sunkShip,
		AllSunk:  targetBoard.AllSunk(),
	}

	if result.AllSunk {
		gameInstance.Complete(attackerID)
		return result, nil
	}

	gameInstance.Turn = gameInstance.Opponent(attackerID)

	return result, nil
}

// Surrender - ends the game in favor of the other participant.
func Surrender(gameInstance *entity.Game, playerID string) error {
	if err := gameInstance.ConfirmActiveState(); err != nil {
		return err
	}

	if !gameInstance.IsParticipant(playerID) {
		return apperror.ErrNotParticipant
	}

	winnerID := gameInstance.Opponent(playerID)
	if winnerID == "" {
		return apperror.ErrNoOpponent
	}

	gameInstance.Complete(winnerID)

	return nil
}

// validateAttacker - checks participation and turn ownership.
func validateAttacker(gameInstance *entity.Game, attackerID string) error {
	if !gameInstance.IsParticipant(attackerID) {
		return apperror.ErrNotParticipant
	}

	if gameInstance.Turn != attackerID {
		return apperror.ErrNotYourTurn
	}

	return nil
}
