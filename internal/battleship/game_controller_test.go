package battleship

import (
	"testing"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func carrierLayout() entity.Board {
	board := entity.NewEmptyBoard()
	board.Ships = []entity.Ship{{Name: "carrier", Length: 5, Position: entity.Coordinates{X: 0, Y: 0}, Orientation: entity.OrientationHorizontal}}
	for x := 0; x < 5; x++ {
		board.Cells[0][x] = entity.CellShip
	}
	return board
}

func newActiveGame(t *testing.T) *entity.Game {
	t.Helper()

	game := entity.NewGame("123", "u1", carrierLayout())
	require.NoError(t, Join(game, "u2", carrierLayout()))

	return game
}

func TestJoin(t *testing.T) {
	t.Run("Join activates the game and keeps the creator's turn", func(t *testing.T) {
		// Given: an open game created by u1
		game := entity.NewGame("123", "u1", carrierLayout())

		// When: u2 joins with their layout
		err := Join(game, "u2", carrierLayout())

		// Then: the game is active, u2 seated, turn unchanged
		require.NoError(t, err)
		assert.Equal(t, entity.StatusActive, game.Status)
		assert.Equal(t, "u2", game.Player2ID)
		assert.Equal(t, "u1", game.Turn)
		require.NotNil(t, game.StartedAt)
	})

	t.Run("Error on joining your own game", func(t *testing.T) {
		// Given: an open game created by u1
		game := entity.NewGame("123", "u1", carrierLayout())

		// When: u1 tries to join it
		err := Join(game, "u1", carrierLayout())

		// Then: an ErrSelfJoin error must be returned
		require.ErrorIs(t, err, apperror.ErrSelfJoin)
		assert.Equal(t, entity.StatusOpen, game.Status)
	})

	t.Run("Error on joining a full game regardless of who attempts it", func(t *testing.T) {
		// Given: a game u2 already joined
		game := newActiveGame(t)

		// When: u3 tries to join
		err := Join(game, "u3", carrierLayout())

		// Then: an ErrGameFull error must be returned
		require.ErrorIs(t, err, apperror.ErrGameFull)

		// When: u2 tries to join again
		err = Join(game, "u2", carrierLayout())

		// Then: the join is rejected the same way
		require.ErrorIs(t, err, apperror.ErrGameFull)
	})

	t.Run("Error on joining a game that is not open", func(t *testing.T) {
		// Given: a completed game with no second player
		game := entity.NewGame("123", "u1", carrierLayout())
		game.Status = entity.StatusCompleted

		// When: u2 tries to join
		err := Join(game, "u2", carrierLayout())

		// Then: an ErrGameNotOpen error must be returned
		require.ErrorIs(t, err, apperror.ErrGameNotOpen)
	})

	t.Run("Error on a layout that does not fit the grid", func(t *testing.T) {
		// Given: an open game and a joiner layout running off the board
		game := entity.NewGame("123", "u1", carrierLayout())
		layout := entity.NewEmptyBoard()
		layout.Ships = []entity.Ship{{Name: "carrier", Length: 5, Position: entity.Coordinates{X: 8, Y: 0}, Orientation: entity.OrientationHorizontal}}

		// When: u2 joins with it
		err := Join(game, "u2", layout)

		// Then: an ErrInvalidLayout error must be returned and the seat stays empty
		require.ErrorIs(t, err, entity.ErrInvalidLayout)
		assert.Empty(t, game.Player2ID)
		assert.Equal(t, entity.StatusOpen, game.Status)
	})
}

func TestAttack(t *testing.T) {
	t.Run("Miss flips the turn to the opponent", func(t *testing.T) {
		// Given: an active two-player game with u1 to act
		game := newActiveGame(t)

		// When: u1 attacks an empty cell on u2's board
		result, err := Attack(game, "u1", "u2", entity.Coordinates{X: 3, Y: 3})

		// Then: the shot misses, the cell records it, and the turn flips
		require.NoError(t, err)
		assert.False(t, result.Hit)
		assert.False(t, result.AllSunk)
		assert.Equal(t, entity.CellMiss, game.Board2.Cells[3][3])
		assert.Equal(t, "u2", game.Turn)
	})

	t.Run("Hit outcome is derived from geometry, not claimed by the caller", func(t *testing.T) {
		// Given: an active game where u2 has the turn after a miss
		game := newActiveGame(t)
		_, err := Attack(game, "u1", "u2", entity.Coordinates{X: 3, Y: 3})
		require.NoError(t, err)

		// When: u2 attacks the head of u1's carrier
		result, err := Attack(game, "u2", "u1", entity.Coordinates{X: 0, Y: 0})

		// Then: the shot hits, the ship is not sunk, and the turn flips back
		require.NoError(t, err)
		assert.True(t, result.Hit)
		assert.Empty(t, result.SunkShip)
		assert.False(t, result.AllSunk)
		assert.Equal(t, entity.CellHit, game.Board1.Cells[0][0])
		assert.False(t, game.Board1.Ships[0].Sunk)
		assert.Equal(t, "u1", game.Turn)
	})

	t.Run("Turn alternates strictly between participants", func(t *testing.T) {
		// Given: an active two-player game
		game := newActiveGame(t)

		// When: the players trade non-terminal shots
		shots := []struct {
			attacker, target string
			coords           entity.Coordinates
		}{
			{"u1", "u2", entity.Coordinates{X: 9, Y: 9}},
			{"u2", "u1", entity.Coordinates{X: 9, Y: 9}},
			{"u1", "u2", entity.Coordinates{X: 8, Y: 9}},
			{"u2", "u1", entity.Coordinates{X: 8, Y: 9}},
		}

		for _, shot := range shots {
			// Then: each shot is accepted and hands the turn to the opponent
			_, err := Attack(game, shot.attacker, shot.target, shot.coords)
			require.NoError(t, err)
			assert.Equal(t, game.Opponent(shot.attacker), game.Turn)
		}
	})

	t.Run("Sinking the last ship completes the game", func(t *testing.T) {
		// Given: an active game; u1 misses so u2 can shoot the carrier down
		game := newActiveGame(t)

		carrierCells := game.Board1.Ships[0].Cells()
		for i, cell := range carrierCells {
			_, err := Attack(game, "u1", "u2", entity.Coordinates{X: 9 - i, Y: 9})
			require.NoError(t, err)

			result, err := Attack(game, "u2", "u1", cell)
			require.NoError(t, err)

			if i < len(carrierCells)-1 {
				assert.False(t, result.AllSunk)
				continue
			}

			// Then: the final hit sinks the carrier and decides the game
			assert.True(t, result.Hit)
			assert.Equal(t, "carrier", result.SunkShip)
			assert.True(t, result.AllSunk)
		}

		assert.Equal(t, entity.StatusCompleted, game.Status)
		assert.Equal(t, "u2", game.WinnerID)
		assert.Empty(t, game.Turn)
		require.NotNil(t, game.EndedAt)

		// Then: no further attack is accepted
		_, err := Attack(game, "u1", "u2", entity.Coordinates{X: 5, Y: 5})
		require.ErrorIs(t, err, apperror.ErrGameNotActive)
	})

	t.Run("Error on attacking before the game starts", func(t *testing.T) {
		// Given: an open game
		game := entity.NewGame("123", "u1", carrierLayout())

		// When: u1 attacks
		_, err := Attack(game, "u1", "u1", entity.Coordinates{X: 0, Y: 0})

		// Then: an ErrGameNotActive error must be returned
		require.ErrorIs(t, err, apperror.ErrGameNotActive)
	})

	t.Run("Error on attacking as an outsider", func(t *testing.T) {
		// Given: an active two-player game
		game := newActiveGame(t)

		// When: u3 attacks
		_, err := Attack(game, "u3", "u2", entity.Coordinates{X: 0, Y: 0})

		// Then: an ErrNotParticipant error must be returned
		require.ErrorIs(t, err, apperror.ErrNotParticipant)
	})

	t.Run("Error on attacking out of turn", func(t *testing.T) {
		// Given: an active game with u1 to act
		game := newActiveGame(t)

		// When: u2 attacks first
		_, err := Attack(game, "u2", "u1", entity.Coordinates{X: 0, Y: 0})

		// Then: an ErrNotYourTurn error must be returned and the board is unchanged
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, entity.CellShip, game.Board1.Cells[0][0])
	})

	t.Run("Error on an invalid target", func(t *testing.T) {
		// Given: an active game with u1 to act
		game := newActiveGame(t)

		// When: u1 targets a player who is not in the game
		_, err := Attack(game, "u1", "u3", entity.Coordinates{X: 0, Y: 0})

		// Then: an ErrInvalidTarget error must be returned
		require.ErrorIs(t, err, apperror.ErrInvalidTarget)
	})

	t.Run("Error on out-of-range coordinates leaves the game untouched", func(t *testing.T) {
		// Given: an active game with u1 to act
		game := newActiveGame(t)

		// When: u1 attacks (10,0)
		_, err := Attack(game, "u1", "u2", entity.Coordinates{X: 10, Y: 0})

		// Then: an ErrOutOfRange error must be returned and the turn stays with u1
		require.ErrorIs(t, err, apperror.ErrOutOfRange)
		assert.Equal(t, "u1", game.Turn)
	})

	t.Run("Error on re-attacking an attacked cell regardless of caller turn order", func(t *testing.T) {
		// Given: an active game where (3,3) on u2's board was missed
		game := newActiveGame(t)
		_, err := Attack(game, "u1", "u2", entity.Coordinates{X: 3, Y: 3})
		require.NoError(t, err)
		_, err = Attack(game, "u2", "u1", entity.Coordinates{X: 3, Y: 3})
		require.NoError(t, err)

		// When: u1 attacks the same cell again
		_, err = Attack(game, "u1", "u2", entity.Coordinates{X: 3, Y: 3})

		// Then: an ErrAlreadyAttacked error must be returned and the turn stays with u1
		require.ErrorIs(t, err, apperror.ErrAlreadyAttacked)
		assert.Equal(t, "u1", game.Turn)
	})
}

func TestSurrender(t *testing.T) {
	t.Run("Surrender hands the win to the opponent", func(t *testing.T) {
		// Given: an active two-player game
		game := newActiveGame(t)

		// When: u1 surrenders
		err := Surrender(game, "u1")

		// Then: u2 wins and the game is completed
		require.NoError(t, err)
		assert.Equal(t, entity.StatusCompleted, game.Status)
		assert.Equal(t, "u2", game.WinnerID)
		assert.Empty(t, game.Turn)
	})

	t.Run("Error on surrendering as an outsider leaves the game unchanged", func(t *testing.T) {
		// Given: an active two-player game
		game := newActiveGame(t)

		// When: u3 surrenders
		err := Surrender(game, "u3")

		// Then: an ErrNotParticipant error must be returned and the game stays active
		require.ErrorIs(t, err, apperror.ErrNotParticipant)
		assert.Equal(t, entity.StatusActive, game.Status)
		assert.Empty(t, game.WinnerID)
	})

	t.Run("Error on surrendering a decided game", func(t *testing.T) {
		// Given: a game u1 already surrendered
		game := newActiveGame(t)
		require.NoError(t, Surrender(game, "u1"))

		// When: u2 surrenders afterwards
		err := Surrender(game, "u2")

		// Then: an ErrGameNotActive error must be returned
		require.ErrorIs(t, err, apperror.ErrGameNotActive)
	})

	t.Run("Error on surrendering without an opponent", func(t *testing.T) {
		// Given: a game forced active with only one player seated
		game := entity.NewGame("123", "u1", carrierLayout())
		game.Status = entity.StatusActive

		// When: u1 surrenders
		err := Surrender(game, "u1")

		// Then: an ErrNoOpponent error must be returned
		require.ErrorIs(t, err, apperror.ErrNoOpponent)
	})
}
