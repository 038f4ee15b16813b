package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/battleship"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

// List types understood by ListGames, matching the lobby views of the client.
const (
	ListMyOpen        = "my_open"
	ListOpenForOthers = "open_for_others"
	ListMyActive      = "my_active"
	ListMyCompleted   = "my_completed"
	ListOtherGames    = "other_games"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	List(ctx context.Context) ([]*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type gameLocker interface {
	Acquire(ctx context.Context, key string) (token string, err error)
	Release(ctx context.Context, key, token string) error
}

// PlayerInfo carries the display name next to the id in responses.
type PlayerInfo struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
}

// GameView is the game aggregate enriched with resolved display names.
type GameView struct {
	*entity.Game

	Player1 *PlayerInfo `json:"player1,omitempty"`
	Player2 *PlayerInfo `json:"player2,omitempty"`
	Winner  *PlayerInfo `json:"winner,omitempty"`
}

type GameManager struct {
	logger *slog.Logger

	gameRepo gameRepo
	userRepo userRepo
	locker   gameLocker
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, userRepo userRepo, locker gameLocker) *GameManager {
	return &GameManager{
		logger: logger,

		gameRepo: gameRepo,
		userRepo: userRepo,
		locker:   locker,
	}
}

func (that *GameManager) CreateGame(ctx context.Context, creatorID string, layout entity.Board) (*GameView, error) {
	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("creator layout: %w", err)
	}

	game := entity.NewGame(uuid.NewString(), creatorID, layout)

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return that.enrich(ctx, game), nil
}

func (that *GameManager) GetGame(ctx context.Context, gameID string) (*GameView, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return that.enrich(ctx, game), nil
}

// ListGames - games newest first, narrowed to the caller's view. Anonymous
// callers only see games that are active or completed.
func (that *GameManager) ListGames(ctx context.Context, callerID, listType, statusFilter string) ([]*GameView, error) {
	games, err := that.gameRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	views := make([]*GameView, 0, len(games))
	for _, game := range games {
		if !matchesListFilter(game, callerID, listType, statusFilter) {
			continue
		}

		views = append(views, that.enrich(ctx, game))
	}

	return views, nil
}

func (that *GameManager) JoinGame(ctx context.Context, gameID, joinerID string, layout entity.Board) (*GameView, error) {
	var game *entity.Game

	err := that.withGameLock(ctx, gameID, func() error {
		var err error

		game, err = that.gameRepo.GetByID(ctx, gameID)
		if err != nil {
			return fmt.Errorf("failed to get game: %w", err)
		}

		if err = battleship.Join(game, joinerID, layout); err != nil {
			return err
		}

		if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
			return fmt.Errorf("failed to update game: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return that.enrich(ctx, game), nil
}

func (that *GameManager) Attack(ctx context.Context, gameID, attackerID, targetID string, coords entity.Coordinates) (*GameView, battleship.AttackResult, error) {
	var (
		game   *entity.Game
		result battleship.AttackResult
	)

	err := that.withGameLock(ctx, gameID, func() error {
		var err error

		game, err = that.gameRepo.GetByID(ctx, gameID)
		if err != nil {
			return fmt.Errorf("failed to get game: %w", err)
		}

		result, err = battleship.Attack(game, attackerID, targetID, coords)
		if err != nil {
			return err
		}

		if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
			return fmt.Errorf("failed to update game: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, battleship.AttackResult{}, err
	}

	return that.enrich(ctx, game), result, nil
}

func (that *GameManager) Surrender(ctx context.Context, gameID, playerID string) (*GameView, error) {
	var game *entity.Game

	err := that.withGameLock(ctx, gameID, func() error {
		var err error

		game, err = that.gameRepo.GetByID(ctx, gameID)
		if err != nil {
			return fmt.Errorf("failed to get game: %w", err)
		}

		if err = battleship.Surrender(game, playerID); err != nil {
			return err
		}

		if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
			return fmt.Errorf("failed to update game: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return that.enrich(ctx, game), nil
}

// withGameLock - serializes the read-modify-write cycle on one game id.
func (that *GameManager) withGameLock(ctx context.Context, gameID string, fn func() error) error {
	log := that.logger.With("method", "withGameLock", "gameID", gameID)

	key := "lock:game:" + gameID

	token, err := that.locker.Acquire(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to lock game: %w", err)
	}

	defer func() {
		if err := that.locker.Release(ctx, key, token); err != nil {
			log.Error("failed to release game lock", "error", err)
		}
	}()

	return fn()
}

// enrich - attaches display names to the player ids. Enrichment is
// best-effort: a missing user leaves the bare id in place.
func (that *GameManager) enrich(ctx context.Context, game *entity.Game) *GameView {
	view := &GameView{
		Game:    game,
		Player1: that.playerInfo(ctx, game.Player1ID),
		Player2: that.playerInfo(ctx, game.Player2ID),
		Winner:  that.playerInfo(ctx, game.WinnerID),
	}

	return view
}

func (that *GameManager) playerInfo(ctx context.Context, playerID string) *PlayerInfo {
	if playerID == "" {
		return nil
	}

	info := &PlayerInfo{ID: playerID}

	user, err := that.userRepo.FindByID(ctx, playerID)
	if err != nil {
		if !errors.Is(err, apperror.ErrUserNotFound) {
			that.logger.Error("failed to resolve player name", "playerID", playerID, "error", err)
		}
		return info
	}

	info.Username = user.Username

	return info
}

// matchesListFilter - mirrors the lobby query matrix: authenticated callers
// pick a list type, anonymous callers may only narrow by status.
func matchesListFilter(game *entity.Game, callerID, listType, statusFilter string) bool {
	if callerID == "" {
		if statusFilter == entity.StatusActive || statusFilter == entity.StatusCompleted {
			return game.Status == statusFilter
		}

		return game.IsActive() || game.IsCompleted()
	}

	switch listType {
	case ListMyOpen:
		return game.IsOpen() && game.Player1ID == callerID && game.Player2ID == ""
	case ListOpenForOthers:
		return game.IsOpen() && game.Player1ID != callerID && game.Player2ID == ""
	case ListMyActive:
		return game.IsActive() && game.IsParticipant(callerID)
	case ListMyCompleted:
		return game.IsCompleted() && game.IsParticipant(callerID)
	case ListOtherGames:
		if game.IsParticipant(callerID) {
			return false
		}
		return game.IsCompleted() || (game.IsActive() && game.Player2ID != "")
	case "":
		return game.IsParticipant(callerID) || game.IsActive() || game.IsCompleted()
	default:
		return game.IsParticipant(callerID)
	}
}
