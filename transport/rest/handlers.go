package rest

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/battleship-backend/internal/battleship"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/internal/usecase"
)

// shipsLayout is the client's placement payload: the ship list plus the full
// 10x10 grid of cell statuses.
type shipsLayout struct {
	Ships      []entity.Ship `json:"ships"`
	BoardCells [][]string    `json:"boardCells"`
}

func (that *shipsLayout) toBoard() (entity.Board, error) {
	board := entity.NewEmptyBoard()
	board.Ships = that.Ships

	if len(that.BoardCells) != entity.BoardSize {
		return board, fmt.Errorf("%w: expected %d rows, got %d", entity.ErrInvalidLayout, entity.BoardSize, len(that.BoardCells))
	}

	for y, row := range that.BoardCells {
		if len(row) != entity.BoardSize {
			return board, fmt.Errorf("%w: row %d has %d cells", entity.ErrInvalidLayout, y, len(row))
		}

		for x, cell := range row {
			switch cell {
			case "", entity.CellEmpty:
				board.Cells[y][x] = entity.CellEmpty
			case entity.CellShip, entity.CellHit, entity.CellMiss:
				board.Cells[y][x] = cell
			default:
				return board, fmt.Errorf("%w: unknown cell status %q", entity.ErrInvalidLayout, cell)
			}
		}
	}

	return board, nil
}

type createGameRequest struct {
	Ships1Layout *shipsLayout `json:"ships1Layout"`
}

type joinGameRequest struct {
	Ships2Layout *shipsLayout `json:"ships2Layout"`
}

type attackRequest struct {
	TargetPlayerID string             `json:"targetPlayerId"`
	Coordinates    entity.Coordinates `json:"coordinates"`

	// Advisory fields from older clients. The outcome is derived from the
	// stored ship geometry, so these are ignored.
	Hit          *bool  `json:"hit,omitempty"`
	SunkShipName string `json:"sunkShipName,omitempty"`
	AllShipsSunk *bool  `json:"allPlayerShipsSunk,omitempty"`
}

// gameResponse is a game view with the resolved shot attached on attacks.
type gameResponse struct {
	*usecase.GameView

	LastShot *battleship.AttackResult `json:"last_shot,omitempty"`
}

func (that *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleCreateGame")

	caller := userFrom(r.Context())

	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Ships1Layout == nil {
		writeMessage(w, http.StatusBadRequest, "Valid ship layout and board cell status required")
		return
	}

	board, err := req.Ships1Layout.toBoard()
	if err != nil {
		writeError(w, err)
		return
	}

	view, err := that.games.CreateGame(r.Context(), caller.ID, board)
	if err != nil {
		log.Error("failed to create game", "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, gameResponse{GameView: view})
}

func (that *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleListGames")

	callerID := ""
	if caller := userFrom(r.Context()); caller != nil {
		callerID = caller.ID
	}

	listType := r.URL.Query().Get("type")
	statusFilter := r.URL.Query().Get("status_filter")

	views, err := that.games.ListGames(r.Context(), callerID, listType, statusFilter)
	if err != nil {
		log.Error("failed to list games", "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, views)
}

func (that *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	view, err := that.games.GetGame(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, gameResponse{GameView: view})
}

func (that *Server) handleJoinGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleJoinGame")

	caller := userFrom(r.Context())
	gameID := chi.URLParam(r, "gameID")

	var req joinGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Ships2Layout == nil {
		writeMessage(w, http.StatusBadRequest, "Valid ship layout and board cell status required")
		return
	}

	board, err := req.Ships2Layout.toBoard()
	if err != nil {
		writeError(w, err)
		return
	}

	view, err := that.games.JoinGame(r.Context(), gameID, caller.ID, board)
	if err != nil {
		log.Error("failed to join game", "gameID", gameID, "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, gameResponse{GameView: view})
}

func (that *Server) handleAttack(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleAttack")

	caller := userFrom(r.Context())
	gameID := chi.URLParam(r, "gameID")

	var req attackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Attack request data incomplete")
		return
	}

	if req.TargetPlayerID == "" {
		writeMessage(w, http.StatusBadRequest, "Attack request data incomplete")
		return
	}

	view, result, err := that.games.Attack(r.Context(), gameID, caller.ID, req.TargetPlayerID, req.Coordinates)
	if err != nil {
		log.Error("failed to process attack", "gameID", gameID, "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, gameResponse{GameView: view, LastShot: &result})
}

func (that *Server) handleSurrender(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleSurrender")

	caller := userFrom(r.Context())
	gameID := chi.URLParam(r, "gameID")

	view, err := that.games.Surrender(r.Context(), gameID, caller.ID)
	if err != nil {
		log.Error("failed to process surrender", "gameID", gameID, "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, gameResponse{GameView: view})
}
