package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/battleship-backend/internal/battleship"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/internal/usecase"
)

const (
	readTimeout     = 10 * time.Second
	writeTimeout    = 10 * time.Second
	idleTimeout     = 30 * time.Second
	shutdownTimeout = 5 * time.Second
)

type gameUseCase interface {
	CreateGame(ctx context.Context, creatorID string, layout entity.Board) (*usecase.GameView, error)
	GetGame(ctx context.Context, gameID string) (*usecase.GameView, error)
	ListGames(ctx context.Context, callerID, listType, statusFilter string) ([]*usecase.GameView, error)
	JoinGame(ctx context.Context, gameID, joinerID string, layout entity.Board) (*usecase.GameView, error)
	Attack(ctx context.Context, gameID, attackerID, targetID string, coords entity.Coordinates) (*usecase.GameView, battleship.AttackResult, error)
	Surrender(ctx context.Context, gameID, playerID string) (*usecase.GameView, error)
}

type userUseCase interface {
	Register(ctx context.Context, username, password string) (*entity.User, error)
	Login(ctx context.Context, username, password string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

type Server struct {
	logger *slog.Logger

	games gameUseCase
	users userUseCase
}

func New(logger *slog.Logger, games gameUseCase, users userUseCase) *Server {
	return &Server{
		logger: logger,
		games:  games,
		users:  users,
	}
}

// Start - serves the API until the context is canceled, then shuts down
// gracefully.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Router(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return nil
}

// Router - builds the route table. Exposed for handler tests.
func (that *Server) Router() chi.Router {
	router := chi.NewRouter()

	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.Recoverer)

	router.Get("/ping", that.handlePing)

	router.Route("/api/users", func(r chi.Router) {
		r.Post("/register", that.handleRegister)
		r.Post("/login", that.handleLogin)
		r.With(that.requireAuth).Post("/logout", that.handleLogout)
		r.With(that.requireAuth).Get("/me", that.handleMe)
	})

	router.Route("/api/games", func(r chi.Router) {
		r.With(that.requireAuth).Post("/", that.handleCreateGame)
		r.With(that.optionalAuth).Get("/", that.handleListGames)
		r.Get("/{gameID}", that.handleGetGame)
		r.With(that.requireAuth).Put("/{gameID}/join", that.handleJoinGame)
		r.With(that.requireAuth).Post("/{gameID}/attack", that.handleAttack)
		r.With(that.requireAuth).Put("/{gameID}/surrender", that.handleSurrender)
	})

	return router
}

func (that *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}
