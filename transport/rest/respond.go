package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"msg": msg})
}

// writeError - maps the error taxonomy onto HTTP statuses. Unknown errors
// surface as a generic 500 without leaking internals.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case isNotFound(err):
		writeMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apperror.ErrNotParticipant):
		writeMessage(w, http.StatusForbidden, err.Error())
	case isBadRequest(err):
		writeMessage(w, http.StatusBadRequest, err.Error())
	default:
		writeMessage(w, http.StatusInternalServerError, "Server error")
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, apperror.ErrGameNotFound) || errors.Is(err, apperror.ErrUserNotFound)
}

func isBadRequest(err error) bool {
	badRequestErrs := []error{
		apperror.ErrGameNotOpen,
		apperror.ErrGameNotActive,
		apperror.ErrGameFull,
		apperror.ErrAlreadyDecided,
		apperror.ErrSelfJoin,
		apperror.ErrNotYourTurn,
		apperror.ErrInvalidTarget,
		apperror.ErrOutOfRange,
		apperror.ErrAlreadyAttacked,
		apperror.ErrNoOpponent,
		apperror.ErrUserExists,
		apperror.ErrInvalidCredentials,
		entity.ErrInvalidLayout,
		usecase.ErrUsernameRequired,
		usecase.ErrPasswordTooShort,
	}

	for _, target := range badRequestErrs {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
