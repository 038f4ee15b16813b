package rest

import (
	"encoding/json"
	"net/http"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// authResponse returns the user id as the opaque token the client passes
// back in the x-auth-token header.
type authResponse struct {
	Msg   string       `json:"msg"`
	Token string       `json:"token"`
	User  *userPayload `json:"user"`
}

type userPayload struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func (that *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleRegister")

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Please provide username and password")
		return
	}

	user, err := that.users.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		log.Error("failed to register user", "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{
		Msg:   "User registered successfully",
		Token: user.ID,
		User:  &userPayload{ID: user.ID, Username: user.Username},
	})
}

func (that *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleLogin")

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Please provide username and password")
		return
	}

	user, err := that.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		log.Error("failed to log in user", "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		Msg:   "Login successful",
		Token: user.ID,
		User:  &userPayload{ID: user.ID, Username: user.Username},
	})
}

// handleLogout - informational only, the token lives on the client.
func (that *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "Logout successful. Please clear the token on the client.")
}

func (that *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userFrom(r.Context()))
}
