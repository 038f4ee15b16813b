package apperror

import "errors"

var (
	ErrGameNotFound    = errors.New("game not found")
	ErrGameNotOpen     = errors.New("game is not open to join")
	ErrGameNotActive   = errors.New("game is not active")
	ErrGameFull        = errors.New("game is full or already started")
	ErrAlreadyDecided  = errors.New("game already has a winner")
	ErrSelfJoin        = errors.New("cannot join your own game")
	ErrNotParticipant  = errors.New("not a player in this game")
	ErrNotYourTurn     = errors.New("it's not your turn")
	ErrInvalidTarget   = errors.New("invalid target player")
	ErrOutOfRange      = errors.New("attack coordinates are out of range")
	ErrAlreadyAttacked = errors.New("cell has already been attacked")
	ErrNoOpponent      = errors.New("opponent does not exist")

	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
