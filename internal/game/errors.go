// internal/game/errors.go
package game

import "errors"

// Validation errors reported back to the originating connection. None of
// these mutate room or game state, and none reach the opponent.
var (
	ErrInvalidPlayerData      = errors.New("invalid player data")
	ErrRoomNotFound           = errors.New("room not found")
	ErrRoomFull               = errors.New("room is full")
	ErrInvalidDeck            = errors.New("invalid deck")
	ErrPlayerNotFound         = errors.New("player not found in room")
	ErrNotYourTurn            = errors.New("not your turn")
	ErrInvalidCard            = errors.New("invalid card index")
	ErrSpecialMoveAlreadyUsed = errors.New("special move already used")
	ErrGameNotStarted         = errors.New("game not started")
	ErrGameAlreadyStarted     = errors.New("game already started")
	ErrAlreadyInRoom          = errors.New("already in a room")
	ErrOpponentMissing        = errors.New("opponent missing")
)
