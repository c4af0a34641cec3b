// internal/models/intent.go
package models

import "fmt"

// IntentType tags a single deserialized client message.
type IntentType string

const (
	IntentCreateRoom     IntentType = "create_room"
	IntentJoinRoom       IntentType = "join_room"
	IntentPlayerReady    IntentType = "player_ready"
	IntentPlayCard       IntentType = "play_card"
	IntentUseSpecialMove IntentType = "use_special_move"
	IntentRequestRestart IntentType = "request_restart"
	IntentLeaveRoom      IntentType = "leave_room"
	IntentPing           IntentType = "ping"
)

// PlayerData is the profile payload a client submits when creating or joining
// a room. It is validated here, at the intent boundary, before any room state
// is touched; both the creator and joiner paths go through the same check.
type PlayerData struct {
	Name        string      `json:"name"`
	Avatar      string      `json:"avatar"`
	Deck        []Card      `json:"deck"`
	SpecialMove SpecialMove `json:"specialMove"`
}

// Validate reports the first missing required field, or nil if the payload is
// fully shaped.
func (pd *PlayerData) Validate() error {
	if pd == nil {
		return fmt.Errorf("missing player payload")
	}
	if pd.Name == "" {
		return fmt.Errorf("missing player name")
	}
	if pd.Avatar == "" {
		return fmt.Errorf("missing player avatar")
	}
	if len(pd.Deck) == 0 {
		return fmt.Errorf("missing player deck")
	}
	if pd.SpecialMove.Name == "" || pd.SpecialMove.Description == "" {
		return fmt.Errorf("missing special move name or description")
	}
	return nil
}

// Intent is one inbound client message. Fields beyond Type are populated per
// intent kind; pointers distinguish absent fields from zero values.
type Intent struct {
	Type        IntentType   `json:"type"`
	RoomCode    string       `json:"roomCode,omitempty"`
	Player      *PlayerData  `json:"player,omitempty"`
	Deck        []Card       `json:"deck,omitempty"`
	SpecialMove *SpecialMove `json:"specialMove,omitempty"`
	CardIndex   *int         `json:"cardIndex,omitempty"`
}
