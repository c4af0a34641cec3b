// internal/game/orchestrator.go
package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/duelyard/duelyard/internal/cache"
	"github.com/duelyard/duelyard/internal/database"
	"github.com/duelyard/duelyard/internal/models"
)

// Orchestrator routes decoded intents from connections into rooms and pushes
// resulting events back out. It owns the connection-to-room mapping; rooms own
// their own state. Events for one room are pushed in order while the room
// lock is held, so every subscriber observes the same sequence.
//
// Lock ordering: a room lock may be held while taking o.mu (sender lookups),
// never the other way around.
type Orchestrator struct {
	Registry *Registry
	Logger   *logrus.Logger

	mu      sync.Mutex
	senders map[uuid.UUID]func(Event)
	roomOf  map[uuid.UUID]string
}

// NewOrchestrator builds an orchestrator over a fresh registry.
func NewOrchestrator(logger *logrus.Logger) *Orchestrator {
	return &Orchestrator{
		Registry: NewRegistry(),
		Logger:   logger,
		senders:  make(map[uuid.UUID]func(Event)),
		roomOf:   make(map[uuid.UUID]string),
	}
}

// Register attaches a connection's send function under its player id. The
// function must not block; the websocket layer backs it with a buffered
// channel.
func (o *Orchestrator) Register(playerID uuid.UUID, send func(Event)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.senders[playerID] = send
}

// Unregister drops the connection and tears down any room the player was in.
// A vanished connection and an explicit leave are the same event.
func (o *Orchestrator) Unregister(playerID uuid.UUID) {
	o.mu.Lock()
	delete(o.senders, playerID)
	o.mu.Unlock()
	o.teardown(playerID)
}

// Dispatch applies one decoded intent. Any returned error has already been
// reported to the originating connection; the opponent never sees it.
func (o *Orchestrator) Dispatch(playerID uuid.UUID, intent models.Intent) {
	var err error
	switch intent.Type {
	case models.IntentCreateRoom:
		err = o.handleCreateRoom(playerID, intent)
	case models.IntentJoinRoom:
		err = o.handleJoinRoom(playerID, intent)
	case models.IntentPlayerReady:
		err = o.handlePlayerReady(playerID, intent)
	case models.IntentPlayCard:
		err = o.handlePlayCard(playerID, intent)
	case models.IntentUseSpecialMove:
		err = o.handleUseSpecialMove(playerID, intent)
	case models.IntentRequestRestart:
		err = o.handleRequestRestart(playerID, intent)
	case models.IntentLeaveRoom:
		o.teardown(playerID)
	case models.IntentPing:
		o.send(playerID, Event{Type: EventPong})
	default:
		err = fmt.Errorf("unknown intent type %q", intent.Type)
	}
	if err != nil {
		o.Logger.Warnf("intent %s from %s rejected: %v", intent.Type, playerID, err)
		o.send(playerID, Event{Type: EventError, Message: err.Error()})
	}
}

// send delivers one event to a single connection, if it is still registered.
func (o *Orchestrator) send(playerID uuid.UUID, ev Event) {
	o.mu.Lock()
	fn := o.senders[playerID]
	o.mu.Unlock()
	if fn != nil {
		fn(ev)
	}
}

// broadcast pushes one event to every member of the room. The caller holds
// the room lock, which is what serializes the per-room event order.
func (o *Orchestrator) broadcast(room *Room, ev Event) {
	for _, p := range room.Players {
		o.send(p.ID, ev)
	}
}

// seated reports whether the player is already mapped to a room. One room per
// connection: teardown is keyed on roomOf, so a second membership would leave
// the first room undissolved on disconnect.
func (o *Orchestrator) seated(playerID uuid.UUID) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, ok := o.roomOf[playerID]
	return ok
}

func (o *Orchestrator) handleCreateRoom(playerID uuid.UUID, intent models.Intent) error {
	if o.seated(playerID) {
		return ErrAlreadyInRoom
	}
	room := o.Registry.CreateRoom()

	room.Mu.Lock()
	_, err := room.AddPlayer(playerID, intent.Player, true)
	if err != nil {
		room.Mu.Unlock()
		o.Registry.Delete(room.Code)
		return err
	}
	views := room.Views()
	room.Mu.Unlock()

	o.mu.Lock()
	o.roomOf[playerID] = room.Code
	o.mu.Unlock()

	o.Logger.Infof("room %s created by %s", room.Code, playerID)
	o.send(playerID, Event{
		Type:     EventRoomCreated,
		RoomCode: room.Code,
		IsHost:   true,
		Players:  views,
	})
	return nil
}

func (o *Orchestrator) handleJoinRoom(playerID uuid.UUID, intent models.Intent) error {
	if o.seated(playerID) {
		return ErrAlreadyInRoom
	}
	room, err := o.Registry.Lookup(intent.RoomCode)
	if err != nil {
		return err
	}

	room.Mu.Lock()
	defer room.Mu.Unlock()
	if room.Closed() {
		return ErrRoomNotFound
	}
	if _, err := room.AddPlayer(playerID, intent.Player, false); err != nil {
		return err
	}

	o.mu.Lock()
	o.roomOf[playerID] = room.Code
	o.mu.Unlock()

	o.Logger.Infof("player %s joined room %s", playerID, room.Code)
	o.broadcast(room, Event{
		Type:     EventPlayerJoined,
		RoomCode: room.Code,
		PlayerID: &playerID,
		Players:  room.Views(),
	})
	return nil
}

func (o *Orchestrator) handlePlayerReady(playerID uuid.UUID, intent models.Intent) error {
	room, err := o.Registry.Lookup(intent.RoomCode)
	if err != nil {
		return err
	}

	room.Mu.Lock()
	defer room.Mu.Unlock()
	started, err := room.SetReady(playerID, intent.Deck, intent.SpecialMove)
	if err != nil {
		return err
	}
	if !started {
		// Let the opponent see the ready flag flip.
		o.broadcast(room, Event{
			Type:     EventPlayerJoined,
			RoomCode: room.Code,
			PlayerID: &playerID,
			Players:  room.Views(),
		})
		return nil
	}

	gs := room.GameState
	o.Logger.Infof("room %s game %s started, first turn %s", room.Code, gs.ID, gs.CurrentTurn)
	o.broadcast(room, Event{
		Type:        EventGameStarted,
		RoomCode:    room.Code,
		Players:     gs.Views(),
		CurrentTurn: &gs.CurrentTurn,
	})
	return nil
}

func (o *Orchestrator) handlePlayCard(playerID uuid.UUID, intent models.Intent) error {
	if intent.CardIndex == nil {
		return ErrInvalidCard
	}
	room, err := o.Registry.Lookup(intent.RoomCode)
	if err != nil {
		return err
	}

	room.Mu.Lock()
	defer room.Mu.Unlock()
	gs := room.GameState
	if gs == nil || gs.GameOver {
		return ErrGameNotStarted
	}

	res, err := PlayCard(gs, playerID, *intent.CardIndex, room.Rand())
	if err != nil {
		return err
	}

	card := res.Card
	o.broadcast(room, Event{
		Type:            EventCardPlayed,
		RoomCode:        room.Code,
		PlayerID:        &playerID,
		CardIndex:       intent.CardIndex,
		Card:            &card,
		ReplacementCard: res.Replacement,
	})
	o.broadcast(room, Event{
		Type:        EventGameStateUpdated,
		RoomCode:    room.Code,
		Players:     gs.Views(),
		CurrentTurn: &gs.CurrentTurn,
	})
	o.recordAction(room.Code, gs.ID, playerID, "play_card", map[string]interface{}{
		"card":   card.Name,
		"damage": res.Damage,
	})

	if res.GameOver {
		o.finishGame(room, gs)
	}
	return nil
}

func (o *Orchestrator) handleUseSpecialMove(playerID uuid.UUID, intent models.Intent) error {
	room, err := o.Registry.Lookup(intent.RoomCode)
	if err != nil {
		return err
	}

	room.Mu.Lock()
	defer room.Mu.Unlock()
	gs := room.GameState
	if gs == nil || gs.GameOver {
		return ErrGameNotStarted
	}

	res, err := UseSpecialMove(gs, playerID)
	if err != nil {
		return err
	}
	if !res.Known {
		o.Logger.Warnf("room %s: player %s declared uncatalogued move %q", room.Code, playerID, res.MoveName)
	}

	o.broadcast(room, Event{
		Type:         EventSpecialMoveApplied,
		RoomCode:     room.Code,
		PlayerID:     &playerID,
		Message:      res.Message,
		Players:      gs.Views(),
		ExtraTurn:    res.ExtraTurn,
		DoubleDamage: res.DoubleDamage,
	})
	o.broadcast(room, Event{
		Type:        EventGameStateUpdated,
		RoomCode:    room.Code,
		Players:     gs.Views(),
		CurrentTurn: &gs.CurrentTurn,
	})
	o.recordAction(room.Code, gs.ID, playerID, "use_special_move", map[string]interface{}{
		"move":  res.MoveName,
		"known": res.Known,
	})

	if res.GameOver {
		o.finishGame(room, gs)
	}
	return nil
}

// finishGame broadcasts game_over and hands the result off for persistence.
// Assumes the room lock is held.
func (o *Orchestrator) finishGame(room *Room, gs *GameState) {
	room.Completed = true
	o.broadcast(room, Event{
		Type:     EventGameOver,
		RoomCode: room.Code,
		Winner:   gs.Winner,
		Draw:     gs.Winner == nil,
	})
	o.Logger.Infof("room %s game %s over, winner=%v", room.Code, gs.ID, gs.Winner)

	// Snapshot under the lock; the write runs async against the copies.
	players := make([]*models.Player, 0, len(gs.Players))
	for _, p := range gs.Players {
		cp := *p
		players = append(players, &cp)
	}
	winner := gs.Winner
	matchID := gs.ID
	code := room.Code
	startedAt := gs.StartedAt
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := database.RecordMatchResult(ctx, code, matchID, players, winner, startedAt); err != nil {
			o.Logger.Warnf("failed to record match %s result: %v", matchID, err)
		}
	}()
}

func (o *Orchestrator) handleRequestRestart(playerID uuid.UUID, intent models.Intent) error {
	room, err := o.Registry.Lookup(intent.RoomCode)
	if err != nil {
		return err
	}

	room.Mu.Lock()
	defer room.Mu.Unlock()
	restarted, err := room.RequestRestart(playerID)
	if err != nil {
		return err
	}
	if !restarted {
		// Only the opponent learns about a pending request.
		if opp := room.OpponentOf(playerID); opp != nil {
			o.send(opp.ID, Event{
				Type:     EventRestartRequested,
				RoomCode: room.Code,
				PlayerID: &playerID,
			})
		}
		return nil
	}

	room.Completed = false
	gs := room.GameState
	o.Logger.Infof("room %s restarted as game %s, first turn %s", room.Code, gs.ID, gs.CurrentTurn)
	o.broadcast(room, Event{
		Type:        EventGameStarted,
		RoomCode:    room.Code,
		Players:     gs.Views(),
		CurrentTurn: &gs.CurrentTurn,
	})
	return nil
}

// teardown dissolves the player's room, if any. The opponent is notified
// exactly once even if both connections drop at the same moment.
func (o *Orchestrator) teardown(playerID uuid.UUID) {
	o.mu.Lock()
	code, ok := o.roomOf[playerID]
	o.mu.Unlock()
	if !ok {
		return
	}

	room, err := o.Registry.Lookup(code)
	if err != nil {
		o.mu.Lock()
		delete(o.roomOf, playerID)
		o.mu.Unlock()
		return
	}

	room.Mu.Lock()
	first := room.Close()
	var memberIDs []uuid.UUID
	for _, p := range room.Players {
		memberIDs = append(memberIDs, p.ID)
	}
	if first {
		if opp := room.OpponentOf(playerID); opp != nil {
			o.send(opp.ID, Event{
				Type:     EventOpponentDisconnected,
				RoomCode: room.Code,
				PlayerID: &playerID,
			})
		}
	}
	room.Mu.Unlock()

	o.Registry.Delete(code)
	o.mu.Lock()
	for _, id := range memberIDs {
		delete(o.roomOf, id)
	}
	o.mu.Unlock()
	o.Logger.Infof("room %s dissolved after player %s left", code, playerID)
}

// SweepIdle evicts rooms abandoned before reaching game-over and notifies any
// members still connected.
func (o *Orchestrator) SweepIdle(maxAge time.Duration) {
	for _, room := range o.Registry.SweepIdle(maxAge) {
		room.Mu.Lock()
		first := room.Close()
		var memberIDs []uuid.UUID
		for _, p := range room.Players {
			memberIDs = append(memberIDs, p.ID)
		}
		if first {
			o.broadcast(room, Event{
				Type:     EventError,
				RoomCode: room.Code,
				Message:  "room closed after inactivity",
			})
		}
		room.Mu.Unlock()

		o.mu.Lock()
		for _, id := range memberIDs {
			delete(o.roomOf, id)
		}
		o.mu.Unlock()
		o.Logger.Infof("room %s evicted after %s of inactivity", room.Code, maxAge)
	}
}

// recordAction pushes one action record onto the async history queue. Fire
// and forget: history must never slow an in-room transition.
func (o *Orchestrator) recordAction(roomCode string, matchID, actorID uuid.UUID, actionType string, payload map[string]interface{}) {
	record := cache.MatchActionRecord{
		RoomCode:      roomCode,
		MatchID:       matchID,
		ActorID:       actorID,
		ActionType:    actionType,
		ActionPayload: payload,
		Timestamp:     time.Now().Unix(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := cache.PublishMatchAction(ctx, record); err != nil {
			o.Logger.Warnf("failed to publish %s action for room %s: %v", actionType, roomCode, err)
		}
	}()
}
