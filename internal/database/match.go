// internal/database/match.go
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/duelyard/duelyard/internal/models"
)

// RecordMatchResult persists the final outcome of a match: one matches row
// plus one match_players row per seat. winner is nil for a draw. A nil pool
// is a no-op so rooms resolve identically with or without a database.
func RecordMatchResult(ctx context.Context, roomCode string, matchID uuid.UUID, players []*models.Player, winner *uuid.UUID, startedAt time.Time) error {
	if DB == nil {
		return nil
	}
	err := pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		upsertMatch := `
			INSERT INTO matches (id, room_code, winner_id, started_at, finished_at)
			VALUES ($1, $2, $3, $4, NOW())
			ON CONFLICT (id) DO UPDATE SET winner_id = $3, finished_at = NOW()
		`
		if _, e := tx.Exec(ctx, upsertMatch, matchID, roomCode, winner, startedAt); e != nil {
			return e
		}

		for _, pl := range players {
			didWin := winner != nil && *winner == pl.ID
			q := `
				INSERT INTO match_players (match_id, player_id, player_name, final_health, special_move, did_win)
				VALUES ($1, $2, $3, $4, $5, $6)
				ON CONFLICT (match_id, player_id)
				DO UPDATE SET final_health = $4, did_win = $6
			`
			if _, e2 := tx.Exec(ctx, q, matchID, pl.ID, pl.Name, pl.Health, pl.SpecialMove.Name, didWin); e2 != nil {
				return e2
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("tx upsert match or players: %w", err)
	}
	return nil
}
