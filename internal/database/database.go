package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/scythe504/outsider-backend/internal"
)

// Service archives concluded votes. Room state itself is never stored.
type Service interface {
	// Health returns a map of health status information.
	Health() map[string]string

	// RecordOutcome stores one concluded vote.
	RecordOutcome(ctx context.Context, outcome internal.Outcome) error

	// RecentOutcomes lists the newest archived outcomes of a room, newest first.
	RecentOutcomes(ctx context.Context, roomCode string, limit int) ([]OutcomeRecord, error)

	// Close terminates the connection pool.
	Close()
}

type OutcomeRecord struct {
	ID                int64          `json:"id"`
	RoomCode          string         `json:"roomCode"`
	WinnerID          *string        `json:"winnerId"`
	WinnerName        *string        `json:"winnerName"`
	WinnerWasImpostor *bool          `json:"winnerWasImpostor"`
	Tally             map[string]int `json:"tally"`
	EndedAt           time.Time      `json:"endedAt"`
}

const schema = `
CREATE TABLE IF NOT EXISTS vote_outcomes (
	id                  BIGSERIAL PRIMARY KEY,
	room_code           TEXT        NOT NULL,
	winner_id           TEXT,
	winner_name         TEXT,
	winner_was_impostor BOOLEAN,
	tally               JSONB       NOT NULL,
	word                TEXT        NOT NULL,
	ended_at            TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS vote_outcomes_room_idx ON vote_outcomes (room_code, ended_at DESC);
`

type service struct {
	pool *pgxpool.Pool
}

// New connects to databaseURL, verifies the connection and ensures the schema exists.
func New(ctx context.Context, databaseURL string) (Service, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MaxConnLifetime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	log.Printf("[Database] Connected to %s", cfg.ConnConfig.Database)
	return &service{pool: pool}, nil
}

func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := make(map[string]string)

	if err := s.pool.Ping(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		log.Printf("[Database] Health check failed: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"

	poolStats := s.pool.Stat()
	stats["total_connections"] = strconv.Itoa(int(poolStats.TotalConns()))
	stats["idle_connections"] = strconv.Itoa(int(poolStats.IdleConns()))
	stats["acquired_connections"] = strconv.Itoa(int(poolStats.AcquiredConns()))

	if poolStats.AcquiredConns() >= poolStats.MaxConns() {
		stats["message"] = "The database is under heavy load."
	}

	return stats
}

func (s *service) RecordOutcome(ctx context.Context, outcome internal.Outcome) error {
	tally, err := json.Marshal(outcome.Tally)
	if err != nil {
		return fmt.Errorf("failed to encode tally: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO vote_outcomes (room_code, winner_id, winner_name, winner_was_impostor, tally, word, ended_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		outcome.RoomCode, outcome.WinnerID, outcome.WinnerName, outcome.IsImpostor,
		tally, outcome.Word, outcome.EndedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert outcome for room %s: %w", outcome.RoomCode, err)
	}
	return nil
}

func (s *service) RecentOutcomes(ctx context.Context, roomCode string, limit int) ([]OutcomeRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, room_code, winner_id, winner_name, winner_was_impostor, tally, ended_at
		FROM vote_outcomes
		WHERE room_code = $1
		ORDER BY ended_at DESC, id DESC
		LIMIT $2`, roomCode, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query outcomes for room %s: %w", roomCode, err)
	}
	defer rows.Close()

	records := make([]OutcomeRecord, 0)
	for rows.Next() {
		var (
			record OutcomeRecord
			tally  []byte
		)
		if err := rows.Scan(&record.ID, &record.RoomCode, &record.WinnerID, &record.WinnerName,
			&record.WinnerWasImpostor, &tally, &record.EndedAt); err != nil {
			return nil, fmt.Errorf("failed to scan outcome: %w", err)
		}
		if err := json.Unmarshal(tally, &record.Tally); err != nil {
			return nil, fmt.Errorf("failed to decode tally: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read outcomes: %w", err)
	}
	return records, nil
}

func (s *service) Close() {
	log.Printf("[Database] Closing connection pool")
	s.pool.Close()
}
