package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

var ErrSessionNotFound = errors.New("session not found")

// RoundJournal mirrors the finished rounds of a running session so that
// external viewers can follow it. Entries expire and are purged on shutdown.
type RoundJournal interface {
	Append(ctx context.Context, sessionID string, record *entity.RoundRecord) error
	List(ctx context.Context, sessionID string) ([]entity.RoundRecord, error)
	Purge(ctx context.Context, sessionID string) error
}

type dbRound struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRoundJournal stores rounds in redis. A non-positive ttl disables expiry.
func NewRoundJournal(client *redis.Client, ttl time.Duration) RoundJournal {
	return &dbRound{
		client: client,
		ttl:    ttl,
	}
}

// RoundsKey is the redis list holding a session's rounds.
func RoundsKey(sessionID string) string {
	return "session:" + sessionID + ":rounds"
}

func (that *dbRound) Append(ctx context.Context, sessionID string, record *entity.RoundRecord) error {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("could not marshal round: %w", err)
	}

	key := RoundsKey(sessionID)
	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, recordJSON)
		if that.ttl > 0 {
			pipe.Expire(ctx, key, that.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to append round: %w", err)
	}

	return nil
}

func (that *dbRound) List(ctx context.Context, sessionID string) ([]entity.RoundRecord, error) {
	response, err := that.client.LRange(ctx, RoundsKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}

	if len(response) == 0 {
		return nil, ErrSessionNotFound
	}

	records := make([]entity.RoundRecord, 0, len(response))
	for _, raw := range response {
		var record entity.RoundRecord
		if err = json.Unmarshal([]byte(raw), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal round: %w", err)
		}
		records = append(records, record)
	}

	return records, nil
}

func (that *dbRound) Purge(ctx context.Context, sessionID string) error {
	deleted, err := that.client.Del(ctx, RoundsKey(sessionID)).Result()
	if err != nil {
		return fmt.Errorf("failed to purge session: %w", err)
	}

	if deleted == 0 {
		return ErrSessionNotFound
	}

	return nil
}

type nopRound struct{}

// NewNopJournal returns a journal that drops every record.
func NewNopJournal() RoundJournal {
	return nopRound{}
}

func (nopRound) Append(context.Context, string, *entity.RoundRecord) error {
	return nil
}

func (nopRound) List(context.Context, string) ([]entity.RoundRecord, error) {
	return nil, ErrSessionNotFound
}

func (nopRound) Purge(context.Context, string) error {
	return nil
}
