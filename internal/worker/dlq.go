package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// A job that exhausts its retries is parked on the dead list of its source
// queue (jobs:receipt:dead, jobs:email:dead). Nothing consumes dead lists
// automatically; an operator replays them once the underlying fault (SMTP
// outage, corrupt payload) is resolved.
const deadSuffix = ":dead"

// DeadJob is a parked job plus the failure that killed it.
type DeadJob struct {
	Queue    string          `json:"queue"`
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Error    string          `json:"error"`
	Attempts int             `json:"attempts"`
	DeadAt   time.Time       `json:"deadAt"`
}

// park moves an exhausted job onto its queue's dead list.
func (p *Pool) park(ctx context.Context, queue string, job Job, cause error) {
	dead := DeadJob{
		Queue:    queue,
		Type:     job.Type,
		Payload:  job.Payload,
		Error:    cause.Error(),
		Attempts: job.Attempts,
		DeadAt:   time.Now().UTC(),
	}
	data, err := json.Marshal(dead)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dead job marshal failed")
		return
	}
	if err := p.rdb.LPush(ctx, queue+deadSuffix, data).Err(); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dead job park failed")
		return
	}
	log.Warn().
		Str("queue", queue).
		Str("type", job.Type).
		Int("attempts", job.Attempts).
		Err(cause).
		Msg("job parked on dead list")
}

// DeadCount reports how many jobs are parked on a queue's dead list. A nil or
// unreachable Redis reads as zero.
func DeadCount(ctx context.Context, rdb *redis.Client, queue string) int64 {
	if rdb == nil {
		return 0
	}
	n, err := rdb.LLen(ctx, queue+deadSuffix).Result()
	if err != nil {
		return 0
	}
	return n
}

// ReplayDead moves up to limit parked jobs back onto their source queue with
// a fresh retry budget. Returns how many were moved.
func ReplayDead(ctx context.Context, rdb *redis.Client, queue string, limit int) (int, error) {
	if rdb == nil {
		return 0, errors.New("worker: redis unavailable")
	}
	moved := 0
	for ; moved < limit; moved++ {
		raw, err := rdb.RPop(ctx, queue+deadSuffix).Result()
		if errors.Is(err, redis.Nil) {
			break
		}
		if err != nil {
			return moved, err
		}
		var dead DeadJob
		if err := json.Unmarshal([]byte(raw), &dead); err != nil {
			return moved, err
		}
		data, err := json.Marshal(Job{Type: dead.Type, Payload: dead.Payload})
		if err != nil {
			return moved, err
		}
		if err := rdb.LPush(ctx, queue, data).Err(); err != nil {
			return moved, err
		}
	}
	if moved > 0 {
		log.Info().Str("queue", queue).Int("moved", moved).Msg("dead jobs replayed")
	}
	return moved, nil
}
