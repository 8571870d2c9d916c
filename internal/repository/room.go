package repo

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"reversi_server/internal/bootstrap"
	"reversi_server/internal/domain/room"
	errs "reversi_server/internal/errors"
)

const (
	roomKeyPrefix        = "game:"
	participantKeyPrefix = "game:index:participant:"

	// maxTxRetries bounds the optimistic-transaction retry loop; past this
	// the key is under pathological contention and the caller gets a
	// store error instead of spinning.
	maxTxRetries = 5
)

type RoomRepository struct {
	cfg   bootstrap.Config
	log   *zap.SugaredLogger
	redis *redis.Client
}

func NewRoomRepository(cfg bootstrap.Config, log *zap.SugaredLogger, redis *redis.Client) *RoomRepository {
	return &RoomRepository{
		cfg:   cfg,
		log:   log,
		redis: redis,
	}
}

func roomKey(roomID string) string {
	return roomKeyPrefix + roomID
}

func participantKey(participantID string) string {
	return participantKeyPrefix + participantID
}

func (r *RoomRepository) ttl() time.Duration {
	return time.Duration(r.cfg.RoomTTLSeconds) * time.Second
}

// callerError tags an error returned by the mutation callback so it can
// be told apart from redis-layer failures and surfaced unchanged.
type callerError struct{ err error }

func (e *callerError) Error() string { return e.err.Error() }

// Get loads a room snapshot. A missing key is (nil, nil), not an error.
func (r *RoomRepository) Get(ctx context.Context, roomID string) (*room.Room, error) {
	raw, err := r.redis.Get(ctx, roomKey(roomID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		r.log.Errorf("get room %s: %v", roomID, err)
		return nil, errs.ErrStoreUnavailable
	}

	var rm room.Room
	if err := json.Unmarshal(raw, &rm); err != nil {
		return nil, err
	}
	return &rm, nil
}

// Mutate runs fn against the current room state inside a WATCH
// transaction on the room key. fn receives nil when the room does not
// exist; returning a room persists it with the configured TTL and a
// bumped version, returning nil skips the write, returning an error
// aborts and surfaces that error unchanged. A concurrent write between
// the read and EXEC fails the transaction and the whole cycle re-runs
// against the fresh state, so fn must re-validate everything it assumes.
// Redis-layer failures come back as ErrStoreUnavailable.
func (r *RoomRepository) Mutate(ctx context.Context, roomID string, fn func(cur *room.Room) (*room.Room, error)) (*room.Room, error) {
	key := roomKey(roomID)

	for attempt := 0; attempt < maxTxRetries; attempt++ {
		var result *room.Room

		err := r.redis.Watch(ctx, func(tx *redis.Tx) error {
			var cur *room.Room

			raw, err := tx.Get(ctx, key).Bytes()
			switch {
			case errors.Is(err, redis.Nil):
				cur = nil
			case err != nil:
				return err
			default:
				cur = &room.Room{}
				if jerr := json.Unmarshal(raw, cur); jerr != nil {
					return jerr
				}
			}

			next, err := fn(cur)
			if err != nil {
				return &callerError{err: err}
			}
			if next == nil {
				return nil
			}

			next.Version++
			encoded, err := json.Marshal(next)
			if err != nil {
				return err
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, encoded, r.ttl())
				return nil
			})
			if err != nil {
				return err
			}
			result = next
			return nil
		}, key)

		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		var cerr *callerError
		if errors.As(err, &cerr) {
			return nil, cerr.err
		}
		if err != nil {
			r.log.Errorf("room %s transaction: %v", roomID, err)
			return nil, errs.ErrStoreUnavailable
		}
		return result, nil
	}

	r.log.Errorf("room %s: transaction retries exhausted", roomID)
	return nil, errs.ErrStoreUnavailable
}

// Delete evicts a room. Deleting an absent key is a no-op.
func (r *RoomRepository) Delete(ctx context.Context, roomID string) error {
	return r.redis.Del(ctx, roomKey(roomID)).Err()
}

// List returns lobby summaries for every live room. Entries that expire
// between the key scan and the read are skipped.
func (r *RoomRepository) List(ctx context.Context) ([]room.Summary, error) {
	keys, err := r.redis.Keys(ctx, roomKeyPrefix+"*").Result()
	if err != nil {
		return nil, errs.ErrStoreUnavailable
	}

	summaries := make([]room.Summary, 0, len(keys))
	for _, key := range keys {
		if strings.HasPrefix(key, participantKeyPrefix) {
			continue
		}

		raw, err := r.redis.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, errs.ErrStoreUnavailable
		}

		var rm room.Room
		if err := json.Unmarshal(raw, &rm); err != nil {
			r.log.Errorf("skipping undecodable room %s: %v", key, err)
			continue
		}

		total := 0
		if rm.Players.Black != "" {
			total++
		}
		if rm.Players.White != "" {
			total++
		}
		summaries = append(summaries, room.Summary{
			RoomID:       strings.TrimPrefix(key, roomKeyPrefix),
			Players:      rm.Players,
			TotalPlayers: total,
		})
	}
	return summaries, nil
}

// SetParticipantRoom records which room a participant is seated in, so
// disconnects resolve with one read instead of scanning every room.
func (r *RoomRepository) SetParticipantRoom(ctx context.Context, participantID, roomID string) error {
	return r.redis.Set(ctx, participantKey(participantID), roomID, r.ttl()).Err()
}

// RoomIDByParticipant resolves the participant index; "" when unknown.
func (r *RoomRepository) RoomIDByParticipant(ctx context.Context, participantID string) (string, error) {
	roomID, err := r.redis.Get(ctx, participantKey(participantID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", errs.ErrStoreUnavailable
	}
	return roomID, nil
}

func (r *RoomRepository) DeleteParticipantRoom(ctx context.Context, participantID string) error {
	return r.redis.Del(ctx, participantKey(participantID)).Err()
}
