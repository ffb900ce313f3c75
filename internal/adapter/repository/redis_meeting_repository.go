package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

const maxRedisRetries = 16

// RedisMeetingRepository keeps each meeting as a JSON string under
// <prefix>:<id> and orders them in a sorted set under <prefix>:index scored
// by creation time. Merges use optimistic transactions on the record key.
type RedisMeetingRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisMeetingRepository creates a new meeting repository
func NewRedisMeetingRepository(client *redis.Client, prefix string) *RedisMeetingRepository {
	if prefix == "" {
		prefix = "meetings"
	}
	return &RedisMeetingRepository{client: client, prefix: prefix}
}

func (r *RedisMeetingRepository) recordKey(meetingID string) string {
	return r.prefix + ":" + meetingID
}

func (r *RedisMeetingRepository) indexKey() string {
	return r.prefix + ":index"
}

// Put merges patch into the stored record, retrying when another writer
// touched the same key mid-merge
func (r *RedisMeetingRepository) Put(ctx context.Context, meetingID string, patch entities.MeetingPatch) (*entities.MeetingRecord, error) {
	if err := validateKey(meetingID); err != nil {
		return nil, err
	}

	key := r.recordKey(meetingID)
	var merged *entities.MeetingRecord

	txf := func(tx *redis.Tx) error {
		current, err := r.decode(tx.Get(ctx, key))
		if err != nil {
			return err
		}

		rec, err := mergeRecord(current, meetingID, patch)
		if err != nil {
			return err
		}

		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to encode meeting %s: %w", meetingID, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			pipe.ZAddNX(ctx, r.indexKey(), redis.Z{
				Score:  float64(rec.CreatedAt.UnixMicro()),
				Member: meetingID,
			})
			return nil
		})
		if err == nil {
			merged = rec
		}
		return err
	}

	for i := 0; i < maxRedisRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return merged, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("meeting %s: too many concurrent writers", meetingID)
}

// Get returns (nil, nil) when the meeting does not exist
func (r *RedisMeetingRepository) Get(ctx context.Context, meetingID string) (*entities.MeetingRecord, error) {
	if err := validateKey(meetingID); err != nil {
		return nil, err
	}
	return r.decode(r.client.Get(ctx, r.recordKey(meetingID)))
}

// List returns meetings ordered by creation time
func (r *RedisMeetingRepository) List(ctx context.Context) ([]*entities.MeetingRecord, error) {
	ids, err := r.client.ZRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read meeting index: %w", err)
	}
	if len(ids) == 0 {
		return []*entities.MeetingRecord{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.recordKey(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load meetings: %w", err)
	}

	records := make([]*entities.MeetingRecord, 0, len(values))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var rec entities.MeetingRecord
		if err := json.Unmarshal([]byte(s), &rec); err != nil {
			return nil, fmt.Errorf("failed to decode meeting %s: %w", ids[i], err)
		}
		records = append(records, &rec)
	}
	return records, nil
}

func (r *RedisMeetingRepository) decode(cmd *redis.StringCmd) (*entities.MeetingRecord, error) {
	data, err := cmd.Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var rec entities.MeetingRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode meeting: %w", err)
	}
	return &rec, nil
}
