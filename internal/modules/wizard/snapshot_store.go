// README: Snapshot store backed by Redis; one JSON value per draft session.
package wizard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"airporter/internal/types"
)

const snapshotKeyPrefix = "wizard:session:%s"

type RedisSnapshotStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisSnapshotStore(client *redis.Client, ttl time.Duration) *RedisSnapshotStore {
	return &RedisSnapshotStore{redis: client, ttl: ttl}
}

func (s *RedisSnapshotStore) Save(ctx context.Context, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, snapshotKey(snap.ID), data, s.ttl).Err()
}

// Load returns the snapshot for a session, and whether one exists.
func (s *RedisSnapshotStore) Load(ctx context.Context, id types.ID) (Snapshot, bool, error) {
	val, err := s.redis.Get(ctx, snapshotKey(id)).Result()
	if err == redis.Nil {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, err
	}
	var snap Snapshot
	if err := json.Unmarshal([]byte(val), &snap); err != nil {
		return Snapshot{}, false, err
	}
	return snap, true, nil
}

func (s *RedisSnapshotStore) Delete(ctx context.Context, id types.ID) error {
	return s.redis.Del(ctx, snapshotKey(id)).Err()
}

func snapshotKey(id types.ID) string {
	return fmt.Sprintf(snapshotKeyPrefix, string(id))
}
