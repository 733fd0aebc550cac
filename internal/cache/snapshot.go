// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// snapshot.go stores the record set a list view was mounted with. Every
// interaction with the view reads the same frozen records back, so edits
// made by other users only show up after the view is mounted again.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// snapshotKeyPrefix is the Valkey key prefix for view snapshots.
	snapshotKeyPrefix = "view:"

	// DefaultSnapshotTTL is how long an idle view keeps its snapshot.
	DefaultSnapshotTTL = 30 * time.Minute
)

// SnapshotCache manages view snapshots in Valkey. Reading a snapshot
// extends its lifetime, so a view stays usable while someone works in it.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotCache creates a snapshot cache backed by the given Valkey client.
func NewSnapshotCache(client *redis.Client, ttl time.Duration) *SnapshotCache {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	return &SnapshotCache{client: client, ttl: ttl}
}

// Put stores v under a new view id and returns the id.
func (sc *SnapshotCache) Put(ctx context.Context, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	id := uuid.New().String()
	if err := sc.client.Set(ctx, snapshotKeyPrefix+id, data, sc.ttl).Err(); err != nil {
		return "", fmt.Errorf("store snapshot: %w", err)
	}

	slog.Debug("view snapshot stored", "view", id, "bytes", len(data))
	return id, nil
}

// Get decodes the snapshot id into dst and slides its expiry. It returns
// false when the snapshot expired or never existed.
func (sc *SnapshotCache) Get(ctx context.Context, id string, dst any) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}

	data, err := sc.client.GetEx(ctx, snapshotKeyPrefix+id, sc.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load snapshot: %w", err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return true, nil
}

// Drop removes a snapshot. Missing snapshots are not an error.
func (sc *SnapshotCache) Drop(ctx context.Context, id string) {
	if err := sc.client.Del(ctx, snapshotKeyPrefix+id).Err(); err != nil {
		slog.Warn("view snapshot drop error", "view", id, "error", err)
	}
}

// DropAll removes every snapshot by scanning for the prefix. Run at server
// start, since a new release can change the shape of stored records.
func (sc *SnapshotCache) DropAll(ctx context.Context) (int, error) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := sc.client.Scan(ctx, cursor, snapshotKeyPrefix+"*", 100).Result()
		if err != nil {
			return deleted, fmt.Errorf("scan snapshots: %w", err)
		}
		if len(keys) > 0 {
			if err := sc.client.Del(ctx, keys...).Err(); err != nil {
				return deleted, fmt.Errorf("delete snapshots: %w", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("view snapshots cleared", "deleted", deleted)
	}
	return deleted, nil
}
