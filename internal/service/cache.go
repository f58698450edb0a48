package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lecturescribe-be/internal/dto"

	"github.com/redis/go-redis/v9"
)

const noteListCacheTTL = 60 * time.Second

// noteListCache keeps per-user note listings in Redis. All methods are
// nil-safe so the services work without a Redis connection.
type noteListCache struct {
	client *redis.Client
}

func newNoteListCache(client *redis.Client) *noteListCache {
	return &noteListCache{client: client}
}

func noteListKey(userId string) string {
	return fmt.Sprintf("notes:list:%s", userId)
}

func (c *noteListCache) Get(ctx context.Context, userId string) ([]*dto.NoteMetadataResponse, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, noteListKey(userId)).Bytes()
	if err != nil {
		return nil, false
	}

	var notes []*dto.NoteMetadataResponse
	if err := json.Unmarshal(raw, &notes); err != nil {
		return nil, false
	}
	return notes, true
}

func (c *noteListCache) Set(ctx context.Context, userId string, notes []*dto.NoteMetadataResponse) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(notes)
	if err != nil {
		return
	}
	c.client.Set(ctx, noteListKey(userId), raw, noteListCacheTTL)
}

func (c *noteListCache) Invalidate(ctx context.Context, userId string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, noteListKey(userId))
}
