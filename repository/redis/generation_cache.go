package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/taskforge/backend/repository"
)

type generationCache struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewGenerationCache creates a Redis-backed cache of generated task titles.
func NewGenerationCache(client *redislib.Client, ttl time.Duration) repository.GenerationCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &generationCache{
		client: client,
		prefix: "gen:",
		ttl:    ttl,
	}
}

func (c *generationCache) Get(ctx context.Context, subjectID, topic string) ([]string, bool, error) {
	result, err := c.client.Get(ctx, c.key(subjectID, topic)).Result()
	if err != nil {
		if err == redislib.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}

	var titles []string
	if err := json.Unmarshal([]byte(result), &titles); err != nil {
		return nil, false, err
	}
	return titles, true, nil
}

func (c *generationCache) Put(ctx context.Context, subjectID, topic string, titles []string) error {
	payload, err := json.Marshal(titles)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(subjectID, topic), payload, c.ttl).Err()
}

// key hashes the topic so arbitrary user input never lands in the keyspace.
func (c *generationCache) key(subjectID, topic string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(topic))))
	return fmt.Sprintf("%s%s:%s", c.prefix, subjectID, hex.EncodeToString(sum[:8]))
}
