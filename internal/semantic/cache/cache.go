// Package cache memoizes semantic assessments in Redis.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yungbote/rimas-backend/internal/platform/logger"
	"github.com/yungbote/rimas-backend/internal/semantic"
)

const keyPrefix = "rimas:semantic:"

// Scorer wraps another scorer. Only successful assessments are stored, so a
// fallback never becomes sticky. Redis failures degrade to a cache miss.
type Scorer struct {
	next semantic.Scorer
	rdb  redis.UniversalClient
	ttl  time.Duration
	log  *logger.Logger
}

func New(next semantic.Scorer, rdb redis.UniversalClient, ttl time.Duration, log *logger.Logger) *Scorer {
	if log == nil {
		log = logger.Nop()
	}
	return &Scorer{next: next, rdb: rdb, ttl: ttl, log: log.With("component", "semantic_cache")}
}

// Key is the Redis key for a prompt.
func Key(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return keyPrefix + hex.EncodeToString(sum[:])
}

func (s *Scorer) Score(ctx context.Context, prompt string) (semantic.Assessment, error) {
	key := Key(prompt)

	raw, err := s.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var a semantic.Assessment
		if jerr := json.Unmarshal(raw, &a); jerr == nil {
			return a, nil
		}
		s.log.Warn("dropping corrupt cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		s.log.Warn("semantic cache read failed", "error", err)
	}

	a, err := s.next.Score(ctx, prompt)
	if err != nil {
		return semantic.Assessment{}, err
	}

	if b, jerr := json.Marshal(a); jerr == nil {
		if werr := s.rdb.Set(ctx, key, b, s.ttl).Err(); werr != nil {
			s.log.Warn("semantic cache write failed", "error", werr)
		}
	}
	return a, nil
}

func (s *Scorer) Ping(ctx context.Context) error {
	if p, ok := s.next.(semantic.Prober); ok {
		return p.Ping(ctx)
	}
	return nil
}
