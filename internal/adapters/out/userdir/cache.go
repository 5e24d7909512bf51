package userdir

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/core/ports"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// CachedDirectory is a redis read-through decorator over a UserDirectory.
// Hits are served from redis; misses go to the inner directory in one batch
// and are written back with a TTL. Cache failures fall through to the inner
// directory, they never fail a lookup on their own.
type CachedDirectory struct {
	inner ports.UserDirectory
	redis *redis.Client
	ttl   time.Duration
	log   zerolog.Logger
}

// NewCachedDirectory wraps inner with a redis cache.
func NewCachedDirectory(
	inner ports.UserDirectory, client *redis.Client, ttl time.Duration, log zerolog.Logger,
) (*CachedDirectory, error) {
	if inner == nil {
		return nil, fmt.Errorf("inner directory is required")
	}
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}

	return &CachedDirectory{
		inner: inner,
		redis: client,
		ttl:   ttl,
		log:   log.With().Str("component", "user_directory_cache").Logger(),
	}, nil
}

type cachedUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func cacheKey(id kernel.UUID) string {
	return "userdir:" + id.String()
}

// Resolve serves what it can from redis and resolves the rest through the
// inner directory.
func (d *CachedDirectory) Resolve(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]ports.UserInfo, error) {
	result := make(map[kernel.UUID]ports.UserInfo, len(ids))
	missed := make([]kernel.UUID, 0, len(ids))

	for _, id := range ids {
		raw, err := d.redis.Get(ctx, cacheKey(id)).Bytes()
		if err != nil {
			if err != redis.Nil {
				d.log.Warn().Err(err).Msg("cache read failed, falling through to directory")
			}
			missed = append(missed, id)
			continue
		}

		var cached cachedUser
		if err = json.Unmarshal(raw, &cached); err != nil {
			missed = append(missed, id)
			continue
		}
		result[id] = ports.UserInfo{ID: id, Name: cached.Name, Email: cached.Email}
	}

	if len(missed) == 0 {
		return result, nil
	}

	resolved, err := d.inner.Resolve(ctx, missed)
	if err != nil {
		return nil, err
	}

	for id, info := range resolved {
		result[id] = info
		d.writeBack(ctx, id, info)
	}

	return result, nil
}

func (d *CachedDirectory) writeBack(ctx context.Context, id kernel.UUID, info ports.UserInfo) {
	raw, err := json.Marshal(cachedUser{Name: info.Name, Email: info.Email})
	if err != nil {
		return
	}
	if err = d.redis.Set(ctx, cacheKey(id), raw, d.ttl).Err(); err != nil {
		d.log.Warn().Err(err).Msg("cache write failed")
	}
}
