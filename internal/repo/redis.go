package repo

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

type Redis struct{ C *redis.Client }

func NewRedis(addr string) *Redis {
	return &Redis{C: redis.NewClient(&redis.Options{Addr: addr})}
}

func (r *Redis) Ping(ctx context.Context) error { return r.C.Ping(ctx).Err() }
func (r *Redis) Close() error                   { return r.C.Close() }

// AllowCodeRequest gates how often a user may ask for a fresh
// activation/reset code. SET NX EX: first request inside the window wins,
// the rest are rejected until the key expires. A nil receiver disables the
// throttle (dev and tests).
func (r *Redis) AllowCodeRequest(ctx context.Context, userID string, gap time.Duration) (bool, error) {
	if r == nil || r.C == nil {
		return true, nil
	}
	ok, err := r.C.SetNX(ctx, "code_req:"+userID, 1, gap).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}
