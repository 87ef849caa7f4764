package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"microcredit-backoffice/pkg/id"
)

// compare-and-delete so a lock that expired and was retaken is left alone
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// Locker is a best-effort SET NX PX mutex.
type Locker struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewLocker(rdb *redis.Client, ttl time.Duration) *Locker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Locker{rdb: rdb, ttl: ttl}
}

func (l *Locker) TryLock(ctx context.Context, key string) (func(), bool, error) {
	token := id.NewID32()
	ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil || !ok {
		return nil, false, err
	}
	unlock := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(ctx, l.rdb, []string{key}, token).Err(); err != nil {
			log.Printf("[lock] release %s: %v", key, err)
		}
	}
	return unlock, true, nil
}
