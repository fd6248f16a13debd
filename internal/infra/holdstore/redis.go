package holdstore

import (
	"context"
	"fmt"
	"time"

	"dental-clinic-api/internal/domain/schedule"
	"dental-clinic-api/internal/infra"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the hold only when the stored holder token matches,
// so a hold that expired and was re-placed by someone else cannot be removed
// by the original holder.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisHoldStore keeps reserve-then-pay holds as TTL'd keys. Expiry needs no
// sweeper: a key that is gone is a hold that no longer exists.
type RedisHoldStore struct {
	client *redis.Client
}

func NewRedisHoldStore(client *redis.Client) *RedisHoldStore {
	return &RedisHoldStore{client: client}
}

func holdKey(dentistID uuid.UUID, date time.Time, t schedule.TimeOfDay) string {
	return fmt.Sprintf("hold:%s:%s:%s", dentistID, date.Format("2006-01-02"), t)
}

func (s *RedisHoldStore) Place(ctx context.Context, dentistID uuid.UUID, date time.Time, t schedule.TimeOfDay, holder string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, holdKey(dentistID, date, t), holder, ttl).Result()
	if err != nil {
		return false, infra.WrapRepoErr("failed to place slot hold", err)
	}
	return ok, nil
}

func (s *RedisHoldStore) Release(ctx context.Context, dentistID uuid.UUID, date time.Time, t schedule.TimeOfDay, holder string) error {
	if err := releaseScript.Run(ctx, s.client, []string{holdKey(dentistID, date, t)}, holder).Err(); err != nil {
		return infra.WrapRepoErr("failed to release slot hold", err)
	}
	return nil
}

func (s *RedisHoldStore) Held(ctx context.Context, dentistID uuid.UUID, date time.Time, times []schedule.TimeOfDay) (map[schedule.TimeOfDay]string, error) {
	if len(times) == 0 {
		return map[schedule.TimeOfDay]string{}, nil
	}

	keys := make([]string, len(times))
	for i, t := range times {
		keys[i] = holdKey(dentistID, date, t)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read slot holds", err)
	}

	held := make(map[schedule.TimeOfDay]string)
	for i, v := range values {
		holder, ok := v.(string)
		if !ok {
			continue
		}
		held[times[i]] = holder
	}
	return held, nil
}
