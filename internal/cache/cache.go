package cache

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"fmt"           // Key formatting
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// UsersKey caches the GET /users response
const UsersKey = "ledger:users"

// TransactionsKey caches the GET /transactions/:user_id response of one user
func TransactionsKey(userID uint) string {
	return fmt.Sprintf("ledger:transactions:user:%d", userID)
}

// generationKey counts invalidations of key
func generationKey(key string) string {
	return key + ":gen"
}

// setIfCurrent stores the value only while the generation still matches the
// one read before the store was queried.
// KEYS: value key, generation key. ARGV: expected generation, payload, TTL in ms.
var setIfCurrent = redis.NewScript(`
local gen = redis.call('GET', KEYS[2])
if not gen then gen = '0' end
if gen ~= ARGV[1] then return 0 end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[1], ARGV[2])
end
return 1
`)

// Cache is a JSON read cache over Redis. A nil *Cache is a valid, always-missing cache.
//
// Readers take Generation before querying the store and write back with
// SetIfCurrent; writers call Invalidate after committing. A snapshot read
// before a commit can then never be written back after that commit's
// invalidation.
type Cache struct {
	rdb redis.UniversalClient // Redis client
	ttl time.Duration         // Lifetime of every entry
}

// New wraps rdb. A nil client yields a nil (disabled) cache.
func New(rdb redis.UniversalClient, ttl time.Duration) *Cache {
	if rdb == nil {
		return nil
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

// NewClient connects to Redis and verifies the connection
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,     // Redis server address
		Password: password, // Redis password
		DB:       db,       // Redis database number
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return client, nil
}

// Get retrieves a value from Redis and unmarshals it into dest
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil {
		return false, nil
	}
	val, err := c.rdb.Get(ctx, key).Bytes() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Generation returns how many times key has been invalidated
func (c *Cache) Generation(ctx context.Context, key string) (int64, error) {
	if c == nil {
		return 0, nil
	}
	gen, err := c.rdb.Get(ctx, generationKey(key)).Int64()
	if err == redis.Nil {
		return 0, nil // Never invalidated
	}
	return gen, err
}

// SetIfCurrent stores value as JSON unless key was invalidated after gen was
// read. It reports whether the value was stored.
func (c *Cache) SetIfCurrent(ctx context.Context, key string, gen int64, value any) (bool, error) {
	if c == nil {
		return false, nil
	}
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return false, err
	}
	stored, err := setIfCurrent.Run(ctx, c.rdb,
		[]string{key, generationKey(key)},
		gen, b, c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, err
	}
	return stored == 1, nil
}

// Invalidate bumps the generation of every key and drops its cached value
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if c == nil || len(keys) == 0 {
		return nil
	}
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, key := range keys {
			pipe.Incr(ctx, generationKey(key)) // Fence out in-flight readers
			pipe.Del(ctx, key)                 // Drop the stale value
		}
		return nil
	})
	return err
}
