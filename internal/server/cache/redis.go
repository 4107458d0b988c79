// Package cache — Redis-кэш проверенных API-токенов.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	tokenPrefix = "auth:token:"
	userPrefix  = "auth:user:"
)

// Cache хранит соответствие "хэш токена -> id пользователя".
//
// Для каждого пользователя ведётся множество его ключей, чтобы при
// деактивации можно было удалить все записи без сканирования keyspace.
type Cache struct {
	client *redis.Client
	maxTTL time.Duration
}

// New подключается к Redis по URL и проверяет соединение.
// maxTTL — верхняя граница TTL записей, на неё же живёт множество ключей пользователя.
func New(ctx context.Context, redisURL string, maxTTL time.Duration) (*Cache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.PoolTimeout = 4 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Cache{client: client, maxTTL: maxTTL}, nil
}

// TokenKey — ключ записи токена.
func TokenKey(key string) string {
	return tokenPrefix + key
}

// UserKey — ключ множества записей пользователя.
func UserKey(userID int64) string {
	return userPrefix + strconv.FormatInt(userID, 10)
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}

// Get возвращает id пользователя. Промах не ошибка: ok=false.
func (c *Cache) Get(ctx context.Context, key string) (int64, bool, error) {
	val, err := c.client.Get(ctx, TokenKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		// битая запись, считаем промахом
		_ = c.client.Del(ctx, TokenKey(key)).Err()
		return 0, false, nil
	}
	return userID, true, nil
}

// Set кладёт запись и регистрирует её в множестве пользователя.
func (c *Cache) Set(ctx context.Context, key string, userID int64, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if c.maxTTL > 0 && ttl > c.maxTTL {
		ttl = c.maxTTL
	}
	setTTL := c.maxTTL
	if setTTL <= 0 {
		setTTL = ttl
	}

	_, err := c.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, TokenKey(key), userID, ttl)
		p.SAdd(ctx, UserKey(userID), key)
		p.Expire(ctx, UserKey(userID), setTTL)
		return nil
	})
	return err
}

// Delete удаляет запись одного токена.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, TokenKey(key)).Err()
}

// DeleteUser удаляет все записи пользователя.
func (c *Cache) DeleteUser(ctx context.Context, userID int64) error {
	members, err := c.client.SMembers(ctx, UserKey(userID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	keys := make([]string, 0, len(members)+1)
	for _, m := range members {
		keys = append(keys, TokenKey(m))
	}
	keys = append(keys, UserKey(userID))

	return c.client.Del(ctx, keys...).Err()
}
