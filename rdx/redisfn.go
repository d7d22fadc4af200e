package rdx

import (
	"log"
	"os"
	"time"

	"tripmate/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
}

func RdxSet(key, value string) error {
	return Conn.Set(globals.Ctx, key, value, 0).Err()
}

func RdxSetTTL(key, value string, ttl time.Duration) error {
	return Conn.Set(globals.Ctx, key, value, ttl).Err()
}

func RdxGet(key string) (string, error) {
	return Conn.Get(globals.Ctx, key).Result()
}

func RdxDel(key string) error {
	return Conn.Del(globals.Ctx, key).Err()
}

func RdxHset(hash, field, value string) error {
	return Conn.HSet(globals.Ctx, hash, field, value).Err()
}

func RdxHget(hash, field string) (string, error) {
	return Conn.HGet(globals.Ctx, hash, field).Result()
}

func RdxHdel(hash, field string) error {
	return Conn.HDel(globals.Ctx, hash, field).Err()
}

func RdxHgetall(hash string) (map[string]string, error) {
	return Conn.HGetAll(globals.Ctx, hash).Result()
}

// Ping verifies the connection at startup; the cache degrades gracefully if
// Redis is down, so failures are logged rather than fatal.
func Ping() {
	if err := Conn.Ping(globals.Ctx).Err(); err != nil {
		log.Printf("Redis unavailable: %v", err)
	}
}

// RdxLPushCapped prepends value to a list and trims it to limit entries.
func RdxLPushCapped(key, value string, limit int64) error {
	if err := Conn.LPush(globals.Ctx, key, value).Err(); err != nil {
		return err
	}
	return Conn.LTrim(globals.Ctx, key, 0, limit-1).Err()
}

func RdxLRange(key string, start, stop int64) ([]string, error) {
	return Conn.LRange(globals.Ctx, key, start, stop).Result()
}

func RdxPublish(channel, message string) error {
	return Conn.Publish(globals.Ctx, channel, message).Err()
}

func RdxSubscribe(channel string) *redis.PubSub {
	return Conn.Subscribe(globals.Ctx, channel)
}
