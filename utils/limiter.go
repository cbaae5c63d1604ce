package utils

import (
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// CanAttemptLogin rate-limits login attempts per identifier (email or IP).
func CanAttemptLogin(rdb *redis.Client, key string) (bool, string) {
	minuteKey := fmt.Sprintf("login_minute_%s", key)
	hourKey := fmt.Sprintf("login_hour_%s", key)
	cnt, _ := rdb.Get(ctx, minuteKey).Int()
	if cnt >= 5 {
		return false, "Too many login attempts, retry in a minute"
	}
	cnt, _ = rdb.Get(ctx, hourKey).Int()
	if cnt >= 30 {
		return false, "Too many login attempts, retry in an hour"
	}
	return true, ""
}

func MarkLoginAttempt(rdb *redis.Client, key string) {
	minuteKey := fmt.Sprintf("login_minute_%s", key)
	hourKey := fmt.Sprintf("login_hour_%s", key)
	rdb.Incr(ctx, minuteKey)
	rdb.Expire(ctx, minuteKey, time.Minute)
	rdb.Incr(ctx, hourKey)
	rdb.Expire(ctx, hourKey, time.Hour)
}
