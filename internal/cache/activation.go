package cache

import (
	"context"
	"time"

	"HerShield/config"
	"HerShield/storage/redis"
)

const (
	activationPrefix = "activation"
)

// SetActivationToken 存储账号激活 token
// Key: hshd:activation:{token} -> user_public_id
func SetActivationToken(ctx context.Context, token, userID string) error {
	key := redis.Key(activationPrefix, token)
	ttl := time.Duration(config.Cfg.ActivationTTLHours) * time.Hour

	return redis.Client().Set(ctx, key, userID, ttl).Err()
}

// ConsumeActivationToken 取出并删除激活 token，保证一次性使用
// 返回 token 对应的用户 public_id，不存在或已过期返回 redis.Nil 错误
func ConsumeActivationToken(ctx context.Context, token string) (string, error) {
	key := redis.Key(activationPrefix, token)
	return redis.Client().GetDel(ctx, key).Result()
}
