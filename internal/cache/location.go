package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"HerShield/config"
	"HerShield/internal/model"
	"HerShield/storage/redis"
)

const (
	locationPrefix = "location"
)

// CachedLocation 用户最近一次上报的位置
type CachedLocation struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	ReportedAt time.Time `json:"reported_at"`
}

// SetLocation 缓存用户最近位置，TTL 到期视为位置不可用
// Key: hshd:location:{user_public_id}
func SetLocation(ctx context.Context, userID string, lat, lon float64) error {
	loc := CachedLocation{
		Latitude:   lat,
		Longitude:  lon,
		ReportedAt: time.Now(),
	}

	data, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("failed to marshal location: %w", err)
	}

	key := redis.Key(locationPrefix, userID)
	ttl := time.Duration(config.Cfg.LocationTTLMinutes) * time.Minute

	return redis.Client().Set(ctx, key, data, ttl).Err()
}

// GetLocation 获取用户最近位置
// 未上报或已过期返回 (nil, nil)
func GetLocation(ctx context.Context, userID string) (*model.LocationReference, error) {
	key := redis.Key(locationPrefix, userID)

	data, err := redis.Client().Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get location: %w", err)
	}

	var loc CachedLocation
	if err := json.Unmarshal(data, &loc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal location: %w", err)
	}

	ref := model.NewLocationReference(loc.Latitude, loc.Longitude)
	return &ref, nil
}

// DeleteLocation 删除用户位置缓存（注销账号时调用）
func DeleteLocation(ctx context.Context, userID string) error {
	key := redis.Key(locationPrefix, userID)
	return redis.Client().Del(ctx, key).Err()
}
