package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"HerShield/internal/cache"
	"HerShield/internal/model"
	pkgerrors "HerShield/pkg/errors"
	"HerShield/pkg/logger"
)

var (
	locationService *LocationService
	locationOnce    sync.Once
)

func Location() *LocationService {
	locationOnce.Do(func() {
		locationService = &LocationService{}
	})

	return locationService
}

// LocationService 维护用户最近一次上报的位置。
// 位置只进 Redis，带 TTL，过期即视为不可用，不落库。
type LocationService struct{}

// Report 上报当前位置，覆盖上一次的值并重置 TTL
func (s *LocationService) Report(ctx context.Context, userID string, lat, lon float64) error {
	if err := cache.SetLocation(ctx, userID, lat, lon); err != nil {
		logger.Logger.Error("Failed to cache location",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return err
	}

	return nil
}

// CurrentLocation 获取用户最近位置，未上报或已过期返回 LocationUnavailable
func (s *LocationService) CurrentLocation(ctx context.Context, userID string) (*model.LocationReference, error) {
	loc, err := cache.GetLocation(ctx, userID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, pkgerrors.LocationUnavailable
	}

	return loc, nil
}
