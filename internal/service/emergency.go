package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"HerShield/internal/model"
	"HerShield/internal/model/dto"
	pkgerrors "HerShield/pkg/errors"
	"HerShield/pkg/logger"
)

// ContactDirectory 提供广播所需的联系人快照
type ContactDirectory interface {
	Snapshot(ctx context.Context, userID string) (ownerName string, contacts []model.Contact, err error)
}

// LocationProvider 提供用户当前位置
type LocationProvider interface {
	CurrentLocation(ctx context.Context, userID string) (*model.LocationReference, error)
}

var (
	emergencyService *EmergencyService
	emergencyOnce    sync.Once
)

func Emergency() *EmergencyService {
	emergencyOnce.Do(func() {
		emergencyService = &EmergencyService{
			directory: Contact(),
			locations: Location(),
			fanout:    Fanout(),
		}
	})

	return emergencyService
}

// NewEmergency 注入依赖，测试用
func NewEmergency(directory ContactDirectory, locations LocationProvider, fanout *FanoutService) *EmergencyService {
	return &EmergencyService{
		directory: directory,
		locations: locations,
		fanout:    fanout,
	}
}

// EmergencyService 一键求救入口，组装联系人快照和位置后交给广播流程
type EmergencyService struct {
	directory ContactDirectory
	locations LocationProvider
	fanout    *FanoutService
}

// Trigger 触发一次紧急广播。
// 没有联系人或位置不可用属于前置失败，直接报错，不触碰任何渠道；
// 进入广播后单条投递失败只体现在结果里，不会让 Trigger 返回错误。
func (s *EmergencyService) Trigger(ctx context.Context, userID string) (*dto.EmergencyResponse, error) {
	ownerName, contacts, err := s.directory.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(contacts) == 0 {
		return nil, pkgerrors.EmptyContactList
	}

	location, err := s.locations.CurrentLocation(ctx, userID)
	if err != nil {
		return nil, err
	}

	logger.Logger.Info("Emergency broadcast triggered",
		zap.String("user_id", userID),
		zap.Int("contacts", len(contacts)),
	)

	result := s.fanout.Broadcast(ctx, ownerName, contacts, *location)

	return &dto.EmergencyResponse{
		BroadcastID: result.BroadcastID,
		Overall:     result.Overall,
		Outcomes:    result.Outcomes,
	}, nil
}
