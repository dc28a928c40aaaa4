package queue

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"HerShield/internal/model"
	"HerShield/pkg/logger"
	"HerShield/storage/mq"
)

// PublishContactAdded 投递一条新增联系人的知会短信任务
func PublishContactAdded(ctx context.Context, msg model.ContactAddedMessage) error {
	if err := mq.PublishMessage(mq.NotificationExchange, mq.ContactAddedRoutingKey, msg); err != nil {
		return fmt.Errorf("failed to publish contact added message: %w", err)
	}

	logger.Logger.Debug("Contact added message published",
		zap.String("message_id", msg.MessageID),
		zap.Int64("user_public_id", msg.UserPublicID),
	)

	return nil
}
