package queue

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"HerShield/config"
	"HerShield/internal/cache"
	"HerShield/internal/model"
	"HerShield/pkg/logger"
	"HerShield/pkg/sms"
	"HerShield/storage/mq"
	"HerShield/utils"
)

// StartContactAddedConsumer 消费新增联系人消息，给联系人发一条知会短信。
// 通过 Redis SETNX 做幂等，同一 message_id 只处理一次。
func StartContactAddedConsumer(ctx context.Context) error {
	handler := func(body []byte) error {
		var msg model.ContactAddedMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return fmt.Errorf("failed to unmarshal contact added message: %w", err)
		}

		processed, err := cache.TryMarkMessageProcessing(ctx, msg.MessageID, 24*time.Hour)
		if err != nil {
			logger.Logger.Warn("Failed to check message processed status",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
			// 检查失败继续处理，宁可重复不可丢失
		} else if !processed {
			logger.Logger.Info("Message already processed, skipping",
				zap.String("message_id", msg.MessageID),
			)
			return nil
		}

		if err := notifyContactAdded(ctx, msg); err != nil {
			// 处理失败，取消标记允许重试
			if unmarkErr := cache.UnmarkMessageProcessing(ctx, msg.MessageID); unmarkErr != nil {
				logger.Logger.Warn("Failed to unmark message processing",
					zap.String("message_id", msg.MessageID),
					zap.Error(unmarkErr),
				)
			}
			return err
		}

		if err := cache.MarkMessageProcessed(ctx, msg.MessageID, 48*time.Hour); err != nil {
			logger.Logger.Warn("Failed to mark message as processed",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
		}

		return nil
	}

	return mq.Consume(mq.ConsumeOptions{
		Queue:         mq.ContactAddedQueue,
		ConsumerTag:   "contact-added-worker",
		PrefetchCount: 10,
		Handler:       handler,
	})
}

// notifyContactAdded 解密手机号并发送知会短信。
// 号码无法解析成 E.164 时跳过发送且不重试，坏号码重试也不会变好。
func notifyContactAdded(ctx context.Context, msg model.ContactAddedMessage) error {
	cipherBytes, err := base64.StdEncoding.DecodeString(msg.PhoneCipherBase64)
	if err != nil {
		logger.Logger.Error("Failed to decode phone cipher, dropping message",
			zap.String("message_id", msg.MessageID),
			zap.Error(err),
		)
		return nil
	}

	phone, err := utils.DecryptPhone(cipherBytes)
	if err != nil {
		logger.Logger.Error("Failed to decrypt phone, dropping message",
			zap.String("message_id", msg.MessageID),
			zap.Error(err),
		)
		return nil
	}

	normalized, err := utils.NormalizePhone(phone, config.Cfg.DefaultPhoneRegion)
	if err != nil {
		logger.Logger.Warn("Contact phone not sendable, skipping courtesy SMS",
			zap.String("message_id", msg.MessageID),
			zap.Int64("user_public_id", msg.UserPublicID),
			zap.Error(err),
		)
		return nil
	}

	body := fmt.Sprintf(
		"Hello %s, you have been added as an emergency contact for %s on HerShield.",
		msg.ContactName, msg.AccountName,
	)

	if _, err := sms.SendSingle(ctx, normalized, body); err != nil {
		return fmt.Errorf("failed to send courtesy SMS: %w", err)
	}

	logger.Logger.Info("Courtesy SMS sent",
		zap.String("message_id", msg.MessageID),
		zap.Int64("user_public_id", msg.UserPublicID),
	)

	return nil
}

// StartAllConsumers 启动全部消费者，worker 进程入口调用
func StartAllConsumers(ctx context.Context) {
	go func() {
		if err := StartContactAddedConsumer(ctx); err != nil {
			logger.Logger.Error("Contact added consumer stopped", zap.Error(err))
		}
	}()
}
