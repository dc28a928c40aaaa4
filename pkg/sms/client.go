package sms

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"HerShield/config"
	"HerShield/pkg/logger"
)

// SendResponse 短信发送响应
type SendResponse struct {
	MessageID  string // 运营商返回的消息ID（Twilio SID / 阿里云 BizId）
	StatusCode string // 运营商返回的状态码
	Provider   string // 服务提供商（"twilio", "aliyun", "mock"）
}

// Client SMS 客户端接口
type Client interface {
	// SendSingle 发送单条短信
	// phone: E.164 格式手机号
	// body: 短信正文
	SendSingle(ctx context.Context, phone, body string) (*SendResponse, error)

	// SendBatch 批量发送短信，同一条正文发往多个号码，对上层是一次调用
	// phones: E.164 格式手机号列表
	// body: 短信正文（所有号码相同）
	SendBatch(ctx context.Context, phones []string, body string) (*SendResponse, error)
}

var (
	smsClient Client
	smsOnce   sync.Once
	smsErr    error
)

// Init 初始化 SMS 客户端
func Init() error {
	smsOnce.Do(func() {
		cfg := config.Cfg

		switch cfg.SMSProvider {
		case "twilio":
			smsClient, smsErr = NewTwilioClient()
		case "aliyun":
			smsClient, smsErr = NewAliyunClient()
		case "mock":
			smsClient = NewMockClient()
		default:
			smsErr = fmt.Errorf("unsupported SMS provider: %s", cfg.SMSProvider)
		}

		if smsErr != nil {
			logger.Logger.Error("Failed to initialize SMS client", zap.Error(smsErr))
			return
		}

		logger.Logger.Info("SMS client initialized successfully",
			zap.String("provider", cfg.SMSProvider),
		)
	})

	return smsErr
}

func GetClient() Client {
	if smsClient == nil {
		panic("SMS client not initialized, call sms.Init() first")
	}
	return smsClient
}

func SendSingle(ctx context.Context, phone, body string) (*SendResponse, error) {
	return GetClient().SendSingle(ctx, phone, body)
}

func SendBatch(ctx context.Context, phones []string, body string) (*SendResponse, error) {
	return GetClient().SendBatch(ctx, phones, body)
}
