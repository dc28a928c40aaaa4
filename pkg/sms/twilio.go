package sms

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"HerShield/config"
	"HerShield/pkg/errors"
	"HerShield/pkg/logger"
)

// TwilioClient 通过 Twilio REST API 发送短信
type TwilioClient struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioClient() (*TwilioClient, error) {
	cfg := config.Cfg

	if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" {
		return nil, fmt.Errorf("twilio credentials are required")
	}
	if cfg.TwilioPhoneNumber == "" {
		return nil, fmt.Errorf("twilio sender phone number is required")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})

	return &TwilioClient{
		client: client,
		from:   cfg.TwilioPhoneNumber,
	}, nil
}

// SendSingle 发送单条短信
func (c *TwilioClient) SendSingle(ctx context.Context, phone, body string) (*SendResponse, error) {
	params := &twilioapi.CreateMessageParams{}
	params.SetTo(phone)
	params.SetFrom(c.from)
	params.SetBody(body)

	resp, err := c.client.Api.CreateMessage(params)
	if err != nil {
		logger.Logger.Error("Failed to send SMS",
			zap.String("phone", phone),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to send SMS: %w", err)
	}

	response := &SendResponse{Provider: "twilio"}
	if resp.Sid != nil {
		response.MessageID = *resp.Sid
	}
	if resp.Status != nil {
		response.StatusCode = *resp.Status
	}

	logger.Logger.Debug("SMS sent successfully",
		zap.String("phone", phone),
		zap.String("message_id", response.MessageID),
	)

	return response, nil
}

// SendBatch 批量发送短信
// Twilio 没有批量接口，逐号投递；任一号码失败则整批视为失败，
// 调用方按一次批量调用记录结果。
func (c *TwilioClient) SendBatch(ctx context.Context, phones []string, body string) (*SendResponse, error) {
	if len(phones) == 0 {
		return nil, errors.ErrPhonesListEmpty
	}

	var last *SendResponse
	for _, phone := range phones {
		resp, err := c.SendSingle(ctx, phone, body)
		if err != nil {
			logger.Logger.Error("Failed to send batch SMS",
				zap.Int("count", len(phones)),
				zap.String("failed_phone", phone),
				zap.Error(err),
			)
			return nil, fmt.Errorf("batch SMS send failed at %s: %w", phone, err)
		}
		last = resp
	}

	logger.Logger.Info("Batch SMS sent successfully",
		zap.Int("count", len(phones)),
	)

	return last, nil
}
