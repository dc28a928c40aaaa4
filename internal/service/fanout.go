package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"HerShield/config"
	"HerShield/internal/model"
	"HerShield/pkg/logger"
	"HerShield/pkg/mail"
	pkgmetrics "HerShield/pkg/metrics"
	"HerShield/pkg/sms"
	"HerShield/utils"
)

var (
	fanoutService *FanoutService
	fanoutOnce    sync.Once
)

func Fanout() *FanoutService {
	fanoutOnce.Do(func() {
		fanoutService = &FanoutService{
			email:         mail.GetClient(),
			sms:           sms.GetClient(),
			defaultRegion: config.Cfg.DefaultPhoneRegion,
		}
	})

	return fanoutService
}

// NewFanout 注入渠道客户端，测试用
func NewFanout(email mail.Client, smsClient sms.Client, defaultRegion string) *FanoutService {
	return &FanoutService{
		email:         email,
		sms:           smsClient,
		defaultRegion: defaultRegion,
	}
}

// FanoutService 把一次紧急广播扇出到全部联系人的邮件和短信渠道。
// 各条投递互相独立，单条失败只计入结果，不中断广播，也不重试。
type FanoutService struct {
	email         mail.Client
	sms           sms.Client
	defaultRegion string
}

// Broadcast 向联系人列表广播紧急消息。
//
// 邮件逐个联系人发送，不做手机号过滤；短信先逐个校验手机号，
// 校验失败的号码单独记失败，剩余号码合成一次批量调用。
// 正文只构造一次，所有联系人收到相同内容。
// 联系人列表为空时不触碰任何渠道，整体状态为 failed。
func (s *FanoutService) Broadcast(
	ctx context.Context,
	ownerName string,
	contacts []model.Contact,
	location model.LocationReference,
) *model.FanoutResult {
	result := &model.FanoutResult{
		BroadcastID: uuid.NewString(),
		Outcomes:    make([]model.RecipientOutcome, 0, len(contacts)+1),
	}

	if len(contacts) == 0 {
		result.Finalize()
		logger.Logger.Warn("Broadcast requested with no contacts",
			zap.String("broadcast_id", result.BroadcastID),
		)
		return result
	}

	emailSubject := "EMERGENCY"
	emailBody := buildEmergencyEmailBody(ownerName, location.URL)
	smsBody := buildEmergencySMSBody(ownerName, location.URL)

	// 手机号逐个校验，坏号码只淘汰它自己
	validPhones := make([]string, 0, len(contacts))
	for _, contact := range contacts {
		phone, err := utils.NormalizePhone(contact.MobileNo, s.defaultRegion)
		if err != nil {
			result.Record(model.RecipientOutcome{
				Channel: model.NotificationChannelSMS,
				Status:  model.OutcomeFailed,
				Name:    contact.Name,
				Address: contact.MobileNo,
				Reason:  err.Error(),
			})
			continue
		}
		validPhones = append(validPhones, phone)
	}

	// 邮件不依赖手机号，发给所有联系人
	for _, contact := range contacts {
		err := s.safeSendEmail(ctx, contact.Email, emailSubject, emailBody)

		outcome := model.RecipientOutcome{
			Channel: model.NotificationChannelEmail,
			Name:    contact.Name,
			Address: contact.Email,
		}
		if err != nil {
			outcome.Status = model.OutcomeFailed
			outcome.Reason = err.Error()
			logger.Logger.Error("Emergency email failed",
				zap.String("broadcast_id", result.BroadcastID),
				zap.String("contact", contact.Name),
				zap.Error(err),
			)
		} else {
			outcome.Status = model.OutcomeDelivered
		}
		result.Record(outcome)
		pkgmetrics.RecordDelivery(ctx, string(model.NotificationChannelEmail), err == nil)
	}

	// 合法号码合成一次批量短信，整批一条结果
	if len(validPhones) > 0 {
		err := s.safeSendSMSBatch(ctx, validPhones, smsBody)

		outcome := model.RecipientOutcome{
			Channel:    model.NotificationChannelSMS,
			Recipients: validPhones,
		}
		if err != nil {
			outcome.Status = model.OutcomeFailed
			outcome.Reason = err.Error()
			logger.Logger.Error("Emergency SMS batch failed",
				zap.String("broadcast_id", result.BroadcastID),
				zap.Int("count", len(validPhones)),
				zap.Error(err),
			)
		} else {
			outcome.Status = model.OutcomeDelivered
		}
		result.Record(outcome)
		pkgmetrics.RecordDelivery(ctx, string(model.NotificationChannelSMS), err == nil)
	}

	result.Finalize()
	pkgmetrics.RecordBroadcast(ctx, string(result.Overall))

	logger.Logger.Info("Emergency broadcast finished",
		zap.String("broadcast_id", result.BroadcastID),
		zap.Int("contacts", len(contacts)),
		zap.Int("valid_phones", len(validPhones)),
		zap.String("overall", string(result.Overall)),
	)

	return result
}

// safeSendEmail 渠道客户端 panic 时转为 error，广播流程自身不向调用方抛 panic
func (s *FanoutService) safeSendEmail(ctx context.Context, to, subject, body string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("email channel panic: %v", r)
		}
	}()

	return s.email.Send(ctx, to, subject, body)
}

func (s *FanoutService) safeSendSMSBatch(ctx context.Context, phones []string, body string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sms channel panic: %v", r)
		}
	}()

	_, err = s.sms.SendBatch(ctx, phones, body)
	return err
}

func buildEmergencyEmailBody(ownerName, link string) string {
	return fmt.Sprintf(`<html>
<body>
<h2>EMERGENCY!!!</h2>
<p>This is an emergency alert for <b>%s</b>.</p>
<p>Last known location: <a href="%s">%s</a></p>
<p>Please reach out to them immediately.</p>
</body>
</html>`, ownerName, link, link)
}

func buildEmergencySMSBody(ownerName, link string) string {
	return fmt.Sprintf(
		"Hello, this is an emergency alert for %s. Please check the following link: %s",
		ownerName, link,
	)
}
