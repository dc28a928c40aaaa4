package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"

	"HerShield/config"
	"HerShield/pkg/logger"
)

// sendMailHook 供测试替换 SMTP 发送行为
var sendMailHook = smtp.SendMail

// SMTPClient 通过 SMTP + STARTTLS 发送邮件
type SMTPClient struct {
	host     string
	port     int
	user     string
	password string
	from     string
	fromName string
}

func NewSMTPClient() *SMTPClient {
	cfg := config.Cfg
	return &SMTPClient{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.SenderAddress(),
		fromName: cfg.MailFromName,
	}
}

// Send 发送一封 HTML 邮件
func (c *SMTPClient) Send(ctx context.Context, to, subject, htmlBody string) error {
	addr := fmt.Sprintf("%s:%d", c.host, c.port)
	auth := smtp.PlainAuth("", c.user, c.password, c.host)

	header := fmt.Sprintf(
		"From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n",
		c.fromName, c.from, to, subject,
	)

	if err := sendMailHook(addr, auth, c.from, []string{to}, []byte(header+htmlBody)); err != nil {
		logger.Logger.Error("Failed to send email",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.Logger.Debug("Email sent successfully",
		zap.String("to", to),
		zap.String("subject", subject),
	)

	return nil
}
