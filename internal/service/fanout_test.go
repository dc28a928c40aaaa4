package service

import (
	"context"
	"os"
	"strings"
	"testing"

	"HerShield/internal/model"
	"HerShield/pkg/logger"
	"HerShield/pkg/mail"
	"HerShield/pkg/sms"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func newTestLocation() model.LocationReference {
	return model.NewLocationReference(48.8566, 2.3522)
}

func countByStatus(outcomes []model.RecipientOutcome, channel model.NotificationChannel, status model.OutcomeStatus) int {
	n := 0
	for _, o := range outcomes {
		if o.Channel == channel && o.Status == status {
			n++
		}
	}
	return n
}

func TestBroadcastEmptyContacts(t *testing.T) {
	mailMock := mail.NewMockClient()
	smsMock := sms.NewMockClient()
	svc := NewFanout(mailMock, smsMock, "")

	result := svc.Broadcast(context.Background(), "alice", nil, newTestLocation())

	if result.Overall != model.BroadcastFailed {
		t.Errorf("Overall = %q, want failed", result.Overall)
	}
	if len(result.Outcomes) != 0 {
		t.Errorf("expected no outcomes, got %d", len(result.Outcomes))
	}
	if len(mailMock.Calls) != 0 || len(smsMock.Calls) != 0 {
		t.Error("no channel should be touched for an empty contact list")
	}
	if result.BroadcastID == "" {
		t.Error("broadcast id should be set")
	}
}

func TestBroadcastAllDelivered(t *testing.T) {
	mailMock := mail.NewMockClient()
	smsMock := sms.NewMockClient()
	svc := NewFanout(mailMock, smsMock, "")

	contacts := []model.Contact{
		{Name: "Bob", Email: "bob@example.com", MobileNo: "+16502530000"},
		{Name: "Carol", Email: "carol@example.com", MobileNo: "+442071838750"},
	}

	result := svc.Broadcast(context.Background(), "alice", contacts, newTestLocation())

	if result.Overall != model.BroadcastSucceeded {
		t.Errorf("Overall = %q, want succeeded", result.Overall)
	}

	// 每个联系人一条邮件结果，整批短信一条结果
	if len(result.Outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d: %+v", len(result.Outcomes), result.Outcomes)
	}
	if got := countByStatus(result.Outcomes, model.NotificationChannelEmail, model.OutcomeDelivered); got != 2 {
		t.Errorf("delivered email outcomes = %d, want 2", got)
	}

	if len(mailMock.Calls) != 2 {
		t.Errorf("email calls = %d, want 2", len(mailMock.Calls))
	}
	if len(smsMock.Calls) != 1 {
		t.Fatalf("sms calls = %d, want exactly 1 batched call", len(smsMock.Calls))
	}
	if got := len(smsMock.Calls[0].Phones); got != 2 {
		t.Errorf("batched phones = %d, want 2", got)
	}

	// 所有联系人收到同一份正文
	if mailMock.Calls[0].Body != mailMock.Calls[1].Body {
		t.Error("email body should be built once and shared")
	}
	if mailMock.Calls[0].Subject != "EMERGENCY" {
		t.Errorf("subject = %q, want EMERGENCY", mailMock.Calls[0].Subject)
	}
}

func TestBroadcastInvalidPhoneDoesNotShortCircuit(t *testing.T) {
	mailMock := mail.NewMockClient()
	smsMock := sms.NewMockClient()
	svc := NewFanout(mailMock, smsMock, "")

	contacts := []model.Contact{
		{Name: "Bob", Email: "bob@example.com", MobileNo: "+16502530000"},
		{Name: "Mallory", Email: "mallory@example.com", MobileNo: "not-a-phone"},
		{Name: "Carol", Email: "carol@example.com", MobileNo: "+442071838750"},
	}

	result := svc.Broadcast(context.Background(), "alice", contacts, newTestLocation())

	// 3 封邮件 + 1 条坏号码 + 1 条批量短信
	if len(result.Outcomes) != 5 {
		t.Fatalf("expected 5 outcomes, got %d: %+v", len(result.Outcomes), result.Outcomes)
	}

	// 坏号码只淘汰它自己，邮件照发全员
	if len(mailMock.Calls) != 3 {
		t.Errorf("email calls = %d, want 3", len(mailMock.Calls))
	}
	if len(smsMock.Calls) != 1 {
		t.Fatalf("sms calls = %d, want 1", len(smsMock.Calls))
	}
	if got := len(smsMock.Calls[0].Phones); got != 2 {
		t.Errorf("batched phones = %d, want 2 valid numbers", got)
	}

	if got := countByStatus(result.Outcomes, model.NotificationChannelSMS, model.OutcomeFailed); got != 1 {
		t.Errorf("failed sms outcomes = %d, want 1 validation failure", got)
	}

	if result.Overall != model.BroadcastPartialFailure {
		t.Errorf("Overall = %q, want partial_failure", result.Overall)
	}
}

func TestBroadcastEmailFailureIsIsolated(t *testing.T) {
	mailMock := mail.NewMockClient()
	mailMock.FailTo = "bob@example.com"
	smsMock := sms.NewMockClient()
	svc := NewFanout(mailMock, smsMock, "")

	contacts := []model.Contact{
		{Name: "Bob", Email: "bob@example.com", MobileNo: "+16502530000"},
		{Name: "Carol", Email: "carol@example.com", MobileNo: "+442071838750"},
	}

	result := svc.Broadcast(context.Background(), "alice", contacts, newTestLocation())

	if result.Overall != model.BroadcastPartialFailure {
		t.Errorf("Overall = %q, want partial_failure", result.Overall)
	}
	if got := countByStatus(result.Outcomes, model.NotificationChannelEmail, model.OutcomeFailed); got != 1 {
		t.Errorf("failed email outcomes = %d, want 1", got)
	}
	if got := countByStatus(result.Outcomes, model.NotificationChannelEmail, model.OutcomeDelivered); got != 1 {
		t.Errorf("delivered email outcomes = %d, want 1", got)
	}

	// 邮件失败不影响短信批次
	if len(smsMock.Calls) != 1 {
		t.Errorf("sms calls = %d, want 1", len(smsMock.Calls))
	}
}

func TestBroadcastSMSBatchFailure(t *testing.T) {
	mailMock := mail.NewMockClient()
	smsMock := sms.NewMockClient()
	smsMock.FailNext = true
	svc := NewFanout(mailMock, smsMock, "")

	contacts := []model.Contact{
		{Name: "Bob", Email: "bob@example.com", MobileNo: "+16502530000"},
		{Name: "Carol", Email: "carol@example.com", MobileNo: "+442071838750"},
	}

	result := svc.Broadcast(context.Background(), "alice", contacts, newTestLocation())

	if result.Overall != model.BroadcastPartialFailure {
		t.Errorf("Overall = %q, want partial_failure", result.Overall)
	}

	var batch *model.RecipientOutcome
	for i, o := range result.Outcomes {
		if o.Channel == model.NotificationChannelSMS && len(o.Recipients) > 0 {
			batch = &result.Outcomes[i]
		}
	}
	if batch == nil {
		t.Fatal("missing sms batch outcome")
	}
	if batch.Status != model.OutcomeFailed {
		t.Errorf("batch status = %q, want failed", batch.Status)
	}
	if batch.Reason == "" {
		t.Error("batch failure should carry a reason")
	}
	if len(batch.Recipients) != 2 {
		t.Errorf("batch recipients = %d, want 2", len(batch.Recipients))
	}
}

func TestBroadcastAllChannelsFailed(t *testing.T) {
	mailMock := mail.NewMockClient()
	mailMock.FailTo = "bob@example.com"
	smsMock := sms.NewMockClient()
	smsMock.FailNext = true
	svc := NewFanout(mailMock, smsMock, "")

	contacts := []model.Contact{
		{Name: "Bob", Email: "bob@example.com", MobileNo: "+16502530000"},
	}

	result := svc.Broadcast(context.Background(), "alice", contacts, newTestLocation())

	if result.Overall != model.BroadcastFailed {
		t.Errorf("Overall = %q, want failed", result.Overall)
	}
}

// panicMailClient 模拟渠道实现 panic 的情形
type panicMailClient struct{}

func (panicMailClient) Send(ctx context.Context, to, subject, body string) error {
	panic("smtp client exploded")
}

func TestBroadcastSurvivesChannelPanic(t *testing.T) {
	smsMock := sms.NewMockClient()
	svc := NewFanout(panicMailClient{}, smsMock, "")

	contacts := []model.Contact{
		{Name: "Bob", Email: "bob@example.com", MobileNo: "+16502530000"},
	}

	result := svc.Broadcast(context.Background(), "alice", contacts, newTestLocation())

	// panic 转为该条投递失败，短信批次照常
	if got := countByStatus(result.Outcomes, model.NotificationChannelEmail, model.OutcomeFailed); got != 1 {
		t.Errorf("failed email outcomes = %d, want 1", got)
	}
	if len(smsMock.Calls) != 1 {
		t.Errorf("sms calls = %d, want 1", len(smsMock.Calls))
	}
	if result.Overall != model.BroadcastPartialFailure {
		t.Errorf("Overall = %q, want partial_failure", result.Overall)
	}
}

func TestBroadcastMessageContent(t *testing.T) {
	mailMock := mail.NewMockClient()
	smsMock := sms.NewMockClient()
	svc := NewFanout(mailMock, smsMock, "")

	contacts := []model.Contact{
		{Name: "Bob", Email: "bob@example.com", MobileNo: "+16502530000"},
	}
	location := model.NewLocationReference(12.5, -70.25)

	svc.Broadcast(context.Background(), "alice", contacts, location)

	wantSMS := "Hello, this is an emergency alert for alice. Please check the following link: " + location.URL
	if smsMock.Calls[0].Body != wantSMS {
		t.Errorf("sms body = %q, want %q", smsMock.Calls[0].Body, wantSMS)
	}

	body := mailMock.Calls[0].Body
	for _, fragment := range []string{"alice", location.URL} {
		if !strings.Contains(body, fragment) {
			t.Errorf("email body missing %q", fragment)
		}
	}
}
