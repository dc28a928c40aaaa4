package sms

import (
	"context"
	"errors"
	"sync"
)

type MockCall struct {
	Phones []string
	Body   string
}

// MockClient 可配置的短信客户端 mock，实现 Client 接口
type MockClient struct {
	mu    sync.Mutex
	Calls []MockCall

	// FailNext 置为 true 时，下一次调用返回 mock 错误并自动复位
	FailNext bool
}

func NewMockClient() *MockClient {
	return &MockClient{
		Calls: make([]MockCall, 0),
	}
}

func (m *MockClient) SendSingle(ctx context.Context, phone, body string) (*SendResponse, error) {
	return m.record([]string{phone}, body)
}

func (m *MockClient) SendBatch(ctx context.Context, phones []string, body string) (*SendResponse, error) {
	return m.record(phones, body)
}

func (m *MockClient) record(phones []string, body string) (*SendResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, MockCall{
		Phones: phones,
		Body:   body,
	})

	if m.FailNext {
		m.FailNext = false
		return nil, errors.New("mock sms send failure")
	}

	return &SendResponse{
		MessageID:  "mock-message-id",
		StatusCode: "OK",
		Provider:   "mock",
	}, nil
}
