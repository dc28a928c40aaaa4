package mail

import (
	"context"
	"errors"
	"sync"
)

type MockCall struct {
	To      string
	Subject string
	Body    string
}

// MockClient 可配置的邮件客户端 mock，实现 Client 接口
type MockClient struct {
	mu    sync.Mutex
	Calls []MockCall

	// FailNext 置为 true 时，下一次调用返回 mock 错误并自动复位
	FailNext bool
	// FailTo 非空时，发往该地址的调用全部失败
	FailTo string
}

func NewMockClient() *MockClient {
	return &MockClient{
		Calls: make([]MockCall, 0),
	}
}

func (m *MockClient) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, MockCall{
		To:      to,
		Subject: subject,
		Body:    body,
	})

	if m.FailNext {
		m.FailNext = false
		return errors.New("mock mail send failure")
	}

	if m.FailTo != "" && to == m.FailTo {
		return errors.New("mock mail send failure")
	}

	return nil
}
