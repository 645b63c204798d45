package notification

import (
	"context"
	"sync"
)

// EmailCall is one recorded SendEmail invocation.
type EmailCall struct {
	To      string
	Subject string
	Body    string
}

// MockEmailSender records calls instead of sending. Setting Err makes every
// call fail with that error.
type MockEmailSender struct {
	mu    sync.Mutex
	calls []EmailCall
	Err   error
}

func (m *MockEmailSender) SendEmail(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, EmailCall{To: to, Subject: subject, Body: body})
	return m.Err
}

func (m *MockEmailSender) Calls() []EmailCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]EmailCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// SMSCall is one recorded SendSMS invocation.
type SMSCall struct {
	To   string
	Body string
}

// MockSMSSender records calls instead of sending. It doubles as the SMS
// backend when no gateway is configured, so local deployments still work.
type MockSMSSender struct {
	mu    sync.Mutex
	calls []SMSCall
	Err   error
}

func (m *MockSMSSender) SendSMS(_ context.Context, to, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, SMSCall{To: to, Body: body})
	return m.Err
}

func (m *MockSMSSender) Calls() []SMSCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SMSCall, len(m.calls))
	copy(out, m.calls)
	return out
}
