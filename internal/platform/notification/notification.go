// Package notification delivers SMS and email messages for the alert,
// insurance, and scheme workflows. Deliveries are recorded in memory so
// operators can inspect and retry failures through the HTTP endpoints.
package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// NotificationType is the delivery channel.
type NotificationType string

const (
	TypeEmail NotificationType = "email"
	TypeSMS   NotificationType = "sms"
)

// Status tracks a notification through its delivery lifecycle.
type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

// Notification is one outbound message and its delivery record.
type Notification struct {
	ID           string            `json:"id"`
	Type         NotificationType  `json:"type"`
	Recipient    string            `json:"recipient"`
	Subject      string            `json:"subject,omitempty"`
	Body         string            `json:"body"`
	TemplateID   string            `json:"template_id,omitempty"`
	TemplateData map[string]string `json:"template_data,omitempty"`
	Status       Status            `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	SentAt       *time.Time        `json:"sent_at,omitempty"`
	Error        string            `json:"error,omitempty"`
}

// EmailSender delivers email messages.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// SMSSender delivers SMS messages.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// Stats summarizes the delivery ledger.
type Stats struct {
	Total   int `json:"total"`
	Pending int `json:"pending"`
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
}

// NotificationManager routes messages to the right sender and keeps the
// delivery ledger. The ledger is in-memory and per-process; district
// deployments run a single server instance.
type NotificationManager struct {
	email     EmailSender
	sms       SMSSender
	templates *TemplateEngine

	mu      sync.RWMutex
	byID    map[string]*Notification
	ordered []*Notification // creation order, oldest first
}

func NewNotificationManager(email EmailSender, sms SMSSender, tpl *TemplateEngine) *NotificationManager {
	return &NotificationManager{
		email:     email,
		sms:       sms,
		templates: tpl,
		byID:      make(map[string]*Notification),
	}
}

// deliver pushes the message out the channel named by n.Type and stamps the
// outcome onto the record. Callers hold no locks.
func (m *NotificationManager) deliver(ctx context.Context, n *Notification) error {
	var err error
	switch n.Type {
	case TypeEmail:
		err = m.email.SendEmail(ctx, n.Recipient, n.Subject, n.Body)
	case TypeSMS:
		err = m.sms.SendSMS(ctx, n.Recipient, n.Body)
	default:
		err = fmt.Errorf("unsupported notification type %q", n.Type)
	}

	m.mu.Lock()
	if err != nil {
		n.Status = StatusFailed
		n.Error = err.Error()
	} else {
		now := time.Now().UTC()
		n.Status = StatusSent
		n.SentAt = &now
		n.Error = ""
	}
	m.mu.Unlock()
	return err
}

// Send dispatches a notification and records the outcome. The record is kept
// even when delivery fails, so the failure can be inspected and retried.
func (m *NotificationManager) Send(ctx context.Context, n *Notification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	n.CreatedAt = time.Now().UTC()
	n.Status = StatusPending

	m.mu.Lock()
	m.byID[n.ID] = n
	m.ordered = append(m.ordered, n)
	m.mu.Unlock()

	return m.deliver(ctx, n)
}

// SendFromTemplate renders the named template and sends the result on the
// template's channel. The notification record is returned even on delivery
// failure; it is nil only when the template does not exist.
func (m *NotificationManager) SendFromTemplate(ctx context.Context, templateID string, data map[string]string, recipient string) (*Notification, error) {
	tpl, ok := m.templates.Lookup(templateID)
	if !ok {
		return nil, fmt.Errorf("template %q not found", templateID)
	}
	subject, body, err := m.templates.Render(templateID, data)
	if err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}

	n := &Notification{
		Type:         tpl.Type,
		Recipient:    recipient,
		Subject:      subject,
		Body:         body,
		TemplateID:   templateID,
		TemplateData: data,
	}
	if err := m.Send(ctx, n); err != nil {
		return n, err
	}
	return n, nil
}

// Get returns the notification with the given ID.
func (m *NotificationManager) Get(id string) (*Notification, error) {
	m.mu.RLock()
	n, ok := m.byID[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("notification %q not found", id)
	}
	return n, nil
}

// ListByRecipient returns the recipient's notifications, newest first, up to
// limit.
func (m *NotificationManager) ListByRecipient(recipient string, limit int) []*Notification {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*Notification
	for i := len(m.ordered) - 1; i >= 0 && len(result) < limit; i-- {
		if m.ordered[i].Recipient == recipient {
			result = append(result, m.ordered[i])
		}
	}
	return result
}

// Retry re-attempts delivery of a failed notification. Notifications in any
// other status are rejected.
func (m *NotificationManager) Retry(ctx context.Context, id string) error {
	m.mu.RLock()
	n, ok := m.byID[id]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("notification %q not found", id)
	}
	if n.Status != StatusFailed {
		return fmt.Errorf("notification %q is %s, only failed notifications can be retried", id, n.Status)
	}
	return m.deliver(ctx, n)
}

// Stats counts ledger entries by status.
func (m *NotificationManager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := Stats{Total: len(m.ordered)}
	for _, n := range m.ordered {
		switch n.Status {
		case StatusPending:
			s.Pending++
		case StatusSent:
			s.Sent++
		case StatusFailed:
			s.Failed++
		}
	}
	return s
}
