package notification

import (
	"fmt"
	"regexp"
	"sync"
)

// Template is a reusable message with {{placeholder}} slots. SMS templates
// leave Subject empty.
type Template struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Subject string           `json:"subject"`
	Body    string           `json:"body"`
	Type    NotificationType `json:"type"`
}

var placeholderPattern = regexp.MustCompile(`\{\{([a-z_]+)\}\}`)

// TemplateEngine holds the message templates used across the alert,
// insurance, and scheme workflows.
type TemplateEngine struct {
	mu        sync.RWMutex
	templates map[string]Template
}

// NewTemplateEngine returns an engine preloaded with the standard GramCare
// templates.
func NewTemplateEngine() *TemplateEngine {
	e := &TemplateEngine{templates: make(map[string]Template)}
	for _, t := range builtinTemplates {
		e.templates[t.ID] = t
	}
	return e
}

var builtinTemplates = []Template{
	{
		ID:   "emergency-alert",
		Name: "Emergency Alert",
		Body: "EMERGENCY: {{alert_type}} ({{severity}}) reported near you. Open GramCare to respond. Alert {{alert_id}}.",
		Type: TypeSMS,
	},
	{
		ID:   "emergency-dispatch",
		Name: "Emergency Dispatch",
		Body: "DISPATCH REQUEST: {{alert_type}} ({{severity}}) at {{address}}. Alert {{alert_id}}.",
		Type: TypeSMS,
	},
	{
		ID:   "alert-response",
		Name: "Alert Response",
		Body: "Help is on the way: {{responder_name}} is responding to your alert. ETA {{eta}}.",
		Type: TypeSMS,
	},
	{
		ID:   "alert-resolved",
		Name: "Alert Resolved",
		Body: "Your emergency alert has been resolved. Outcome: {{outcome}}.",
		Type: TypeSMS,
	},
	{
		ID:   "claim-filed",
		Name: "Insurance Claim Filed",
		Body: "Your claim {{claim_number}} for Rs {{amount}} has been filed and is under review. Expect a decision in {{processing_days}} days.",
		Type: TypeSMS,
	},
	{
		ID:      "scheme-applied",
		Name:    "Scheme Application Submitted",
		Subject: "Application submitted for {{scheme_name}}",
		Body:    "Dear {{full_name}}, your application for {{scheme_name}} has been submitted. We will notify you when its status changes.",
		Type:    TypeEmail,
	},
	{
		ID:      "welcome",
		Name:    "Welcome",
		Subject: "Welcome to GramCare",
		Body:    "Dear {{full_name}}, your GramCare account is ready. You can now report emergencies, check symptoms, and track your health records.",
		Type:    TypeEmail,
	},
}

// RegisterTemplate adds a template, replacing any existing one with the same ID.
func (e *TemplateEngine) RegisterTemplate(t Template) {
	e.mu.Lock()
	e.templates[t.ID] = t
	e.mu.Unlock()
}

// Lookup returns the template with the given ID.
func (e *TemplateEngine) Lookup(id string) (Template, bool) {
	e.mu.RLock()
	t, ok := e.templates[id]
	e.mu.RUnlock()
	return t, ok
}

// Render fills a template's placeholders from data. Placeholders with no
// matching key stay in the output so a truncated data map is visible in the
// delivered message rather than silently blanked.
func (e *TemplateEngine) Render(id string, data map[string]string) (subject, body string, err error) {
	t, ok := e.Lookup(id)
	if !ok {
		return "", "", fmt.Errorf("template %q not found", id)
	}
	return fill(t.Subject, data), fill(t.Body, data), nil
}

func fill(text string, data map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		key := match[2 : len(match)-2]
		if v, ok := data[key]; ok {
			return v
		}
		return match
	})
}
