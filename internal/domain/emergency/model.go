package emergency

import (
	"time"

	"github.com/google/uuid"
)

// Alert lifecycle. Transitions are monotonic: active → responding → resolved.
// Resolution is also allowed straight from active (the reporter can close an
// alert nobody responded to). There is no cancelled state.
const (
	StatusActive     = "active"
	StatusResponding = "responding"
	StatusResolved   = "resolved"
)

const (
	TypeMedical   = "medical"
	TypeAccident  = "accident"
	TypeBreathing = "breathing"
	TypePregnancy = "pregnancy"
	TypeOther     = "other"
)

const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Location is an optional coordinate attached to an alert.
type Location struct {
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
	Address   string  `json:"address,omitempty"`
}

// Alert maps to the emergency_alert table.
type Alert struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	CitizenID      uuid.UUID  `db:"citizen_id" json:"citizen_id"`
	AlertType      string     `db:"alert_type" json:"alert_type"`
	Severity       string     `db:"severity" json:"severity"`
	Location       *Location  `db:"location" json:"location,omitempty"`
	Description    string     `db:"description" json:"description"`
	Status         string     `db:"status" json:"status"`
	ResponderID    *uuid.UUID `db:"responder_id" json:"responder_id,omitempty"`
	ResponseTime   *time.Time `db:"response_time" json:"response_time,omitempty"`
	ResolutionTime *time.Time `db:"resolution_time" json:"resolution_time,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}

// Reporter is the citizen identity the workflow needs: who they are, where
// they live, and whom to reach.
type Reporter struct {
	UserID           uuid.UUID
	FullName         string
	Village          string
	Phone            string
	EmergencyContact string
}

// Candidate is a community health worker considered for dispatch.
type Candidate struct {
	UserID   uuid.UUID `json:"user_id"`
	ASHAID   string    `json:"asha_id"`
	FullName string    `json:"name"`
	Phone    string    `json:"phone,omitempty"`
}

// ResponsePlan is the instructional plan returned to the reporter on create.
type ResponsePlan struct {
	Steps                 []string `json:"steps"`
	EmergencyNumber       string   `json:"emergency_number"`
	EstimatedResponseTime string   `json:"estimated_response_time"`
	AdditionalResources   []string `json:"additional_resources,omitempty"`
}

// Contact is a public emergency phone line.
type Contact struct {
	Name        string `json:"name"`
	Number      string `json:"number"`
	Description string `json:"description,omitempty"`
}

// CreateResult is returned from CreateAlert.
type CreateResult struct {
	AlertID           uuid.UUID    `json:"alert_id"`
	Status            string       `json:"status"`
	NotificationsSent []string     `json:"notifications_sent"`
	ResponsePlan      ResponsePlan `json:"response_plan"`
	EmergencyContacts []Contact    `json:"emergency_contacts"`
	CreatedAt         time.Time    `json:"timestamp"`
}

// CitizenNotification is the payload synthesised for the reporter when a
// worker accepts the alert. Delivery is handled elsewhere.
type CitizenNotification struct {
	Message          string `json:"message"`
	EstimatedArrival string `json:"estimated_arrival"`
	Contact          string `json:"contact"`
}

// RespondResult is returned from RespondToAlert.
type RespondResult struct {
	AlertID             uuid.UUID           `json:"alert_id"`
	Responder           Candidate           `json:"responder"`
	CitizenNotification CitizenNotification `json:"citizen_notification"`
}

// Resolution summarises a resolved alert.
type Resolution struct {
	ResolvedBy      string    `json:"resolved_by"` // citizen or asha
	ResolverName    string    `json:"resolver_name"`
	ResolutionNotes string    `json:"resolution_notes"`
	Outcome         string    `json:"outcome"`
	ResolutionTime  time.Time `json:"resolution_time"`
}

func validAlertType(t string) bool {
	switch t {
	case TypeMedical, TypeAccident, TypeBreathing, TypePregnancy, TypeOther:
		return true
	}
	return false
}

func validSeverity(s string) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}
