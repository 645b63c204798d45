package healthrecord

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gramcare/gramcare/internal/domain/triage"
)

// Record types accepted on create.
const (
	TypeAIDiagnosis  = "ai_diagnosis"
	TypeVitals       = "vitals"
	TypePrescription = "prescription"
	TypeLabReport    = "lab_report"
	TypeVisit        = "visit"
)

func validRecordType(t string) bool {
	switch t {
	case TypeAIDiagnosis, TypeVitals, TypePrescription, TypeLabReport, TypeVisit:
		return true
	}
	return false
}

// HealthRecord is one entry in a patient's longitudinal record.
type HealthRecord struct {
	ID              uuid.UUID          `db:"id" json:"id"`
	PatientID       uuid.UUID          `db:"patient_id" json:"patient_id"`
	RecordType      string             `db:"record_type" json:"record_type"`
	Title           string             `db:"title" json:"title"`
	Description     string             `db:"description" json:"description,omitempty"`
	Vitals          *triage.VitalSigns `db:"vitals" json:"vital_signs,omitempty"`
	RiskLevel       string             `db:"risk_level" json:"risk_level,omitempty"`
	Recommendations []string           `db:"recommendations" json:"recommendations,omitempty"`
	RecordDate      time.Time          `db:"record_date" json:"record_date"`
	CreatedAt       time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `db:"updated_at" json:"updated_at"`
}

// ShareGrant is a time-limited token granting read access to a set of
// records.
type ShareGrant struct {
	Token     string      `db:"token" json:"sharing_token"`
	PatientID uuid.UUID   `db:"patient_id" json:"-"`
	RecordIDs []uuid.UUID `db:"record_ids" json:"record_ids"`
	ExpiresAt time.Time   `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
}

// ListFilter narrows a record listing.
type ListFilter struct {
	RecordType string
	From       *time.Time
	To         *time.Time
}

// TypeCount is one row of the per-type activity breakdown.
type TypeCount struct {
	RecordType string    `json:"type"`
	Count      int       `json:"count"`
	LatestDate time.Time `json:"latest_date"`
}

// RiskCount is one row of the risk distribution.
type RiskCount struct {
	RiskLevel string `json:"risk_level"`
	Count     int    `json:"count"`
}

// Summary aggregates a patient's recent record activity.
type Summary struct {
	LatestVitals     *VitalsSnapshot `json:"latest_vitals"`
	CurrentRisk      string          `json:"current_risk"`
	RiskDistribution []RiskCount     `json:"risk_distribution"`
	RecentActivity   RecentActivity  `json:"recent_activity"`
	GeneratedAt      time.Time       `json:"generated_at"`
}

// VitalsSnapshot is the most recent measurement set with a one-line summary.
type VitalsSnapshot struct {
	Vitals     triage.VitalSigns `json:"vital_signs"`
	Summary    string            `json:"summary"`
	RecordedAt time.Time         `json:"recorded_at"`
}

// RecentActivity covers the trailing thirty days.
type RecentActivity struct {
	RecordsLast30Days int         `json:"records_last_30_days"`
	RecordTypes       []TypeCount `json:"record_types"`
}

// VitalsSummary renders the measured values in the conventional clinical
// shorthand, e.g. "BP: 120/80 mmHg, HR: 72 bpm".
func VitalsSummary(v triage.VitalSigns) string {
	var parts []string
	if v.Systolic != nil && v.Diastolic != nil {
		parts = append(parts, fmt.Sprintf("BP: %d/%d mmHg", *v.Systolic, *v.Diastolic))
	}
	if v.HeartRate != nil {
		parts = append(parts, fmt.Sprintf("HR: %d bpm", *v.HeartRate))
	}
	if v.Temperature != nil {
		parts = append(parts, fmt.Sprintf("Temp: %.1f°F", *v.Temperature))
	}
	if v.Hemoglobin != nil {
		parts = append(parts, fmt.Sprintf("Hb: %.1f g/dL", *v.Hemoglobin))
	}
	if len(parts) == 0 {
		return "No vital signs recorded"
	}
	return strings.Join(parts, ", ")
}
