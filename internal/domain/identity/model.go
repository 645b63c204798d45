package identity

import (
	"time"

	"github.com/google/uuid"
)

// User maps to the app_user table. One row per account regardless of type.
type User struct {
	ID                uuid.UUID `db:"id" json:"id"`
	Email             string    `db:"email" json:"email"`
	PasswordHash      string    `db:"password_hash" json:"-"`
	UserType          string    `db:"user_type" json:"user_type"` // citizen, asha, admin
	FullName          string    `db:"full_name" json:"full_name"`
	Phone             *string   `db:"phone" json:"phone,omitempty"`
	AbhaID            *string   `db:"abha_id" json:"abha_id,omitempty"`
	District          *string   `db:"district" json:"district,omitempty"`
	Block             *string   `db:"block" json:"block,omitempty"`
	Village           *string   `db:"village" json:"village,omitempty"`
	PreferredLanguage string    `db:"preferred_language" json:"preferred_language"`
	IsActive          bool      `db:"is_active" json:"is_active"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// CitizenProfile maps to the citizen_profile table.
type CitizenProfile struct {
	UserID           uuid.UUID  `db:"user_id" json:"user_id"`
	DateOfBirth      *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Gender           *string    `db:"gender" json:"gender,omitempty"`
	BloodGroup       *string    `db:"blood_group" json:"blood_group,omitempty"`
	EmergencyContact *string    `db:"emergency_contact" json:"emergency_contact,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
}

// ASHAWorker maps to the asha_worker table. An ASHA (Accredited Social Health
// Activist) is the community health worker assigned to one or more villages.
type ASHAWorker struct {
	UserID              uuid.UUID `db:"user_id" json:"user_id"`
	ASHAID              string    `db:"asha_id" json:"asha_id"`
	CertificationNumber *string   `db:"certification_number" json:"certification_number,omitempty"`
	AssignedVillages    []string  `db:"assigned_villages" json:"assigned_villages"`
	TrainingStatus      string    `db:"training_status" json:"training_status"`
	PerformanceScore    float64   `db:"performance_score" json:"performance_score"`
	IsAvailable         bool      `db:"is_available" json:"is_available"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
}

const (
	UserTypeCitizen = "citizen"
	UserTypeASHA    = "asha"
	UserTypeAdmin   = "admin"
)
