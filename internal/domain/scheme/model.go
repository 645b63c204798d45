package scheme

import (
	"time"

	"github.com/google/uuid"
)

// Eligibility statuses.
const (
	EligibilityUnknown  = "unknown"
	EligibilityEligible = "eligible"
	EligibilityDenied   = "not_eligible"
)

// Application statuses.
const (
	StatusPending   = "pending"
	StatusSubmitted = "submitted"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
)

// Application is a citizen's record against one scheme. At most one row per
// (user, scheme); eligibility checks and applications both land here.
type Application struct {
	ID                 uuid.UUID              `db:"id" json:"id"`
	UserID             uuid.UUID              `db:"user_id" json:"user_id"`
	SchemeName         string                 `db:"scheme_name" json:"scheme_name"`
	SchemeID           string                 `db:"scheme_id" json:"scheme_id,omitempty"`
	EligibilityStatus  string                 `db:"eligibility_status" json:"eligibility_status"`
	ApplicationStatus  string                 `db:"application_status" json:"application_status"`
	BenefitsAvailed    map[string]interface{} `db:"benefits_availed" json:"benefits_availed,omitempty"`
	DocumentsSubmitted map[string]interface{} `db:"documents_submitted" json:"documents_submitted,omitempty"`
	ApprovedAmount     float64                `db:"approved_amount" json:"approved_amount"`
	CreatedAt          time.Time              `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time              `db:"updated_at" json:"updated_at"`
}
