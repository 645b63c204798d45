package healthrecord

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gramcare/gramcare/internal/domain/triage"
)

// triageSink files triage output as health records.
type triageSink struct {
	repo  Repository
	clock Clock
}

// NewTriageSink adapts the record repository to the triage record sink.
func NewTriageSink(repo Repository, clock Clock) triage.RecordSink {
	if clock == nil {
		clock = time.Now
	}
	return &triageSink{repo: repo, clock: clock}
}

func (s *triageSink) Save(ctx context.Context, rec *triage.TriageRecord) (uuid.UUID, error) {
	hr := &HealthRecord{
		PatientID:       rec.PatientID,
		RecordType:      rec.RecordType,
		Title:           rec.Title,
		Description:     rec.Description,
		Vitals:          rec.Vitals,
		RiskLevel:       rec.RiskLevel,
		Recommendations: rec.Recommendations,
		RecordDate:      s.clock(),
	}
	if err := s.repo.Create(ctx, hr); err != nil {
		return uuid.Nil, err
	}
	return hr.ID, nil
}
