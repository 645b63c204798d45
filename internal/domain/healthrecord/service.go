package healthrecord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrNotFound     = errors.New("health record not found")
	ErrShareExpired = errors.New("share link expired")
)

// Shares default to 24 hours of access.
const defaultShareDuration = 24 * time.Hour

type Clock func() time.Time

type Service struct {
	repo  Repository
	clock Clock
	log   zerolog.Logger
}

func NewService(repo Repository, clock Clock, log zerolog.Logger) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{repo: repo, clock: clock, log: log}
}

// CreateRecordRequest carries a manually filed record.
type CreateRecordRequest struct {
	RecordType      string     `json:"record_type"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	RiskLevel       string     `json:"risk_level"`
	Recommendations []string   `json:"recommendations"`
	RecordDate      *time.Time `json:"record_date,omitempty"`
}

func (s *Service) CreateRecord(ctx context.Context, patientID uuid.UUID, req *CreateRecordRequest) (*HealthRecord, error) {
	if req.RecordType == "" {
		return nil, fmt.Errorf("record_type is required")
	}
	if !validRecordType(req.RecordType) {
		return nil, fmt.Errorf("invalid record_type %q", req.RecordType)
	}
	if req.Title == "" {
		return nil, fmt.Errorf("title is required")
	}

	recordDate := s.clock()
	if req.RecordDate != nil {
		recordDate = *req.RecordDate
	}
	rec := &HealthRecord{
		PatientID:       patientID,
		RecordType:      req.RecordType,
		Title:           req.Title,
		Description:     req.Description,
		RiskLevel:       req.RiskLevel,
		Recommendations: req.Recommendations,
		RecordDate:      recordDate,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}
	return rec, nil
}

// GetRecord returns a record owned by the patient. A record belonging to
// someone else is indistinguishable from a missing one.
func (s *Service) GetRecord(ctx context.Context, patientID, recordID uuid.UUID) (*HealthRecord, error) {
	rec, err := s.repo.GetByID(ctx, recordID)
	if err != nil || rec.PatientID != patientID {
		return nil, ErrNotFound
	}
	return rec, nil
}

func (s *Service) UpdateRecord(ctx context.Context, patientID, recordID uuid.UUID, req *CreateRecordRequest) (*HealthRecord, error) {
	rec, err := s.GetRecord(ctx, patientID, recordID)
	if err != nil {
		return nil, err
	}
	if req.Title != "" {
		rec.Title = req.Title
	}
	if req.Description != "" {
		rec.Description = req.Description
	}
	if req.RiskLevel != "" {
		rec.RiskLevel = req.RiskLevel
	}
	if req.Recommendations != nil {
		rec.Recommendations = req.Recommendations
	}
	if req.RecordDate != nil {
		rec.RecordDate = *req.RecordDate
	}
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, fmt.Errorf("update record: %w", err)
	}
	return rec, nil
}

func (s *Service) DeleteRecord(ctx context.Context, patientID, recordID uuid.UUID) error {
	if _, err := s.GetRecord(ctx, patientID, recordID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, recordID)
}

func (s *Service) ListRecords(ctx context.Context, patientID uuid.UUID, filter ListFilter, limit, offset int) ([]*HealthRecord, int, error) {
	return s.repo.List(ctx, patientID, filter, limit, offset)
}

// GetSummary aggregates latest vitals, risk distribution, and the last
// thirty days of activity.
func (s *Service) GetSummary(ctx context.Context, patientID uuid.UUID) (*Summary, error) {
	now := s.clock()
	summary := &Summary{CurrentRisk: "unknown", GeneratedAt: now}

	if latest, err := s.repo.LatestWithVitals(ctx, patientID); err == nil && latest.Vitals != nil {
		summary.LatestVitals = &VitalsSnapshot{
			Vitals:     *latest.Vitals,
			Summary:    VitalsSummary(*latest.Vitals),
			RecordedAt: latest.RecordDate,
		}
		if latest.RiskLevel != "" {
			summary.CurrentRisk = latest.RiskLevel
		}
	}

	distribution, err := s.repo.RiskDistribution(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("risk distribution: %w", err)
	}
	summary.RiskDistribution = distribution

	activity, err := s.repo.ActivitySince(ctx, patientID, now.AddDate(0, 0, -30))
	if err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}
	total := 0
	for _, tc := range activity {
		total += tc.Count
	}
	summary.RecentActivity = RecentActivity{RecordsLast30Days: total, RecordTypes: activity}

	return summary, nil
}

// ShareRecords issues an opaque token granting time-limited read access to
// the given records. All records must belong to the caller.
func (s *Service) ShareRecords(ctx context.Context, patientID uuid.UUID, recordIDs []uuid.UUID, duration time.Duration) (*ShareGrant, error) {
	if len(recordIDs) == 0 {
		return nil, fmt.Errorf("record_ids are required")
	}
	for _, id := range recordIDs {
		if _, err := s.GetRecord(ctx, patientID, id); err != nil {
			return nil, err
		}
	}
	if duration <= 0 {
		duration = defaultShareDuration
	}

	grant := &ShareGrant{
		Token:     uuid.NewString(),
		PatientID: patientID,
		RecordIDs: recordIDs,
		ExpiresAt: s.clock().Add(duration),
	}
	if err := s.repo.CreateShare(ctx, grant); err != nil {
		return nil, fmt.Errorf("create share: %w", err)
	}
	return grant, nil
}

// ResolveShare returns the shared records for an unexpired token.
func (s *Service) ResolveShare(ctx context.Context, token string) ([]*HealthRecord, error) {
	grant, err := s.repo.GetShare(ctx, token)
	if err != nil {
		return nil, ErrNotFound
	}
	if s.clock().After(grant.ExpiresAt) {
		return nil, ErrShareExpired
	}
	var records []*HealthRecord
	for _, id := range grant.RecordIDs {
		rec, err := s.repo.GetByID(ctx, id)
		if err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
