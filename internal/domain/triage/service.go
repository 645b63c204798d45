package triage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TriageRecord is what the service hands to the health record store after an
// analysis.
type TriageRecord struct {
	PatientID       uuid.UUID
	RecordType      string
	Title           string
	Description     string
	Vitals          *VitalSigns
	RiskLevel       string
	Recommendations []string
}

// RecordSink persists triage output into the patient's longitudinal record.
type RecordSink interface {
	Save(ctx context.Context, rec *TriageRecord) (uuid.UUID, error)
}

type Clock func() time.Time

type Service struct {
	records RecordSink
	clock   Clock
	log     zerolog.Logger
}

func NewService(records RecordSink, clock Clock, log zerolog.Logger) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{records: records, clock: clock, log: log}
}

// AnalyzeSymptomsRequest accepts either pre-extracted symptom names or free
// text to run keyword extraction over.
type AnalyzeSymptomsRequest struct {
	Symptoms   []string    `json:"symptoms"`
	Text       string      `json:"text"`
	Language   string      `json:"language"`
	VitalSigns *VitalSigns `json:"vital_signs,omitempty"`
}

// AnalysisResult is the scripted diagnosis outcome.
type AnalysisResult struct {
	RecordID                   uuid.UUID             `json:"health_record_id,omitempty"`
	Symptoms                   []string              `json:"symptoms"`
	Suggestions                []ConditionSuggestion `json:"possible_conditions"`
	RiskLevel                  string                `json:"risk_level"`
	RiskFactors                []string              `json:"risk_factors"`
	Recommendations            []string              `json:"recommendations"`
	RequiresImmediateAttention bool                  `json:"requires_immediate_attention"`
	AnalyzedAt                 time.Time             `json:"timestamp"`
}

// AnalyzeSymptoms runs keyword matching against the condition base, folds in
// any supplied vitals, and files the outcome as an ai_diagnosis record.
// Record persistence is best-effort: a storage failure is logged, not
// returned.
func (s *Service) AnalyzeSymptoms(ctx context.Context, patientID uuid.UUID, req *AnalyzeSymptomsRequest) (*AnalysisResult, error) {
	symptoms := req.Symptoms
	if len(symptoms) == 0 && req.Text != "" {
		symptoms = ExtractSymptoms(req.Text, req.Language).PrimarySymptoms
	}
	if len(symptoms) == 0 {
		return nil, fmt.Errorf("symptoms are required")
	}

	suggestions := SuggestConditions(symptoms)

	level := RiskNormal
	factors := []string{}
	if req.VitalSigns != nil {
		assessment := AssessVitals(*req.VitalSigns)
		level = assessment.RiskLevel
		factors = assessment.RiskFactors
	}
	if len(suggestions) > 0 {
		switch top := suggestions[0]; top.Condition {
		case "anemia", "hypertension", "diabetes":
			if top.Confidence > 0.8 {
				level = escalate(level, RiskHigh)
			} else {
				level = escalate(level, RiskMedium)
			}
		}
	}

	result := &AnalysisResult{
		Symptoms:                   symptoms,
		Suggestions:                suggestions,
		RiskLevel:                  level,
		RiskFactors:                factors,
		Recommendations:            RecommendationsFor(level),
		RequiresImmediateAttention: level == RiskHigh || level == RiskCritical,
		AnalyzedAt:                 s.clock(),
	}

	recordID, err := s.records.Save(ctx, &TriageRecord{
		PatientID:       patientID,
		RecordType:      "ai_diagnosis",
		Title:           "AI Symptom Analysis",
		Description:     describeAnalysis(symptoms, suggestions),
		Vitals:          req.VitalSigns,
		RiskLevel:       level,
		Recommendations: result.Recommendations,
	})
	if err != nil {
		s.log.Warn().Err(err).Str("patient_id", patientID.String()).Msg("ai diagnosis record save failed")
	} else {
		result.RecordID = recordID
	}
	return result, nil
}

func describeAnalysis(symptoms []string, suggestions []ConditionSuggestion) string {
	desc := "Symptoms: " + strings.Join(symptoms, ", ")
	if len(suggestions) > 0 {
		desc += fmt.Sprintf("; likely condition: %s (%.0f%%)",
			suggestions[0].Condition, suggestions[0].Confidence*100)
	}
	return desc
}

// DeviceReadingResult reports the assessment of a single device measurement.
type DeviceReadingResult struct {
	RecordID        uuid.UUID  `json:"vital_record_id,omitempty"`
	ProcessedVitals VitalSigns `json:"processed_vitals"`
	Assessment      Assessment `json:"risk_assessment"`
	Recommendations []string   `json:"recommendations"`
	Timestamp       time.Time  `json:"timestamp"`
}

// ProcessDeviceReading validates a typed device payload, assesses the folded
// vitals, and files a vitals record.
func (s *Service) ProcessDeviceReading(ctx context.Context, patientID uuid.UUID, reading *DeviceReading) (*DeviceReadingResult, error) {
	if err := reading.Validate(); err != nil {
		return nil, err
	}

	vitals := reading.Vitals()
	assessment := AssessVitals(vitals)
	assessment.AssessedAt = s.clock()
	recommendations := RecommendationsFor(assessment.RiskLevel)

	result := &DeviceReadingResult{
		ProcessedVitals: vitals,
		Assessment:      assessment,
		Recommendations: recommendations,
		Timestamp:       s.clock(),
	}

	recordID, err := s.records.Save(ctx, &TriageRecord{
		PatientID:       patientID,
		RecordType:      "vitals",
		Title:           "Device Reading: " + reading.DeviceType,
		Description:     reading.Summary(),
		Vitals:          &vitals,
		RiskLevel:       assessment.RiskLevel,
		Recommendations: recommendations,
	})
	if err != nil {
		s.log.Warn().Err(err).Str("patient_id", patientID.String()).Msg("vitals record save failed")
	} else {
		result.RecordID = recordID
	}
	return result, nil
}

// VoiceAnalysisResult pairs the transcription with the downstream analysis.
type VoiceAnalysisResult struct {
	TranscribedText   string          `json:"transcribed_text"`
	ExtractedSymptoms SymptomReport   `json:"extracted_symptoms"`
	Analysis          *AnalysisResult `json:"analysis"`
}

// AnalyzeVoice transcribes the spoken input (canned, per language) and runs
// the extracted symptoms through the analysis path.
func (s *Service) AnalyzeVoice(ctx context.Context, patientID uuid.UUID, language string) (*VoiceAnalysisResult, error) {
	text := Transcribe(language)
	report := ExtractSymptoms(text, language)
	if len(report.PrimarySymptoms) == 0 {
		return nil, fmt.Errorf("no symptoms recognized in voice input")
	}
	analysis, err := s.AnalyzeSymptoms(ctx, patientID, &AnalyzeSymptomsRequest{
		Symptoms: report.PrimarySymptoms,
		Language: report.Language,
	})
	if err != nil {
		return nil, err
	}
	return &VoiceAnalysisResult{
		TranscribedText:   text,
		ExtractedSymptoms: report,
		Analysis:          analysis,
	}, nil
}
