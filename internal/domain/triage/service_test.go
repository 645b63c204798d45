package triage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type mockRecordSink struct {
	saved []*TriageRecord
	fail  bool
}

func (m *mockRecordSink) Save(_ context.Context, rec *TriageRecord) (uuid.UUID, error) {
	if m.fail {
		return uuid.Nil, fmt.Errorf("storage unavailable")
	}
	m.saved = append(m.saved, rec)
	return uuid.New(), nil
}

func newTestService(sink *mockRecordSink) *Service {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return NewService(sink, func() time.Time { return now }, zerolog.Nop())
}

func TestAnalyzeSymptoms_SavesDiagnosisRecord(t *testing.T) {
	sink := &mockRecordSink{}
	svc := newTestService(sink)
	patient := uuid.New()

	result, err := svc.AnalyzeSymptoms(context.Background(), patient, &AnalyzeSymptomsRequest{
		Symptoms: []string{"cough", "fever", "sore_throat"},
	})
	if err != nil {
		t.Fatalf("AnalyzeSymptoms: %v", err)
	}
	if result.RecordID == uuid.Nil {
		t.Error("expected record id")
	}
	if len(sink.saved) != 1 {
		t.Fatalf("saved %d records, want 1", len(sink.saved))
	}
	rec := sink.saved[0]
	if rec.RecordType != "ai_diagnosis" || rec.PatientID != patient {
		t.Errorf("record = %+v", rec)
	}
	if len(result.Suggestions) == 0 || result.Suggestions[0].Condition != "respiratory_infection" {
		t.Errorf("suggestions = %v", result.Suggestions)
	}
}

func TestAnalyzeSymptoms_FreeTextExtraction(t *testing.T) {
	svc := newTestService(&mockRecordSink{})
	result, err := svc.AnalyzeSymptoms(context.Background(), uuid.New(), &AnalyzeSymptomsRequest{
		Text:     "I have fever and cough",
		Language: "en",
	})
	if err != nil {
		t.Fatalf("AnalyzeSymptoms: %v", err)
	}
	if len(result.Symptoms) != 2 {
		t.Errorf("symptoms = %v", result.Symptoms)
	}
}

func TestAnalyzeSymptoms_RequiresSymptoms(t *testing.T) {
	svc := newTestService(&mockRecordSink{})
	if _, err := svc.AnalyzeSymptoms(context.Background(), uuid.New(), &AnalyzeSymptomsRequest{}); err == nil {
		t.Error("expected error for empty request")
	}
}

func TestAnalyzeSymptoms_VitalsEscalate(t *testing.T) {
	svc := newTestService(&mockRecordSink{})
	sys, dia := 190, 100
	result, err := svc.AnalyzeSymptoms(context.Background(), uuid.New(), &AnalyzeSymptomsRequest{
		Symptoms:   []string{"headache"},
		VitalSigns: &VitalSigns{Systolic: &sys, Diastolic: &dia},
	})
	if err != nil {
		t.Fatalf("AnalyzeSymptoms: %v", err)
	}
	if result.RiskLevel != RiskCritical {
		t.Errorf("risk level = %q, want critical", result.RiskLevel)
	}
	if !result.RequiresImmediateAttention {
		t.Error("critical result must require immediate attention")
	}
}

func TestAnalyzeSymptoms_StorageFailureIsNonFatal(t *testing.T) {
	svc := newTestService(&mockRecordSink{fail: true})
	result, err := svc.AnalyzeSymptoms(context.Background(), uuid.New(), &AnalyzeSymptomsRequest{
		Symptoms: []string{"fever"},
	})
	if err != nil {
		t.Fatalf("AnalyzeSymptoms: %v", err)
	}
	if result.RecordID != uuid.Nil {
		t.Error("record id should be unset when storage fails")
	}
}

func TestProcessDeviceReading(t *testing.T) {
	sink := &mockRecordSink{}
	svc := newTestService(sink)

	result, err := svc.ProcessDeviceReading(context.Background(), uuid.New(), &DeviceReading{
		DeviceType:      DeviceHemoglobinMeter,
		HemoglobinMeter: &HemoglobinReading{Hemoglobin: 6.2, Hematocrit: 22},
	})
	if err != nil {
		t.Fatalf("ProcessDeviceReading: %v", err)
	}
	if result.Assessment.RiskLevel != RiskCritical {
		t.Errorf("risk level = %q, want critical", result.Assessment.RiskLevel)
	}
	if len(sink.saved) != 1 || sink.saved[0].RecordType != "vitals" {
		t.Errorf("saved = %+v", sink.saved)
	}
	if sink.saved[0].Vitals == nil || sink.saved[0].Vitals.Hemoglobin == nil {
		t.Error("vitals not carried onto the record")
	}
}

func TestProcessDeviceReading_InvalidPayload(t *testing.T) {
	svc := newTestService(&mockRecordSink{})
	_, err := svc.ProcessDeviceReading(context.Background(), uuid.New(), &DeviceReading{
		DeviceType: DeviceBPMonitor,
	})
	if err == nil {
		t.Error("expected validation error")
	}
}

func TestAnalyzeVoice(t *testing.T) {
	sink := &mockRecordSink{}
	svc := newTestService(sink)

	result, err := svc.AnalyzeVoice(context.Background(), uuid.New(), "hi")
	if err != nil {
		t.Fatalf("AnalyzeVoice: %v", err)
	}
	if result.TranscribedText == "" {
		t.Error("empty transcription")
	}
	if len(result.ExtractedSymptoms.PrimarySymptoms) == 0 {
		t.Error("no symptoms extracted from canned transcription")
	}
	if result.Analysis == nil || result.Analysis.RiskLevel == "" {
		t.Error("missing downstream analysis")
	}
	if len(sink.saved) != 1 {
		t.Errorf("saved %d records, want 1", len(sink.saved))
	}
}
