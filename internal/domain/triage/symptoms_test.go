package triage

import (
	"reflect"
	"testing"
)

func TestExtractSymptoms_English(t *testing.T) {
	report := ExtractSymptoms("I have a fever and a bad headache, feeling weak", "en")
	want := []string{"fever", "headache", "weakness"}
	if !reflect.DeepEqual(report.PrimarySymptoms, want) {
		t.Errorf("symptoms = %v, want %v", report.PrimarySymptoms, want)
	}
	if report.Language != "en" {
		t.Errorf("language = %q", report.Language)
	}
}

func TestExtractSymptoms_Hindi(t *testing.T) {
	report := ExtractSymptoms("मुझे बुखार और सिरदर्द है। मैं बहुत कमजोर महसूस कर रहा हूं।", "hi")
	want := []string{"fever", "headache", "weakness"}
	if !reflect.DeepEqual(report.PrimarySymptoms, want) {
		t.Errorf("symptoms = %v, want %v", report.PrimarySymptoms, want)
	}
}

func TestExtractSymptoms_Odia(t *testing.T) {
	report := ExtractSymptoms("ମୋର ଜ୍ୱର ଓ କାଶ ହେଉଛି", "or")
	want := []string{"cough", "fever"}
	if !reflect.DeepEqual(report.PrimarySymptoms, want) {
		t.Errorf("symptoms = %v, want %v", report.PrimarySymptoms, want)
	}
}

func TestExtractSymptoms_UnknownLanguageFallsBack(t *testing.T) {
	report := ExtractSymptoms("fever and cough", "fr")
	if report.Language != "en" {
		t.Errorf("language = %q, want en fallback", report.Language)
	}
	if len(report.PrimarySymptoms) != 2 {
		t.Errorf("symptoms = %v", report.PrimarySymptoms)
	}
}

func TestExtractSymptoms_NoMatches(t *testing.T) {
	report := ExtractSymptoms("everything is fine", "en")
	if len(report.PrimarySymptoms) != 0 {
		t.Errorf("symptoms = %v, want none", report.PrimarySymptoms)
	}
}

func TestSuggestConditions(t *testing.T) {
	suggestions := SuggestConditions([]string{"cough", "fever", "sore_throat"})
	if len(suggestions) == 0 {
		t.Fatal("expected at least one suggestion")
	}
	if suggestions[0].Condition != "respiratory_infection" {
		t.Errorf("top condition = %q, want respiratory_infection", suggestions[0].Condition)
	}
	if suggestions[0].Confidence != 0.6 {
		t.Errorf("confidence = %v, want 0.6", suggestions[0].Confidence)
	}
}

func TestSuggestConditions_Ordering(t *testing.T) {
	suggestions := SuggestConditions([]string{"fatigue", "weakness", "dizziness", "headache"})
	for i := 1; i < len(suggestions); i++ {
		if suggestions[i].Confidence > suggestions[i-1].Confidence {
			t.Fatalf("suggestions not ordered by confidence: %v", suggestions)
		}
	}
}

func TestSuggestConditions_NoOverlap(t *testing.T) {
	if got := SuggestConditions([]string{"toothache"}); len(got) != 0 {
		t.Errorf("suggestions = %v, want none", got)
	}
}

func TestTranscribe(t *testing.T) {
	for _, lang := range []string{"hi", "en", "or"} {
		if Transcribe(lang) == "" {
			t.Errorf("empty transcription for %s", lang)
		}
	}
	if Transcribe("de") != Transcribe("en") {
		t.Error("unknown language should fall back to English")
	}
}
