package triage

import (
	"sort"
	"strings"
)

// symptomKeywords maps spoken-language keywords to canonical symptom names,
// per supported language. Lookup falls back to English.
var symptomKeywords = map[string]map[string]string{
	"en": {
		"fever":     "fever",
		"headache":  "headache",
		"weak":      "weakness",
		"fatigue":   "fatigue",
		"tired":     "fatigue",
		"cough":     "cough",
		"breathing": "breathing_difficulty",
		"dizzy":     "dizziness",
		"chest":     "chest_pain",
		"thirst":    "excessive_thirst",
		"urination": "frequent_urination",
		"throat":    "sore_throat",
	},
	"hi": {
		"बुखार":   "fever",
		"सिरदर्द": "headache",
		"कमजोर":   "weakness",
		"थकान":    "fatigue",
		"खांसी":   "cough",
		"सांस":    "breathing_difficulty",
		"चक्कर":   "dizziness",
		"सीने":    "chest_pain",
		"प्यास":   "excessive_thirst",
		"गला":     "sore_throat",
	},
	"or": {
		"ଜ୍ୱର":        "fever",
		"ମୁଣ୍ଡବିନ୍ଧା": "headache",
		"ଦୁର୍ବଳ":      "weakness",
		"କାଶ":         "cough",
		"ନିଶ୍ୱାସ":     "breathing_difficulty",
		"ଛାତି":        "chest_pain",
	},
}

// SymptomReport is the output of keyword extraction over free text.
type SymptomReport struct {
	PrimarySymptoms []string `json:"primary_symptoms"`
	OriginalText    string   `json:"original_text"`
	Language        string   `json:"language"`
}

// ExtractSymptoms scans free text for known symptom keywords in the given
// language. Unknown languages fall back to the English table.
func ExtractSymptoms(text, language string) SymptomReport {
	keywords, ok := symptomKeywords[language]
	if !ok {
		language = "en"
		keywords = symptomKeywords["en"]
	}

	lower := strings.ToLower(text)
	seen := make(map[string]bool)
	var symptoms []string
	for keyword, symptom := range keywords {
		if strings.Contains(lower, keyword) && !seen[symptom] {
			seen[symptom] = true
			symptoms = append(symptoms, symptom)
		}
	}
	sort.Strings(symptoms)

	return SymptomReport{
		PrimarySymptoms: symptoms,
		OriginalText:    text,
		Language:        language,
	}
}

// conditionProfile describes one entry of the scripted condition base.
type conditionProfile struct {
	Symptoms        []string
	Recommendations []string
}

var conditionBase = map[string]conditionProfile{
	"anemia": {
		Symptoms:        []string{"fatigue", "weakness", "pale_skin", "breathing_difficulty", "dizziness"},
		Recommendations: []string{"Iron supplements", "Dietary changes", "Medical consultation"},
	},
	"hypertension": {
		Symptoms:        []string{"headache", "dizziness", "chest_pain", "breathing_difficulty"},
		Recommendations: []string{"Lifestyle changes", "Regular monitoring", "Medical consultation"},
	},
	"diabetes": {
		Symptoms:        []string{"excessive_thirst", "frequent_urination", "fatigue", "blurred_vision"},
		Recommendations: []string{"Blood sugar monitoring", "Diet control", "Medical consultation"},
	},
	"respiratory_infection": {
		Symptoms:        []string{"cough", "fever", "sore_throat", "runny_nose", "body_aches"},
		Recommendations: []string{"Rest", "Hydration", "Medical consultation if severe"},
	},
}

// ConditionSuggestion pairs a condition with how strongly the reported
// symptoms overlap its profile.
type ConditionSuggestion struct {
	Condition       string   `json:"condition"`
	Confidence      float64  `json:"confidence"`
	MatchedSymptoms []string `json:"matched_symptoms"`
	Recommendations []string `json:"recommendations"`
}

// SuggestConditions scores the reported symptoms against the condition base.
// Confidence is the fraction of the condition's profile present in the
// report. Conditions with no overlap are omitted; results are ordered by
// confidence, then name for a stable order.
func SuggestConditions(symptoms []string) []ConditionSuggestion {
	reported := make(map[string]bool, len(symptoms))
	for _, s := range symptoms {
		reported[s] = true
	}

	var suggestions []ConditionSuggestion
	for name, profile := range conditionBase {
		var matched []string
		for _, s := range profile.Symptoms {
			if reported[s] {
				matched = append(matched, s)
			}
		}
		if len(matched) == 0 {
			continue
		}
		suggestions = append(suggestions, ConditionSuggestion{
			Condition:       name,
			Confidence:      float64(len(matched)) / float64(len(profile.Symptoms)),
			MatchedSymptoms: matched,
			Recommendations: profile.Recommendations,
		})
	}
	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Confidence != suggestions[j].Confidence {
			return suggestions[i].Confidence > suggestions[j].Confidence
		}
		return suggestions[i].Condition < suggestions[j].Condition
	})
	return suggestions
}

// mockTranscriptions stands in for a speech-to-text service. One canned
// utterance per language, English as the fallback.
var mockTranscriptions = map[string]string{
	"hi": "मुझे बुखार और सिरदर्द है। मैं बहुत कमजोर महसूस कर रहा हूं।",
	"en": "I have fever and headache. I am feeling very weak.",
	"or": "ମୋର ଜ୍ୱର ଓ ମୁଣ୍ଡବିନ୍ଧା ହେଉଛି। ମୁଁ ବହୁତ ଦୁର୍ବଳ ଲାଗୁଛି।",
}

// Transcribe returns the canned transcription for the language.
func Transcribe(language string) string {
	if text, ok := mockTranscriptions[language]; ok {
		return text
	}
	return mockTranscriptions["en"]
}
