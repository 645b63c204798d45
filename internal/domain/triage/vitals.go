package triage

import "time"

// Risk levels in escalating order.
const (
	RiskNormal   = "normal"
	RiskMedium   = "medium"
	RiskHigh     = "high"
	RiskCritical = "critical"
)

var riskRank = map[string]int{
	RiskNormal:   0,
	RiskMedium:   1,
	RiskHigh:     2,
	RiskCritical: 3,
}

// VitalSigns is a sparse set of measurements. Nil means not measured; absent
// vitals contribute nothing to the assessment.
type VitalSigns struct {
	Systolic    *int     `json:"systolic_bp,omitempty"`
	Diastolic   *int     `json:"diastolic_bp,omitempty"`
	HeartRate   *int     `json:"heart_rate,omitempty"`
	Hemoglobin  *float64 `json:"hemoglobin,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
}

// Assessment is the outcome of a vital-sign risk evaluation.
type Assessment struct {
	RiskLevel   string    `json:"risk_level"`
	RiskFactors []string  `json:"risk_factors"`
	AssessedAt  time.Time `json:"assessment_date"`
}

// escalate returns the higher of the two risk levels. The assessment only
// ever moves up; a later rule can never mask an earlier critical finding.
func escalate(current, candidate string) string {
	if riskRank[candidate] > riskRank[current] {
		return candidate
	}
	return current
}

// AssessVitals evaluates the measurements against fixed clinical thresholds.
// Rules run in a fixed order (blood pressure, hemoglobin, heart rate) and the
// final level is the maximum severity any rule produced. With no measurements
// present the assessment is normal with no risk factors.
func AssessVitals(v VitalSigns) Assessment {
	level := RiskNormal
	factors := []string{}

	// Systolic and diastolic are independent signals; a reading with only
	// one of them is still assessed.
	if v.Systolic != nil || v.Diastolic != nil {
		var sys, dia int
		if v.Systolic != nil {
			sys = *v.Systolic
		}
		if v.Diastolic != nil {
			dia = *v.Diastolic
		}
		switch {
		case sys >= 180 || dia >= 120:
			level = escalate(level, RiskCritical)
			factors = append(factors, "Severe hypertension")
		case sys >= 140 || dia >= 90:
			level = escalate(level, RiskHigh)
			factors = append(factors, "Hypertension")
		}
	}

	if v.Hemoglobin != nil {
		switch hb := *v.Hemoglobin; {
		case hb < 7:
			level = escalate(level, RiskCritical)
			factors = append(factors, "Severe anemia")
		case hb < 10:
			level = escalate(level, RiskHigh)
			factors = append(factors, "Moderate anemia")
		case hb < 12:
			level = escalate(level, RiskMedium)
			factors = append(factors, "Mild anemia")
		}
	}

	if v.HeartRate != nil {
		if *v.HeartRate < 50 || *v.HeartRate > 120 {
			level = escalate(level, RiskHigh)
			factors = append(factors, "Abnormal heart rate")
		}
	}

	return Assessment{
		RiskLevel:   level,
		RiskFactors: factors,
		AssessedAt:  time.Now().UTC(),
	}
}

// RecommendationsFor returns the guidance script for a risk level. Unknown
// levels get the normal-monitoring script.
func RecommendationsFor(level string) []string {
	switch level {
	case RiskCritical:
		return []string{
			"Seek immediate medical attention",
			"Call emergency services (108)",
			"Contact ASHA worker immediately",
		}
	case RiskHigh:
		return []string{
			"Consult healthcare provider within 24 hours",
			"Monitor vital signs closely",
			"Contact ASHA worker for guidance",
		}
	case RiskMedium:
		return []string{
			"Schedule appointment with healthcare provider",
			"Monitor symptoms for changes",
			"Follow up with ASHA worker",
		}
	default:
		return []string{
			"Continue regular health monitoring",
			"Maintain healthy lifestyle",
			"Regular check-ups with ASHA worker",
		}
	}
}
