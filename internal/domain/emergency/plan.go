package emergency

// responsePlans maps (alert_type, severity) to an ordered list of
// instructional steps. Critical severity has no dedicated entries and falls
// through to the fallback plan, matching field guidance that critical cases
// always start with the generic escalation script.
var responsePlans = map[string]map[string][]string{
	TypeMedical: {
		SeverityHigh: {
			"Call 108 ambulance immediately",
			"Contact nearest ASHA worker",
			"Prepare patient for transport",
			"Gather medical history and medications",
		},
		SeverityMedium: {
			"Contact ASHA worker for assessment",
			"Monitor vital signs",
			"Prepare for possible hospital visit",
			"Keep emergency contacts ready",
		},
		SeverityLow: {
			"Contact ASHA worker for guidance",
			"Monitor symptoms",
			"Follow basic first aid if trained",
			"Schedule follow-up if needed",
		},
	},
	TypeAccident: {
		SeverityHigh: {
			"Call 108 ambulance immediately",
			"Do not move injured person unless necessary",
			"Control bleeding if present",
			"Keep person conscious and calm",
		},
		SeverityMedium: {
			"Assess injuries carefully",
			"Contact ASHA worker",
			"Apply basic first aid",
			"Prepare for medical transport",
		},
		SeverityLow: {
			"Clean and dress minor wounds",
			"Contact ASHA worker for advice",
			"Monitor for complications",
			"Rest and avoid strenuous activity",
		},
	},
	TypeBreathing: {
		SeverityHigh: {
			"Call 108 ambulance immediately",
			"Keep person upright if conscious",
			"Loosen tight clothing",
			"Stay with person until help arrives",
		},
		SeverityMedium: {
			"Help person sit upright",
			"Contact ASHA worker immediately",
			"Ensure fresh air circulation",
			"Monitor breathing closely",
		},
		SeverityLow: {
			"Encourage slow, deep breathing",
			"Contact ASHA worker for guidance",
			"Remove from any irritants",
			"Monitor for improvement",
		},
	},
	TypePregnancy: {
		SeverityHigh: {
			"Call 108 ambulance immediately",
			"Contact skilled birth attendant",
			"Prepare clean delivery area if needed",
			"Keep mother calm and comfortable",
		},
		SeverityMedium: {
			"Contact ASHA worker immediately",
			"Monitor contractions and bleeding",
			"Prepare for hospital transport",
			"Keep emergency delivery kit ready",
		},
		SeverityLow: {
			"Contact ASHA worker for assessment",
			"Monitor symptoms",
			"Rest and stay hydrated",
			"Schedule prenatal check-up",
		},
	},
}

var fallbackPlanSteps = []string{
	"Contact ASHA worker immediately",
	"Call 108 if situation worsens",
	"Stay calm and follow basic safety measures",
}

// PlanFor returns the response plan for the given alert type and severity,
// falling back to the generic plan for unmapped combinations.
func PlanFor(alertType, severity string) ResponsePlan {
	steps, ok := responsePlans[alertType][severity]
	if !ok {
		steps = fallbackPlanSteps
	}
	return ResponsePlan{
		Steps:                 steps,
		EmergencyNumber:       "108",
		EstimatedResponseTime: "15-30 minutes",
		AdditionalResources: []string{
			"Nearest hospital location",
			"ASHA worker contact",
			"Emergency medication list",
		},
	}
}

// EmergencyContacts returns the national emergency phone lines surfaced with
// every alert.
func EmergencyContacts() []Contact {
	return []Contact{
		{Name: "Ambulance", Number: "108", Description: "24x7 emergency ambulance service"},
		{Name: "Police", Number: "100", Description: "Police emergency"},
		{Name: "Fire", Number: "101", Description: "Fire emergency"},
		{Name: "Women Helpline", Number: "1091", Description: "Women in distress"},
		{Name: "Child Helpline", Number: "1098", Description: "Children in need of care"},
		{Name: "Disaster Management", Number: "1070", Description: "State disaster control room"},
	}
}
