package emergency

import "testing"

func TestPlanFor_MappedCombinations(t *testing.T) {
	for _, alertType := range []string{TypeMedical, TypeAccident, TypeBreathing, TypePregnancy} {
		for _, severity := range []string{SeverityHigh, SeverityMedium, SeverityLow} {
			plan := PlanFor(alertType, severity)
			if len(plan.Steps) != 4 {
				t.Errorf("%s/%s: %d steps, want 4", alertType, severity, len(plan.Steps))
			}
			if plan.EmergencyNumber != "108" {
				t.Errorf("%s/%s: emergency number %q", alertType, severity, plan.EmergencyNumber)
			}
		}
	}
}

func TestPlanFor_HighSeverityLeadsWithAmbulance(t *testing.T) {
	for _, alertType := range []string{TypeMedical, TypeAccident, TypeBreathing, TypePregnancy} {
		plan := PlanFor(alertType, SeverityHigh)
		if plan.Steps[0] != "Call 108 ambulance immediately" {
			t.Errorf("%s/high first step = %q", alertType, plan.Steps[0])
		}
	}
}

func TestPlanFor_Fallback(t *testing.T) {
	cases := []struct{ alertType, severity string }{
		{TypeMedical, SeverityCritical},
		{TypeOther, SeverityHigh},
		{"unknown", "unknown"},
	}
	for _, tc := range cases {
		plan := PlanFor(tc.alertType, tc.severity)
		if len(plan.Steps) != 3 || plan.Steps[0] != "Contact ASHA worker immediately" {
			t.Errorf("%s/%s: expected fallback plan, got %v", tc.alertType, tc.severity, plan.Steps)
		}
	}
}

func TestEmergencyContacts(t *testing.T) {
	contacts := EmergencyContacts()
	if len(contacts) != 6 {
		t.Fatalf("got %d contacts, want 6", len(contacts))
	}
	if contacts[0].Number != "108" {
		t.Errorf("first contact number = %q, want 108", contacts[0].Number)
	}
	seen := make(map[string]bool)
	for _, c := range contacts {
		if c.Name == "" || c.Number == "" || c.Description == "" {
			t.Errorf("incomplete contact: %+v", c)
		}
		if seen[c.Number] {
			t.Errorf("duplicate number %s", c.Number)
		}
		seen[c.Number] = true
	}
}
