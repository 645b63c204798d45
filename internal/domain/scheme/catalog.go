package scheme

// Supported scheme names.
const (
	SchemeBSKY     = "BSKY"
	SchemeNiramaya = "NIRAMAYA"
	SchemePMJAY    = "PMJAY"
)

// Info describes one government scheme for the public catalog.
type Info struct {
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	CoverageAmount     float64  `json:"coverage_amount"`
	Eligibility        string   `json:"eligibility"`
	Benefits           []string `json:"benefits"`
	DocumentsRequired  []string `json:"documents_required"`
	ApplicationProcess []string `json:"application_process"`
}

var catalog = map[string]Info{
	SchemeBSKY: {
		Name:           "Biju Swasthya Kalyan Yojana",
		Description:    "Comprehensive health coverage for all families in Odisha",
		CoverageAmount: 500000,
		Eligibility:    "All families covered under NFSA/SFSS",
		Benefits: []string{
			"Cashless treatment at empanelled hospitals",
			"Pre and post hospitalization coverage",
			"Day care procedures included",
			"Women and children get additional benefits",
		},
		DocumentsRequired: []string{
			"Ration Card",
			"Aadhaar Card",
			"Income Certificate",
			"Residence Certificate",
		},
		ApplicationProcess: []string{
			"Check eligibility online",
			"Submit required documents",
			"Get verification from ASHA worker",
			"Receive scheme card",
		},
	},
	SchemeNiramaya: {
		Name:           "NIRAMAYA Scheme",
		Description:    "Free medicines for common ailments",
		CoverageAmount: 0,
		Eligibility:    "All citizens at PHCs and CHCs",
		Benefits: []string{
			"Essential medicines available free",
			"Covers 348 generic medicines",
			"Available at all government facilities",
			"No income or category restrictions",
		},
		DocumentsRequired: []string{
			"Valid ID proof",
			"Prescription from registered doctor",
		},
		ApplicationProcess: []string{
			"Visit nearest PHC/CHC",
			"Get prescription from doctor",
			"Collect free medicines from pharmacy",
		},
	},
	SchemePMJAY: {
		Name:           "Pradhan Mantri Jan Arogya Yojana",
		Description:    "National health protection scheme",
		CoverageAmount: 500000,
		Eligibility:    "Families identified in SECC database",
		Benefits: []string{
			"Cashless treatment",
			"Secondary and tertiary care",
			"Pre-existing conditions covered",
			"No cap on family size",
		},
		DocumentsRequired: []string{
			"PMJAY Card",
			"Aadhaar Card",
			"Family ID",
		},
		ApplicationProcess: []string{
			"Check eligibility at CSC",
			"Generate e-card",
			"Visit empanelled hospital",
			"Get cashless treatment",
		},
	},
}

// Catalog returns every supported scheme keyed by name.
func Catalog() map[string]Info {
	return catalog
}

// InfoFor looks up a scheme by name, second return false when unknown.
func InfoFor(name string) (Info, bool) {
	info, ok := catalog[name]
	return info, ok
}
