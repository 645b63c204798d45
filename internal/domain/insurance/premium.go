package insurance

import "math"

// PremiumQuote breaks a premium calculation down by factor.
type PremiumQuote struct {
	ProductID            string  `json:"product_id"`
	ProductName          string  `json:"product_name"`
	BasePremium          float64 `json:"base_premium"`
	MonthlyPremium       float64 `json:"monthly_premium"`
	TotalPremium         float64 `json:"total_premium"`
	CoverageAmount       float64 `json:"coverage_amount"`
	CoveragePeriodMonths int     `json:"coverage_period_months"`
	AgeFactor            float64 `json:"age_factor"`
	FamilyFactor         float64 `json:"family_factor"`
	ConditionsFactor     float64 `json:"conditions_factor"`
	Savings              float64 `json:"savings"`
}

// CalculatePremium prices a product for the applicant. The monthly premium
// scales with age, family size, and pre-existing conditions; terms of a year
// or longer earn a 10% discount on the total.
func CalculatePremium(product *Product, age, familySize, months int, preExistingConditions bool) PremiumQuote {
	ageFactor := 1.0
	switch {
	case age > 45:
		ageFactor = 1.2
	case age > 35:
		ageFactor = 1.1
	}

	familyFactor := 1.0
	if familySize > 1 {
		familyFactor = 0.9 + float64(familySize)*0.15
	}

	conditionsFactor := 1.0
	if preExistingConditions {
		conditionsFactor = 1.3
	}

	monthly := product.PremiumMonthly * ageFactor * familyFactor * conditionsFactor
	total := monthly * float64(months)
	if months >= 12 {
		total *= 0.9
	}

	monthly = round2(monthly)
	total = round2(total)

	savings := 0.0
	if undiscounted := product.PremiumMonthly * float64(months); total < undiscounted {
		savings = round2(undiscounted - total)
	}

	return PremiumQuote{
		ProductID:            product.ID,
		ProductName:          product.Name,
		BasePremium:          product.PremiumMonthly,
		MonthlyPremium:       monthly,
		TotalPremium:         total,
		CoverageAmount:       product.CoverageAmount,
		CoveragePeriodMonths: months,
		AgeFactor:            ageFactor,
		FamilyFactor:         familyFactor,
		ConditionsFactor:     conditionsFactor,
		Savings:              savings,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
