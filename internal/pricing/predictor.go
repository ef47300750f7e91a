// Package pricing estimates a used-car price band from static tables.
//
// Everything here is a pure function over package-level tables that are
// never written after init, so callers may invoke it concurrently.
package pricing

import (
	"strconv"

	"github.com/shopspring/decimal"

	"carvalue/internal/domain"
)

var (
	minBand = decimal.RequireFromString("0.88")
	maxBand = decimal.RequireFromString("1.18")
	million = decimal.NewFromInt(1_000_000)
)

// Validate rejects inputs whose closed enums are missing or unknown.
// Unknown make, model, year or location are not errors.
func Validate(in domain.ValuationInput) error {
	if _, ok := conditionMultiplier(in.Condition); !ok {
		return domain.NewValidationError("condition", string(in.Condition), domain.ErrInvalidCondition)
	}
	if _, ok := gradeMultiplier(in.Grade); !ok {
		return domain.NewValidationError("grade", string(in.Grade), domain.ErrInvalidGrade)
	}
	if _, ok := bodyMultiplier(in.Body); !ok {
		return domain.NewValidationError("body", string(in.Body), domain.ErrInvalidBody)
	}
	return nil
}

// PredictPrice returns the price band for in, in millions, one decimal place.
func PredictPrice(in domain.ValuationInput) (domain.PriceRange, error) {
	est, err := Predict(in)
	if err != nil {
		return domain.PriceRange{}, err
	}
	return est.Range, nil
}

// Predict is PredictPrice with the resolved tier and intermediate prices.
func Predict(in domain.ValuationInput) (domain.Estimate, error) {
	if err := Validate(in); err != nil {
		return domain.Estimate{}, err
	}
	cond, _ := conditionMultiplier(in.Condition)
	grade, _ := gradeMultiplier(in.Grade)
	body, _ := bodyMultiplier(in.Body)

	base, tier := resolveBase(NormalizeMake(in.Make), NormalizeModel(in.Model), in.Year)

	// order: year, condition, grade, body, location, then mileage
	factors := []float64{
		yearMultiplier(in.Year),
		cond,
		grade,
		body,
		locationMultiplier(in.Location),
		mileagePenalty(EffectiveMileage(in)),
	}
	adjusted := decimal.NewFromInt(base)
	for _, f := range factors {
		adjusted = adjusted.Mul(decimal.NewFromFloat(f))
	}

	return domain.Estimate{
		Range: domain.PriceRange{
			Min: toMillions(adjusted.Mul(minBand)),
			Max: toMillions(adjusted.Mul(maxBand)),
		},
		Tier:     tier,
		Base:     base,
		Adjusted: adjusted.InexactFloat64(),
	}, nil
}

// EffectiveMileage is the supplied mileage or DefaultMileage.
func EffectiveMileage(in domain.ValuationInput) int {
	if in.Mileage == nil {
		return DefaultMileage
	}
	return *in.Mileage
}

// resolveBase checks the luxury table for the exact year, then the
// standard table, then falls back. There is no nearest-year matching.
func resolveBase(mk, model string, year int) (int64, domain.Tier) {
	if p, ok := luxuryPrices[luxuryKey{mk, model, year}]; ok && p > 0 {
		return p, domain.TierLuxury
	}
	if p, ok := standardPrices[standardKey{mk, model}]; ok {
		return p, domain.TierStandard
	}
	return FallbackBasePrice, domain.TierFallback
}

// toMillions rounds to a whole naira first, then scales and rounds to 0.1.
func toMillions(d decimal.Decimal) float64 {
	return d.Round(0).Div(million).Round(1).InexactFloat64()
}

// CacheKey is a stable key for in after normalisation. Two inputs with the
// same key always produce the same estimate under the same TableVersion.
func CacheKey(in domain.ValuationInput) string {
	return "valuation:" + TableVersion + ":" +
		NormalizeMake(in.Make) + ":" +
		NormalizeModel(in.Model) + ":" +
		strconv.Itoa(in.Year) + ":" +
		string(in.Condition) + ":" +
		string(in.Grade) + ":" +
		string(in.Body) + ":" +
		NormalizeLocation(in.Location) + ":" +
		strconv.Itoa(EffectiveMileage(in))
}
