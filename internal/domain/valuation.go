package domain

// Condition is how the vehicle entered the local market.
type Condition string

const (
	ConditionTokunbo  Condition = "tokunbo"  // foreign-used
	ConditionNigerian Condition = "nigerian" // domestic-used
)

// Grade is the trim/feature level.
type Grade string

const (
	GradeFull Grade = "full"
	GradeMid  Grade = "mid"
	GradeBase Grade = "base"
)

// Body is the paint/panel history.
type Body string

const (
	BodyFirst     Body = "first"
	BodyTouchup   Body = "touchup"
	BodyRepainted Body = "repainted"
	BodyAccident  Body = "accident"
)

// ValuationInput is the caller-supplied vehicle description.
// Mileage is in kilometres; nil means "not supplied".
type ValuationInput struct {
	Make      string    `json:"make"`
	Model     string    `json:"model"`
	Year      int       `json:"year"`
	Condition Condition `json:"condition"`
	Mileage   *int      `json:"mileage,omitempty"`
	Grade     Grade     `json:"grade"`
	Body      Body      `json:"body"`
	Location  string    `json:"location"`
}

// PriceRange is expressed in millions of naira, one decimal place.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Tier says which table (if any) produced the base price.
type Tier string

const (
	TierLuxury   Tier = "luxury"
	TierStandard Tier = "standard"
	TierFallback Tier = "fallback"
)

// Estimate is a PriceRange plus how it was derived.
type Estimate struct {
	Range    PriceRange `json:"range"`
	Tier     Tier       `json:"tier"`
	Base     int64      `json:"base"`     // unadjusted table price
	Adjusted float64    `json:"adjusted"` // after multipliers and mileage penalty
}
