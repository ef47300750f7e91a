package pricing

import "carvalue/internal/domain"

// TableVersion identifies the price data compiled into this binary.
// Bump it whenever any table below changes.
const TableVersion = "2025.06"

const (
	// FallbackBasePrice is used for any vehicle found in neither table.
	FallbackBasePrice int64 = 14_000_000

	// FallbackYearMultiplier applies to years outside yearMultipliers.
	FallbackYearMultiplier = 0.85

	// NeutralLocationMultiplier applies to locations outside locationMultipliers.
	NeutralLocationMultiplier = 1.0

	// DefaultMileage is assumed when the caller does not supply one.
	DefaultMileage = 65_000
)

// Keys are stored in normalised form (see NormalizeMake / NormalizeModel).
type luxuryKey struct {
	make, model string
	year        int
}

type standardKey struct {
	make, model string
}

// luxuryPrices holds year-specific absolute prices for high-value vehicles.
var luxuryPrices = map[luxuryKey]int64{
	{"mercedesbenz", "g-classg63amg", 2019}:        285_000_000,
	{"mercedesbenz", "g-classg63amg", 2020}:        330_000_000,
	{"mercedesbenz", "g-classg63amg", 2021}:        385_000_000,
	{"mercedesbenz", "g-classg63amg", 2022}:        430_000_000,
	{"mercedesbenz", "g-classg63amg", 2023}:        480_000_000,
	{"mercedesbenz", "s-classs580", 2021}:          210_000_000,
	{"mercedesbenz", "s-classs580", 2022}:          245_000_000,
	{"mercedesbenz", "s-classs580", 2023}:          290_000_000,
	{"mercedesbenz", "maybachs680", 2022}:          420_000_000,
	{"mercedesbenz", "maybachs680", 2023}:          470_000_000,
	{"lexus", "lx600", 2022}:                       215_000_000,
	{"lexus", "lx600", 2023}:                       250_000_000,
	{"lexus", "lx600", 2024}:                       285_000_000,
	{"toyota", "landcruiser", 2021}:                120_000_000,
	{"toyota", "landcruiser", 2022}:                165_000_000,
	{"toyota", "landcruiser", 2023}:                190_000_000,
	{"landrover", "rangeroverautobiography", 2020}: 175_000_000,
	{"landrover", "rangeroverautobiography", 2021}: 205_000_000,
	{"landrover", "rangeroverautobiography", 2022}: 260_000_000,
	{"landrover", "rangeroverautobiography", 2023}: 310_000_000,
	{"rollsroyce", "cullinan", 2021}:               650_000_000,
	{"rollsroyce", "cullinan", 2022}:               720_000_000,
	{"bentley", "bentayga", 2021}:                  260_000_000,
	{"bentley", "bentayga", 2022}:                  300_000_000,
	{"porsche", "cayenne", 2021}:                   110_000_000,
	{"porsche", "cayenne", 2022}:                   135_000_000,
	{"bmw", "x7", 2021}:                            115_000_000,
	{"bmw", "x7", 2022}:                            140_000_000,
}

// standardPrices holds year-independent prices. It is only consulted when
// luxuryPrices has no entry for the exact (make, model, year).
var standardPrices = map[standardKey]int64{
	{"toyota", "camry"}:               16_500_000,
	{"toyota", "corolla"}:             11_500_000,
	{"toyota", "rav4"}:                19_000_000,
	{"toyota", "highlander"}:          27_000_000,
	{"toyota", "venza"}:               21_000_000,
	{"toyota", "sienna"}:              17_500_000,
	{"toyota", "prado"}:               45_000_000,
	{"toyota", "landcruiser"}:         65_000_000,
	{"toyota", "hilux"}:               24_000_000,
	{"honda", "accord"}:               14_500_000,
	{"honda", "civic"}:                10_000_000,
	{"honda", "cr-v"}:                 15_500_000,
	{"honda", "pilot"}:                18_500_000,
	{"lexus", "es350"}:                22_000_000,
	{"lexus", "rx350"}:                28_000_000,
	{"lexus", "gx460"}:                48_000_000,
	{"lexus", "lx600"}:                150_000_000,
	{"mercedesbenz", "c300"}:          19_000_000,
	{"mercedesbenz", "e350"}:          26_000_000,
	{"mercedesbenz", "gle450"}:        42_000_000,
	{"mercedesbenz", "g-classg63amg"}: 180_000_000,
	{"hyundai", "elantra"}:            9_500_000,
	{"hyundai", "sonata"}:             11_000_000,
	{"hyundai", "tucson"}:             14_000_000,
	{"hyundai", "santafe"}:            17_000_000,
	{"kia", "rio"}:                    7_500_000,
	{"kia", "sportage"}:               14_500_000,
	{"kia", "sorento"}:                17_500_000,
	{"ford", "explorer"}:              20_000_000,
	{"ford", "edge"}:                  15_000_000,
	{"nissan", "altima"}:              10_500_000,
	{"nissan", "pathfinder"}:          16_000_000,
	{"bmw", "x5"}:                     38_000_000,
	{"peugeot", "301"}:                6_500_000,
}

// yearMultipliers covers 2013 through 2025; other years use FallbackYearMultiplier.
var yearMultipliers = map[int]float64{
	2013: 0.55,
	2014: 0.60,
	2015: 0.66,
	2016: 0.72,
	2017: 0.80,
	2018: 0.90,
	2019: 1.00,
	2020: 1.10,
	2021: 1.22,
	2022: 1.35,
	2023: 1.50,
	2024: 1.65,
	2025: 1.80,
}

// locationMultipliers is keyed by NormalizeLocation output.
var locationMultipliers = map[string]float64{
	"lagos":        1.00,
	"abuja":        1.05,
	"portharcourt": 0.97,
	"ibadan":       0.93,
	"kano":         0.90,
	"enugu":        0.94,
	"benincity":    0.93,
	"kaduna":       0.91,
	"owerri":       0.95,
}

func conditionMultiplier(c domain.Condition) (float64, bool) {
	switch c {
	case domain.ConditionTokunbo:
		return 1.0, true
	case domain.ConditionNigerian:
		return 0.72, true
	}
	return 0, false
}

func gradeMultiplier(g domain.Grade) (float64, bool) {
	switch g {
	case domain.GradeFull:
		return 1.0, true
	case domain.GradeMid:
		return 0.9, true
	case domain.GradeBase:
		return 0.8, true
	}
	return 0, false
}

func bodyMultiplier(b domain.Body) (float64, bool) {
	switch b {
	case domain.BodyFirst:
		return 1.0, true
	case domain.BodyTouchup:
		return 0.9, true
	case domain.BodyRepainted:
		return 0.78, true
	case domain.BodyAccident:
		return 0.58, true
	}
	return 0, false
}

func yearMultiplier(year int) float64 {
	if m, ok := yearMultipliers[year]; ok {
		return m
	}
	return FallbackYearMultiplier
}

func locationMultiplier(loc string) float64 {
	if m, ok := locationMultipliers[NormalizeLocation(loc)]; ok {
		return m
	}
	return NeutralLocationMultiplier
}

// mileagePenalty bands are exclusive on the lower edge: exactly 60,000 km is not penalised.
func mileagePenalty(km int) float64 {
	switch {
	case km > 120_000:
		return 0.75
	case km > 90_000:
		return 0.88
	case km > 60_000:
		return 0.95
	default:
		return 1.0
	}
}
