package classifier

import (
	"math"
	"strings"

	"e-waste-api-server/internal/models"
)

// ItemSpec is one entry of the accepted e-waste catalog: the base resale
// value and points for the item in good shape, and CO2 saved per kg.
type ItemSpec struct {
	Type       string  `json:"type"`
	Name       string  `json:"name"`
	BaseValue  float64 `json:"baseValue"`
	BasePoints int     `json:"basePoints"`
	CO2PerKg   float64 `json:"co2PerKg"`
}

var Catalog = []ItemSpec{
	{Type: "phone", Name: "Smartphone", BaseValue: 15, BasePoints: 150, CO2PerKg: 12},
	{Type: "laptop", Name: "Laptop", BaseValue: 40, BasePoints: 400, CO2PerKg: 45},
	{Type: "tablet", Name: "Tablet", BaseValue: 25, BasePoints: 250, CO2PerKg: 20},
	{Type: "battery", Name: "Battery Pack", BaseValue: 8, BasePoints: 80, CO2PerKg: 5},
	{Type: "cable", Name: "Cable", BaseValue: 2, BasePoints: 20, CO2PerKg: 1},
	{Type: "charger", Name: "Charger", BaseValue: 5, BasePoints: 50, CO2PerKg: 3},
	{Type: "headphones", Name: "Headphones", BaseValue: 10, BasePoints: 100, CO2PerKg: 6},
	{Type: "watch", Name: "Smart Watch", BaseValue: 20, BasePoints: 200, CO2PerKg: 10},
	{Type: "hard-drive", Name: "Hard Drive", BaseValue: 12, BasePoints: 120, CO2PerKg: 8},
	{Type: "other", Name: "Other Electronics", BaseValue: 6, BasePoints: 60, CO2PerKg: 4},
}

// Lookup matches a classifier label or item type against the catalog.
func Lookup(label string) (ItemSpec, bool) {
	normalized := strings.ToLower(strings.TrimSpace(label))
	for _, spec := range Catalog {
		if normalized == spec.Type || normalized == strings.ToLower(spec.Name) {
			return spec, true
		}
	}
	return ItemSpec{}, false
}

// ConditionFactor maps a condition grade to its value multiplier.
func ConditionFactor(condition string) float64 {
	switch condition {
	case "Excellent":
		return 0.9
	case "Fair":
		return 0.65
	default: // "Good" and anything unknown
		return 0.75
	}
}

// Estimate prices an item of the given condition and weight, producing a
// submission-ready payload: value scales with condition, points round to
// whole numbers, CO2 scales with weight.
func Estimate(spec ItemSpec, condition string, weight float64, confidence float64) models.RecycledItem {
	factor := ConditionFactor(condition)
	if condition == "" {
		condition = "Good"
	}
	return models.RecycledItem{
		Type:       spec.Type,
		Name:       spec.Name,
		Confidence: math.Round(confidence),
		Weight:     math.Round(weight*100) / 100,
		Value:      math.Round(spec.BaseValue*factor*100) / 100,
		Points:     int(math.Round(float64(spec.BasePoints) * factor)),
		CO2Saved:   math.Round(spec.CO2PerKg*weight*10) / 10,
		Condition:  condition,
	}
}
