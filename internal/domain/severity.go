package domain

// Severity is an ordinal urgency label.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// severityScale is ordered from least to most urgent.
var severityScale = [...]Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

// Confidence thresholds that shift the base severity by one step.
const (
	HighConfidence = 0.92
	LowConfidence  = 0.80
)

var baseSeverity = map[HazardType]Severity{
	HazardAccident:          SeverityCritical,
	HazardPothole:           SeverityHigh,
	HazardWaterlogging:      SeverityHigh,
	HazardTrafficCongestion: SeverityMedium,
	HazardBrokenStreetlight: SeverityMedium,
	HazardRoadDebris:        SeverityMedium,
}

// Rank returns the position of s on the severity scale, or -1 if s is not a
// known severity.
func (s Severity) Rank() int {
	for i, v := range severityScale {
		if v == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s is on the severity scale.
func (s Severity) Valid() bool { return s.Rank() >= 0 }

// Classify maps a hazard type and detector confidence to a severity label.
// Unknown hazard types start at medium. The result is always on the scale.
func Classify(hazardType HazardType, confidence float64) Severity {
	base, ok := baseSeverity[hazardType]
	if !ok {
		base = SeverityMedium
	}

	idx := base.Rank()
	switch {
	case confidence >= HighConfidence:
		idx = min(idx+1, len(severityScale)-1)
	case confidence < LowConfidence:
		idx = max(idx-1, 0)
	}
	return severityScale[idx]
}
