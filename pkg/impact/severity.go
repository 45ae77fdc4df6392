package impact

// Severity buckets a continuous severity score.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Bucket thresholds for the continuous severity score.
const (
	criticalThreshold = 0.75
	highThreshold     = 0.5
	mediumThreshold   = 0.25
)

// SeverityFromScore maps a severity score onto its bucket.
func SeverityFromScore(score float64) Severity {
	switch {
	case score >= criticalThreshold:
		return SeverityCritical
	case score >= highThreshold:
		return SeverityHigh
	case score >= mediumThreshold:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// Multiplier scales recovery-time estimates by the declared severity of
// the injected failure.
func (s Severity) Multiplier() float64 {
	switch s {
	case SeverityCritical:
		return 2.0
	case SeverityHigh:
		return 1.5
	case SeverityMedium:
		return 1.0
	case SeverityLow:
		return 0.5
	default:
		return 1.0
	}
}

// ParseSeverity normalizes a severity string, defaulting to medium.
func ParseSeverity(s string) Severity {
	switch Severity(s) {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return Severity(s)
	default:
		return SeverityMedium
	}
}
