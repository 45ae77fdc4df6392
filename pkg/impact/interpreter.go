package impact

import (
	"math"
)

// Metrics are the named, bounded per-node risk metrics decoded from the
// propagation head's raw 12-dim output.
type Metrics struct {
	ImpactProbability    float64 `json:"impactProbability"`
	SeverityScore        float64 `json:"severityScore"`
	TimeToImpactHours    float64 `json:"timeToImpactHours"`
	AccessDisruption     float64 `json:"accessDisruption"`
	ServiceDisruption    float64 `json:"serviceDisruption"`
	EconomicImpact       float64 `json:"economicImpact"`
	SafetyRisk           float64 `json:"safetyRisk"`
	PopulationAffected   float64 `json:"populationAffected"`
	CascadeRisk          float64 `json:"cascadeRisk"`
	RecoveryDifficulty   float64 `json:"recoveryDifficulty"`
	AlternativeAvailable float64 `json:"alternativeAvailable"`
	UrgencyScore         float64 `json:"urgencyScore"`
}

// timeToImpactScale converts the raw time output into hours.
const timeToImpactScale = 48

// Decode interprets a raw 12-dim output vector. Ratio-valued fields are
// squashed through a numerically stable sigmoid; the time output is scaled
// to hours and floored at zero.
func Decode(raw []float64) Metrics {
	at := func(i int) float64 {
		if i < len(raw) {
			return raw[i]
		}
		return 0
	}

	timeToImpact := at(2) * timeToImpactScale
	if timeToImpact < 0 {
		timeToImpact = 0
	}

	return Metrics{
		ImpactProbability:    sigmoid(at(0)),
		SeverityScore:        sigmoid(at(1)),
		TimeToImpactHours:    timeToImpact,
		AccessDisruption:     sigmoid(at(3)),
		ServiceDisruption:    sigmoid(at(4)),
		EconomicImpact:       sigmoid(at(5)),
		SafetyRisk:           sigmoid(at(6)),
		PopulationAffected:   sigmoid(at(7)),
		CascadeRisk:          sigmoid(at(8)),
		RecoveryDifficulty:   sigmoid(at(9)),
		AlternativeAvailable: sigmoid(at(10)),
		UrgencyScore:         sigmoid(at(11)),
	}
}

// sigmoid clamps its input to [-500, 500] before exponentiation so that
// extreme raw outputs cannot overflow.
func sigmoid(x float64) float64 {
	if x > 500 {
		x = 500
	}
	if x < -500 {
		x = -500
	}
	return 1 / (1 + math.Exp(-x))
}
