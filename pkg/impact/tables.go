package impact

import (
	"fmt"

	"github.com/gridsage/cascade/pkg/model"
)

// Declarative lookup tables for effect and recommendation strings,
// recovery-time bases and population weights. Keeping these as data keeps
// the analyzer's control flow flat and makes the exact output strings
// independently testable.

// effectTable maps (failed source type, affected target type) to an
// effect template. The template receives the source node's display name.
var effectTable = map[model.NodeType]map[model.NodeType]string{
	model.TypePower: {
		model.TypeBuilding: "Loses electricity supply from %s",
		model.TypeSchool:   "Classes disrupted by power loss from %s",
		model.TypeHospital: "Critical equipment at risk after losing supply from %s",
		model.TypeMarket:   "Refrigeration and lighting lost from %s outage",
		model.TypePump:     "Pump motor stops without supply from %s",
		model.TypeTank:     "Tank refill halted while %s is down",
		model.TypeSensor:   "Sensor telemetry lost without power from %s",
		model.TypeCluster:  "Households lose electricity from %s",
	},
	model.TypeRoad: {
		model.TypeBuilding: "Access blocked by failure of %s",
		model.TypeSchool:   "School access blocked by failure of %s",
		model.TypeHospital: "Ambulance access blocked by failure of %s",
		model.TypeMarket:   "Goods delivery blocked by failure of %s",
		model.TypeRoad:     "Diverted traffic overloads this road after %s failed",
		model.TypeCluster:  "Residents cut off from services by failure of %s",
	},
	model.TypeTank: {
		model.TypePump:    "No water to draw while %s is out of service",
		model.TypePipe:    "Supply pressure lost downstream of %s",
		model.TypeCluster: "Water supply interrupted by failure of %s",
	},
	model.TypePump: {
		model.TypeTank:    "Tank no longer refilled by %s",
		model.TypePipe:    "Flow stops downstream of %s",
		model.TypeCluster: "Water delivery interrupted by failure of %s",
	},
	model.TypePipe: {
		model.TypePipe:    "Pressure drop propagates from burst at %s",
		model.TypeCluster: "Water delivery interrupted by leak at %s",
		model.TypeTank:    "Drainage or backflow risk at tank connected to %s",
	},
}

// genericEffect is used when no table entry matches the type pair.
const genericEffect = "Service degraded by cascading failure of %s"

// EffectFor renders the effect string for an affected node.
func EffectFor(sourceType model.NodeType, sourceName string, targetType model.NodeType) string {
	if byTarget, ok := effectTable[sourceType]; ok {
		if tmpl, ok := byTarget[targetType]; ok {
			return fmt.Sprintf(tmpl, sourceName)
		}
	}
	return fmt.Sprintf(genericEffect, sourceName)
}

// recommendationTable maps the affected node's type to a recommended
// action, split by whether the impact is severe (high or critical).
var recommendationTable = map[model.NodeType][2]string{
	model.TypeRoad:     {"Monitor traffic volumes on this road", "Set up diversion and inform commuters immediately"},
	model.TypeBuilding: {"Notify occupants of possible disruption", "Prepare occupants for evacuation or relocation"},
	model.TypeSchool:   {"Inform school administration", "Suspend classes until services are restored"},
	model.TypeHospital: {"Verify backup systems are ready", "Activate backup power and reroute emergency cases"},
	model.TypeMarket:   {"Notify vendors of possible disruption", "Arrange alternative cold storage for perishables"},
	model.TypePower:    {"Monitor load on this node", "Shed non-critical load and dispatch repair crew"},
	model.TypeTank:     {"Check tank level trend", "Conserve stored water and arrange tanker supply"},
	model.TypePump:     {"Inspect pump after the event", "Switch to standby pump or manual supply"},
	model.TypePipe:     {"Monitor pressure readings", "Isolate the section and reroute flow"},
	model.TypeSensor:   {"Verify sensor readings manually", "Dispatch technician to restore monitoring"},
	model.TypeCluster:  {"Inform residents of possible disruption", "Distribute emergency supplies to affected households"},
}

// RecommendationFor renders the recommendation string for an affected
// node at the given severity bucket.
func RecommendationFor(targetType model.NodeType, severity Severity) string {
	entry, ok := recommendationTable[targetType]
	if !ok {
		if severity == SeverityHigh || severity == SeverityCritical {
			return "Prioritize inspection and restoration"
		}
		return "Monitor for secondary effects"
	}
	if severity == SeverityHigh || severity == SeverityCritical {
		return entry[1]
	}
	return entry[0]
}

// recoveryBaseHours maps failed node type x failure type to the base
// repair estimate in hours.
var recoveryBaseHours = map[model.NodeType]map[string]float64{
	model.TypeRoad: {
		"damage": 72, "flood": 48, "blockage": 12, "accident": 6, "failure": 48, "maintenance": 24,
	},
	model.TypePower: {
		"outage": 8, "overload": 4, "failure": 12, "maintenance": 6,
	},
	model.TypeTank: {
		"leak": 24, "contamination": 72, "failure": 36, "maintenance": 12,
	},
	model.TypePump: {
		"failure": 24, "maintenance": 8,
	},
	model.TypePipe: {
		"leak": 16, "contamination": 48, "failure": 24, "maintenance": 8,
	},
}

// defaultRecoveryHours applies when no table entry matches.
const defaultRecoveryHours = 24

// RecoveryBaseFor returns the base recovery hours for a failed node type
// and failure type.
func RecoveryBaseFor(failedType model.NodeType, failureType string) float64 {
	if byFailure, ok := recoveryBaseHours[failedType]; ok {
		if hours, ok := byFailure[failureType]; ok {
			return hours
		}
		if hours, ok := byFailure["failure"]; ok {
			return hours
		}
	}
	return defaultRecoveryHours
}

// populationWeights is the flat per-type estimate of people affected when
// a node of that type is disrupted.
var populationWeights = map[model.NodeType]int{
	model.TypeCluster:  200,
	model.TypeHospital: 500,
	model.TypeSchool:   300,
	model.TypeMarket:   150,
	model.TypeBuilding: 50,
	model.TypeRoad:     100,
	model.TypePower:    200,
}

// PopulationWeight returns the affected-population estimate for one node
// of the given type. Types without an entry contribute nothing.
func PopulationWeight(t model.NodeType) int {
	return populationWeights[t]
}
