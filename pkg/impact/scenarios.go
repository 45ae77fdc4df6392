package impact

import (
	"github.com/gridsage/cascade/pkg/model"
)

// Scenario is a plausible failure mode for one or more node types.
type Scenario struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	ApplicableTo []model.NodeType `json:"applicableTo"`
}

// failureScenarios is the static catalog mapping node types to plausible
// failure modes.
var failureScenarios = []Scenario{
	{
		ID:           "damage",
		Name:         "Structural Damage",
		Description:  "Physical damage to the road surface or structure",
		ApplicableTo: []model.NodeType{model.TypeRoad},
	},
	{
		ID:           "flood",
		Name:         "Flooding",
		Description:  "Road submerged or washed out by flood water",
		ApplicableTo: []model.NodeType{model.TypeRoad},
	},
	{
		ID:           "blockage",
		Name:         "Blockage",
		Description:  "Road blocked by debris, landslide or fallen trees",
		ApplicableTo: []model.NodeType{model.TypeRoad},
	},
	{
		ID:           "accident",
		Name:         "Traffic Accident",
		Description:  "Accident blocking traffic flow",
		ApplicableTo: []model.NodeType{model.TypeRoad},
	},
	{
		ID:           "outage",
		Name:         "Power Outage",
		Description:  "Complete loss of power supply from this node",
		ApplicableTo: []model.NodeType{model.TypePower},
	},
	{
		ID:           "overload",
		Name:         "Overload",
		Description:  "Demand exceeds capacity, forcing shutdown",
		ApplicableTo: []model.NodeType{model.TypePower},
	},
	{
		ID:           "leak",
		Name:         "Leak",
		Description:  "Water escaping from the tank or pipe",
		ApplicableTo: []model.NodeType{model.TypeTank, model.TypePipe},
	},
	{
		ID:           "contamination",
		Name:         "Contamination",
		Description:  "Water supply unsafe for consumption",
		ApplicableTo: []model.NodeType{model.TypeTank, model.TypePipe},
	},
	{
		ID:          "failure",
		Name:        "Equipment Failure",
		Description: "General failure taking the element out of service",
		ApplicableTo: []model.NodeType{
			model.TypeRoad, model.TypeBuilding, model.TypeSchool,
			model.TypeHospital, model.TypeMarket, model.TypePower,
			model.TypeTank, model.TypePump, model.TypePipe,
			model.TypeSensor, model.TypeCluster,
		},
	},
	{
		ID:          "maintenance",
		Name:        "Planned Maintenance",
		Description: "Element taken offline for scheduled maintenance",
		ApplicableTo: []model.NodeType{
			model.TypeRoad, model.TypeBuilding, model.TypeSchool,
			model.TypeHospital, model.TypeMarket, model.TypePower,
			model.TypeTank, model.TypePump, model.TypePipe,
			model.TypeSensor, model.TypeCluster,
		},
	},
}

// FailureScenarios returns the static scenario catalog.
func FailureScenarios() []Scenario {
	out := make([]Scenario, len(failureScenarios))
	copy(out, failureScenarios)
	return out
}

// ScenarioAppliesTo reports whether the failure type is catalogued for
// the given node type.
func ScenarioAppliesTo(failureType string, t model.NodeType) bool {
	for _, s := range failureScenarios {
		if s.ID != failureType {
			continue
		}
		for _, applicable := range s.ApplicableTo {
			if applicable == t {
				return true
			}
		}
	}
	return false
}
