package features

import (
	"github.com/gridsage/cascade/pkg/model"
)

// Criticality is a heuristic 0-1 importance rating. Hospitals anchor the
// top of the scale; capacity, occupancy and demand push an element above
// its type baseline.

func buildingImportance(t model.NodeType) float64 {
	switch t {
	case model.TypeHospital:
		return 1.0
	case model.TypeSchool:
		return 0.9
	case model.TypeMarket:
		return 0.8
	default:
		return 0.5
	}
}

func buildingCriticality(b *model.Building) float64 {
	score := buildingImportance(b.NodeType())
	if b.Occupancy >= 200 {
		score += 0.1
	}
	return clamp01(score)
}

func roadCriticality(r *model.Road) float64 {
	score := 0.5
	if r.MainRoad {
		score = 0.8
	}
	if r.Traffic == model.TrafficHigh {
		score += 0.1
	}
	return clamp01(score)
}

func powerCriticality(p *model.PowerNode) float64 {
	if p.CapacityKW >= 50 {
		return 0.9
	}
	return 0.7
}

func tankCriticality(t *model.WaterTank) float64 {
	if t.CapacityLiters >= 10000 {
		return 0.8
	}
	return 0.6
}

func pumpCriticality(p *model.WaterPump) float64 {
	if p.CapacityLPH >= 3000 {
		return 0.8
	}
	return 0.75
}

func clusterCriticality(c *model.ConsumerCluster) float64 {
	if c.Households >= 50 {
		return 0.7
	}
	return 0.5
}
