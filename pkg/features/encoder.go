package features

import (
	"time"

	"github.com/gridsage/cascade/pkg/model"
)

// EmbeddingDim is the fixed embedding length shared by every node type so
// that heterogeneous nodes flow through one propagation computation.
const EmbeddingDim = 24

// Embedding slot layout. Slots 0-10 are the one-hot type indicator in
// model.KnownNodeTypes order, 11-15 are type-specific operational slots,
// 16-23 are universal slots.
const (
	SlotOperational0 = 11
	SlotOperational1 = 12
	SlotOperational2 = 13
	SlotOperational3 = 14
	SlotOperational4 = 15

	SlotCriticality      = 16
	SlotPopulationServed = 17
	SlotEconomicValue    = 18
	SlotConnectivity     = 19
	SlotMaintenance      = 20
	SlotFloodRisk        = 21
	SlotFailureRate      = 22
	SlotFailureFlag      = 23
)

// Neutral is the midpoint used for unknown or unreported properties.
// Defaulting to 0.5 instead of 0 avoids biasing missing data toward
// "healthy".
const Neutral = 0.5

// maintenanceWindow is the linear decay horizon for maintenance recency.
const maintenanceWindow = 365 * 24 * time.Hour

// newEmbedding allocates an embedding with the one-hot type slot set and
// all operational and universal slots at the neutral midpoint.
func newEmbedding(t model.NodeType) []float64 {
	v := make([]float64, EmbeddingDim)
	for i, known := range model.KnownNodeTypes() {
		if t == known {
			v[i] = 1
			break
		}
	}
	for i := SlotOperational0; i <= SlotFailureRate; i++ {
		v[i] = Neutral
	}
	// connectivity degree is filled in by the graph builder once edges
	// exist; failure flag starts clear
	v[SlotConnectivity] = 0
	v[SlotFailureFlag] = 0
	return v
}

// fillUniversal populates the universal slots shared by every node type.
func fillUniversal(v []float64, criticality float64, u model.Universal, now time.Time) {
	v[SlotCriticality] = clamp01(criticality)
	if u.PopulationServed != nil {
		v[SlotPopulationServed] = ratio(*u.PopulationServed, 2000)
	}
	if u.EconomicValue != nil {
		v[SlotEconomicValue] = clamp01(*u.EconomicValue)
	}
	if u.FloodRisk != nil {
		v[SlotFloodRisk] = clamp01(*u.FloodRisk)
	}
	if u.FailureRate != nil {
		v[SlotFailureRate] = clamp01(*u.FailureRate)
	}
	if u.LastMaintained != nil {
		age := now.Sub(*u.LastMaintained)
		decay := 1 - float64(age)/float64(maintenanceWindow)
		if decay < 0 {
			decay = 0
		}
		v[SlotMaintenance] = clamp01(decay)
	}
}

// EncodeRoad builds the embedding for a road segment.
func EncodeRoad(r *model.Road, now time.Time) []float64 {
	v := newEmbedding(model.TypeRoad)
	v[SlotOperational0] = conditionScore(r.Condition)
	if r.WidthMeters > 0 {
		v[SlotOperational1] = ratio(r.WidthMeters, 10)
	}
	// zero potholes reads as a perfect surface
	v[SlotOperational2] = 1 - ratio(r.PotholesPerKm, 20)
	if r.MainRoad {
		v[SlotOperational3] = 1
	} else {
		v[SlotOperational3] = 0
	}
	v[SlotOperational4] = trafficScore(r.Traffic)
	fillUniversal(v, roadCriticality(r), r.Universal, now)
	return v
}

// EncodeBuilding builds the embedding for a building, school, hospital or
// market node.
func EncodeBuilding(b *model.Building, now time.Time) []float64 {
	v := newEmbedding(b.NodeType())
	switch {
	case b.Capacity > 0:
		v[SlotOperational0] = ratio(b.Occupancy, b.Capacity)
	case b.Occupancy > 0:
		v[SlotOperational0] = ratio(b.Occupancy, 500)
	}
	if b.Floors > 0 {
		v[SlotOperational1] = ratio(float64(b.Floors), 10)
	}
	v[SlotOperational2] = buildingImportance(b.NodeType())
	if b.Capacity > 0 {
		v[SlotOperational3] = ratio(b.Capacity, 1000)
	}
	fillUniversal(v, buildingCriticality(b), b.Universal, now)
	return v
}

// EncodePowerNode builds the embedding for a power generation or
// distribution node.
func EncodePowerNode(p *model.PowerNode, now time.Time) []float64 {
	v := newEmbedding(model.TypePower)
	if p.CapacityKW > 0 {
		v[SlotOperational0] = ratio(p.CapacityKW, 100)
		v[SlotOperational1] = ratio(p.LoadKW, p.CapacityKW)
	}
	v[SlotOperational2] = statusScore(p.Status)
	if p.VoltageV > 0 {
		v[SlotOperational3] = ratio(p.VoltageV, 240)
	}
	if p.Households > 0 {
		v[SlotOperational4] = ratio(p.Households, 500)
	}
	fillUniversal(v, powerCriticality(p), p.Universal, now)
	return v
}

// EncodeWaterTank builds the embedding for a water storage tank.
func EncodeWaterTank(t *model.WaterTank, now time.Time) []float64 {
	v := newEmbedding(model.TypeTank)
	if t.CapacityLiters > 0 {
		v[SlotOperational0] = ratio(t.CapacityLiters, 20000)
	}
	if t.LevelPercent > 0 {
		v[SlotOperational1] = ratio(t.LevelPercent, 100)
	}
	v[SlotOperational2] = statusScore(t.Status)
	fillUniversal(v, tankCriticality(t), t.Universal, now)
	return v
}

// EncodeWaterPump builds the embedding for a water pump.
func EncodeWaterPump(p *model.WaterPump, now time.Time) []float64 {
	v := newEmbedding(model.TypePump)
	if p.CapacityLPH > 0 {
		v[SlotOperational0] = ratio(p.CapacityLPH, 5000)
		v[SlotOperational1] = ratio(p.FlowLPH, p.CapacityLPH)
	}
	v[SlotOperational2] = statusScore(p.Status)
	fillUniversal(v, pumpCriticality(p), p.Universal, now)
	return v
}

// EncodeWaterPipe builds the embedding for a pipe segment.
func EncodeWaterPipe(p *model.WaterPipe, now time.Time) []float64 {
	v := newEmbedding(model.TypePipe)
	if p.DiameterMM > 0 {
		v[SlotOperational0] = ratio(p.DiameterMM, 300)
	}
	if p.FlowLPH > 0 {
		v[SlotOperational1] = ratio(p.FlowLPH, 5000)
	}
	v[SlotOperational2] = statusScore(p.Status)
	fillUniversal(v, 0.6, p.Universal, now)
	return v
}

// EncodeSensor builds the embedding for a monitoring sensor.
func EncodeSensor(s *model.Sensor, now time.Time) []float64 {
	v := newEmbedding(model.TypeSensor)
	if s.BatteryPercent > 0 {
		v[SlotOperational0] = ratio(s.BatteryPercent, 100)
	}
	v[SlotOperational1] = statusScore(s.Status)
	fillUniversal(v, 0.3, s.Universal, now)
	return v
}

// EncodeCluster builds the embedding for a consumer cluster.
func EncodeCluster(c *model.ConsumerCluster, now time.Time) []float64 {
	v := newEmbedding(model.TypeCluster)
	if c.Households > 0 {
		v[SlotOperational0] = ratio(c.Households, 100)
	}
	if c.DemandLPD > 0 {
		v[SlotOperational1] = ratio(c.DemandLPD, 20000)
	}
	fillUniversal(v, clusterCriticality(c), c.Universal, now)
	return v
}

func conditionScore(c model.Condition) float64 {
	switch c {
	case model.ConditionGood:
		return 1
	case model.ConditionFair:
		return 0.7
	case model.ConditionPoor:
		return 0.4
	case model.ConditionCritical:
		return 0.1
	default:
		return Neutral
	}
}

func statusScore(s model.OperationalStatus) float64 {
	switch s {
	case model.StatusOperational:
		return 1
	case model.StatusDegraded:
		return 0.5
	case model.StatusOffline:
		return 0
	default:
		return Neutral
	}
}

func trafficScore(t model.TrafficLevel) float64 {
	switch t {
	case model.TrafficLow:
		return 0.3
	case model.TrafficMedium:
		return 0.6
	case model.TrafficHigh:
		return 1
	default:
		return Neutral
	}
}

func ratio(value, scale float64) float64 {
	if scale <= 0 {
		return Neutral
	}
	return clamp01(value / scale)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
