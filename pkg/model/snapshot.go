package model

import (
	"time"
)

// Snapshot is a complete picture of a settlement's infrastructure state.
// The graph is rebuilt from scratch on every Initialize call; missing or
// empty sections are tolerated and simply contribute no nodes.
type Snapshot struct {
	Roads      []Road            `json:"roads" validate:"omitempty,dive"`
	Buildings  []Building        `json:"buildings" validate:"omitempty,dive"`
	PowerNodes []PowerNode       `json:"powerNodes" validate:"omitempty,dive"`
	WaterTanks []WaterTank       `json:"waterTanks" validate:"omitempty,dive"`
	WaterPumps []WaterPump       `json:"waterPumps" validate:"omitempty,dive"`
	WaterPipes []WaterPipe       `json:"waterPipes" validate:"omitempty,dive"`
	Sensors    []Sensor          `json:"sensors" validate:"omitempty,dive"`
	Clusters   []ConsumerCluster `json:"clusters" validate:"omitempty,dive"`
}

// NodeCount returns the total number of infrastructure elements across all
// sections of the snapshot.
func (s *Snapshot) NodeCount() int {
	return len(s.Roads) + len(s.Buildings) + len(s.PowerNodes) +
		len(s.WaterTanks) + len(s.WaterPumps) + len(s.WaterPipes) +
		len(s.Sensors) + len(s.Clusters)
}

// Universal holds the attributes every infrastructure element may carry.
// Pointer fields distinguish "not reported" from a genuine zero; unknown
// values are encoded as the neutral midpoint 0.5 rather than zero so that
// missing data does not read as "healthy".
type Universal struct {
	PopulationServed *float64   `json:"populationServed,omitempty" validate:"omitempty,min=0"`
	EconomicValue    *float64   `json:"economicValue,omitempty" validate:"omitempty,min=0,max=1"`
	FloodRisk        *float64   `json:"floodRisk,omitempty" validate:"omitempty,min=0,max=1"`
	FailureRate      *float64   `json:"failureRate,omitempty" validate:"omitempty,min=0,max=1"`
	LastMaintained   *time.Time `json:"lastMaintained,omitempty"`
}

// Road is a road segment. Path points, when present, are used to detect
// intersections with other roads.
type Road struct {
	ID            string       `json:"id" validate:"required"`
	Name          string       `json:"name"`
	Position      Coordinate   `json:"position"`
	Path          []Coordinate `json:"path,omitempty"`
	Condition     Condition    `json:"condition,omitempty" validate:"omitempty,oneof=good fair poor critical"`
	WidthMeters   float64      `json:"widthMeters,omitempty" validate:"omitempty,min=0"`
	PotholesPerKm float64      `json:"potholesPerKm,omitempty" validate:"omitempty,min=0"`
	MainRoad      bool         `json:"mainRoad,omitempty"`
	Traffic       TrafficLevel `json:"traffic,omitempty" validate:"omitempty,oneof=low medium high"`
	Universal
}

// Building is any occupied structure. Kind refines the node type: schools,
// hospitals and markets get their own graph node type and criticality.
type Building struct {
	ID        string     `json:"id" validate:"required"`
	Name      string     `json:"name"`
	Position  Coordinate `json:"position"`
	Kind      string     `json:"kind,omitempty" validate:"omitempty,oneof=house school hospital market shop other"`
	Occupancy float64    `json:"occupancy,omitempty" validate:"omitempty,min=0"`
	Capacity  float64    `json:"capacity,omitempty" validate:"omitempty,min=0"`
	Floors    int        `json:"floors,omitempty" validate:"omitempty,min=0"`
	Universal
}

// NodeType maps the building kind onto a graph node type.
func (b *Building) NodeType() NodeType {
	switch b.Kind {
	case "school":
		return TypeSchool
	case "hospital":
		return TypeHospital
	case "market":
		return TypeMarket
	default:
		return TypeBuilding
	}
}

// PowerNode is a generation or distribution point in the power network.
type PowerNode struct {
	ID         string            `json:"id" validate:"required"`
	Name       string            `json:"name"`
	Position   Coordinate        `json:"position"`
	CapacityKW float64           `json:"capacityKw,omitempty" validate:"omitempty,min=0"`
	LoadKW     float64           `json:"loadKw,omitempty" validate:"omitempty,min=0"`
	VoltageV   float64           `json:"voltageV,omitempty" validate:"omitempty,min=0"`
	Status     OperationalStatus `json:"status,omitempty" validate:"omitempty,oneof=operational degraded offline"`
	Households float64           `json:"households,omitempty" validate:"omitempty,min=0"`
	Universal
}

// WaterTank is a storage tank in the water network.
type WaterTank struct {
	ID             string            `json:"id" validate:"required"`
	Name           string            `json:"name"`
	Position       Coordinate        `json:"position"`
	CapacityLiters float64           `json:"capacityLiters,omitempty" validate:"omitempty,min=0"`
	LevelPercent   float64           `json:"levelPercent,omitempty" validate:"omitempty,min=0,max=100"`
	Status         OperationalStatus `json:"status,omitempty" validate:"omitempty,oneof=operational degraded offline"`
	Universal
}

// WaterPump moves water from its declared tank into the pipe network.
type WaterPump struct {
	ID           string            `json:"id" validate:"required"`
	Name         string            `json:"name"`
	Position     Coordinate        `json:"position"`
	TankID       string            `json:"tankId,omitempty"`
	CapacityLPH  float64           `json:"capacityLph,omitempty" validate:"omitempty,min=0"`
	FlowLPH      float64           `json:"flowLph,omitempty" validate:"omitempty,min=0"`
	Status       OperationalStatus `json:"status,omitempty" validate:"omitempty,oneof=operational degraded offline"`
	Universal
}

// WaterPipe connects two declared endpoints of the water network.
type WaterPipe struct {
	ID         string            `json:"id" validate:"required"`
	Name       string            `json:"name"`
	Position   Coordinate        `json:"position"`
	FromID     string            `json:"fromId,omitempty"`
	ToID       string            `json:"toId,omitempty"`
	DiameterMM float64           `json:"diameterMm,omitempty" validate:"omitempty,min=0"`
	FlowLPH    float64           `json:"flowLph,omitempty" validate:"omitempty,min=0"`
	Status     OperationalStatus `json:"status,omitempty" validate:"omitempty,oneof=operational degraded offline"`
	Universal
}

// Sensor is a monitoring device attached to the network.
type Sensor struct {
	ID             string            `json:"id" validate:"required"`
	Name           string            `json:"name"`
	Position       Coordinate        `json:"position"`
	Kind           string            `json:"kind,omitempty"`
	BatteryPercent float64           `json:"batteryPercent,omitempty" validate:"omitempty,min=0,max=100"`
	Status         OperationalStatus `json:"status,omitempty" validate:"omitempty,oneof=operational degraded offline"`
	Universal
}

// ConsumerCluster is a group of households consuming shared services.
type ConsumerCluster struct {
	ID         string     `json:"id" validate:"required"`
	Name       string     `json:"name"`
	Position   Coordinate `json:"position"`
	Households float64    `json:"households,omitempty" validate:"omitempty,min=0"`
	DemandLPD  float64    `json:"demandLpd,omitempty" validate:"omitempty,min=0"`
	Universal
}
