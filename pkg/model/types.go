package model

// NodeType identifies the kind of infrastructure element a node represents.
type NodeType string

const (
	TypeRoad     NodeType = "road"
	TypeBuilding NodeType = "building"
	TypeSchool   NodeType = "school"
	TypeHospital NodeType = "hospital"
	TypeMarket   NodeType = "market"
	TypePower    NodeType = "power"
	TypeTank     NodeType = "tank"
	TypePump     NodeType = "pump"
	TypePipe     NodeType = "pipe"
	TypeSensor   NodeType = "sensor"
	TypeCluster  NodeType = "cluster"
)

// KnownNodeTypes returns every node type the predictor understands, in
// embedding slot order. The one-hot type slot of a node's embedding is the
// index of its type in this slice.
func KnownNodeTypes() []NodeType {
	return []NodeType{
		TypeRoad, TypeBuilding, TypeSchool, TypeHospital, TypeMarket,
		TypePower, TypeTank, TypePump, TypePipe, TypeSensor, TypeCluster,
	}
}

// Valid reports whether t is one of the known node types.
func (t NodeType) Valid() bool {
	for _, known := range KnownNodeTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// String returns the type as a plain string.
func (t NodeType) String() string {
	return string(t)
}

// Coordinate is a position in the settlement's local coordinate space.
type Coordinate struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Condition grades the physical state of a road or structure.
type Condition string

const (
	ConditionGood     Condition = "good"
	ConditionFair     Condition = "fair"
	ConditionPoor     Condition = "poor"
	ConditionCritical Condition = "critical"
)

// OperationalStatus describes whether an element is currently working.
type OperationalStatus string

const (
	StatusOperational OperationalStatus = "operational"
	StatusDegraded    OperationalStatus = "degraded"
	StatusOffline     OperationalStatus = "offline"
)

// TrafficLevel buckets road usage.
type TrafficLevel string

const (
	TrafficLow    TrafficLevel = "low"
	TrafficMedium TrafficLevel = "medium"
	TrafficHigh   TrafficLevel = "high"
)
