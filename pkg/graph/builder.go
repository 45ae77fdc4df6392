package graph

import (
	"time"

	"github.com/gridsage/cascade/pkg/features"
	"github.com/gridsage/cascade/pkg/logging"
	"github.com/gridsage/cascade/pkg/model"
	"github.com/gridsage/cascade/pkg/vector"
)

// Dependency edge weights. Explicit dependencies always dominate
// proximity edges, which are scaled down by proximityScale.
const (
	weightPowerSupply    = 0.9
	weightRoadAccess     = 0.8
	weightAccessReverse  = 0.5
	weightIntersection   = 0.85
	weightPumpFeed       = 0.9
	weightFeedReverse    = 0.6
	weightPipeConnection = 0.9
	weightPipeReverse    = 0.6

	proximityScale = 0.7
	proximityFloor = 0.1
)

// BuildConfig holds the distance thresholds for edge synthesis, in the
// settlement's coordinate units.
type BuildConfig struct {
	PowerSupplyDistance   float64 `yaml:"powerSupplyDistance"`
	RoadAccessDistance    float64 `yaml:"roadAccessDistance"`
	IntersectionTolerance float64 `yaml:"intersectionTolerance"`
	ProximityDistance     float64 `yaml:"proximityDistance"`
}

// DefaultBuildConfig returns the thresholds used when none are configured.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		PowerSupplyDistance:   100,
		RoadAccessDistance:    50,
		IntersectionTolerance: 5,
		ProximityDistance:     80,
	}
}

// Builder assembles a Graph from a snapshot.
type Builder struct {
	cfg    BuildConfig
	logger logging.Logger
}

// NewBuilder creates a graph builder.
func NewBuilder(cfg BuildConfig, logger logging.Logger) *Builder {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Builder{cfg: cfg, logger: logger}
}

// Build constructs the full graph from a snapshot: nodes with embeddings,
// explicit dependency edges, proximity edges, and the dense adjacency
// matrix. Missing or empty snapshot sections contribute nothing and are
// never an error.
func (b *Builder) Build(snap *model.Snapshot, now time.Time) *Graph {
	g := NewGraph()

	b.addNodes(g, snap, now)
	b.addDependencyEdges(g, snap)
	b.buildProximityEdges(g, b.cfg.ProximityDistance)
	g.BuildAdjacencyMatrix()

	b.logger.Info("graph built",
		logging.Component("graph-builder"),
		logging.Int("nodes", g.NodeCount()),
		logging.Int("edges", g.EdgeCount()))
	return g
}

func (b *Builder) addNodes(g *Graph, snap *model.Snapshot, now time.Time) {
	for i := range snap.Roads {
		r := &snap.Roads[i]
		g.AddNode(r.ID, model.TypeRoad, r.Name, features.EncodeRoad(r, now), r.Position)
	}
	for i := range snap.Buildings {
		bd := &snap.Buildings[i]
		g.AddNode(bd.ID, bd.NodeType(), bd.Name, features.EncodeBuilding(bd, now), bd.Position)
	}
	for i := range snap.PowerNodes {
		p := &snap.PowerNodes[i]
		g.AddNode(p.ID, model.TypePower, p.Name, features.EncodePowerNode(p, now), p.Position)
	}
	for i := range snap.WaterTanks {
		t := &snap.WaterTanks[i]
		g.AddNode(t.ID, model.TypeTank, t.Name, features.EncodeWaterTank(t, now), t.Position)
	}
	for i := range snap.WaterPumps {
		p := &snap.WaterPumps[i]
		g.AddNode(p.ID, model.TypePump, p.Name, features.EncodeWaterPump(p, now), p.Position)
	}
	for i := range snap.WaterPipes {
		p := &snap.WaterPipes[i]
		g.AddNode(p.ID, model.TypePipe, p.Name, features.EncodeWaterPipe(p, now), p.Position)
	}
	for i := range snap.Sensors {
		s := &snap.Sensors[i]
		g.AddNode(s.ID, model.TypeSensor, s.Name, features.EncodeSensor(s, now), s.Position)
	}
	for i := range snap.Clusters {
		c := &snap.Clusters[i]
		g.AddNode(c.ID, model.TypeCluster, c.Name, features.EncodeCluster(c, now), c.Position)
	}
}

// addDependencyEdges synthesizes the explicit type-aware dependency edges:
// power supply, road access, road intersections, pump-tank feeds and pipe
// endpoint connections.
func (b *Builder) addDependencyEdges(g *Graph, snap *model.Snapshot) {
	b.addPowerSupplyEdges(g, snap)
	b.addRoadAccessEdges(g, snap)
	b.addIntersectionEdges(g, snap)
	b.addWaterEdges(g, snap)
}

// addPowerSupplyEdges connects every power node to the buildings, pumps
// and tanks within the power-supply distance threshold.
func (b *Builder) addPowerSupplyEdges(g *Graph, snap *model.Snapshot) {
	for i := range snap.PowerNodes {
		p := &snap.PowerNodes[i]

		for j := range snap.Buildings {
			bd := &snap.Buildings[j]
			if b.within(p.Position, bd.Position, b.cfg.PowerSupplyDistance) {
				g.AddEdge(p.ID, bd.ID, weightPowerSupply, KindDependency, "power-supply")
			}
		}
		for j := range snap.WaterPumps {
			wp := &snap.WaterPumps[j]
			if b.within(p.Position, wp.Position, b.cfg.PowerSupplyDistance) {
				g.AddEdge(p.ID, wp.ID, weightPowerSupply, KindDependency, "power-supply")
			}
		}
		for j := range snap.WaterTanks {
			wt := &snap.WaterTanks[j]
			if b.within(p.Position, wt.Position, b.cfg.PowerSupplyDistance) {
				g.AddEdge(p.ID, wt.ID, weightPowerSupply, KindDependency, "power-supply")
			}
		}
	}
}

// addRoadAccessEdges connects every building to its nearest road within
// the road-access threshold. The road->building direction carries the
// failure influence; the reverse edge is weaker.
func (b *Builder) addRoadAccessEdges(g *Graph, snap *model.Snapshot) {
	for i := range snap.Buildings {
		bd := &snap.Buildings[i]

		nearestID := ""
		nearestDist := b.cfg.RoadAccessDistance
		for j := range snap.Roads {
			r := &snap.Roads[j]
			d := vector.Distance2D(bd.Position.X, bd.Position.Y, r.Position.X, r.Position.Y)
			if d <= nearestDist {
				nearestDist = d
				nearestID = r.ID
			}
		}
		if nearestID != "" {
			g.AddEdge(nearestID, bd.ID, weightRoadAccess, KindDependency, "road-access")
			g.AddEdge(bd.ID, nearestID, weightAccessReverse, KindDependency, "road-access")
		}
	}
}

// addIntersectionEdges connects roads whose paths share a near-coincident
// point.
func (b *Builder) addIntersectionEdges(g *Graph, snap *model.Snapshot) {
	for i := range snap.Roads {
		for j := i + 1; j < len(snap.Roads); j++ {
			a, c := &snap.Roads[i], &snap.Roads[j]
			if b.roadsIntersect(a, c) {
				g.AddEdge(a.ID, c.ID, weightIntersection, KindDependency, "intersection")
				g.AddEdge(c.ID, a.ID, weightIntersection, KindDependency, "intersection")
			}
		}
	}
}

func (b *Builder) roadsIntersect(a, c *model.Road) bool {
	pathA := a.Path
	if len(pathA) == 0 {
		pathA = []model.Coordinate{a.Position}
	}
	pathC := c.Path
	if len(pathC) == 0 {
		pathC = []model.Coordinate{c.Position}
	}
	for _, pa := range pathA {
		for _, pc := range pathC {
			if b.within(pa, pc, b.cfg.IntersectionTolerance) {
				return true
			}
		}
	}
	return false
}

// addWaterEdges connects pumps to their declared tanks and pipes to their
// declared endpoints.
func (b *Builder) addWaterEdges(g *Graph, snap *model.Snapshot) {
	for i := range snap.WaterPumps {
		p := &snap.WaterPumps[i]
		if p.TankID == "" {
			continue
		}
		g.AddEdge(p.TankID, p.ID, weightPumpFeed, KindDependency, "pump-feed")
		g.AddEdge(p.ID, p.TankID, weightFeedReverse, KindDependency, "pump-feed")
	}

	for i := range snap.WaterPipes {
		p := &snap.WaterPipes[i]
		if p.FromID != "" {
			g.AddEdge(p.FromID, p.ID, weightPipeConnection, KindDependency, "pipe-connection")
			g.AddEdge(p.ID, p.FromID, weightPipeReverse, KindDependency, "pipe-connection")
		}
		if p.ToID != "" {
			g.AddEdge(p.ID, p.ToID, weightPipeConnection, KindDependency, "pipe-connection")
			g.AddEdge(p.ToID, p.ID, weightPipeReverse, KindDependency, "pipe-connection")
		}
	}
}

// buildProximityEdges adds a bidirectional edge between every pair of
// nodes closer than maxDistance, weighted inversely to distance and scaled
// by proximityScale to keep proximity subordinate to explicit dependencies.
func (b *Builder) buildProximityEdges(g *Graph, maxDistance float64) {
	if maxDistance <= 0 {
		return
	}
	ids := g.NodeIDs()
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			p1, ok1 := g.Position(ids[i])
			p2, ok2 := g.Position(ids[j])
			if !ok1 || !ok2 {
				continue
			}
			d := vector.Distance2D(p1.X, p1.Y, p2.X, p2.Y)
			if d >= maxDistance {
				continue
			}
			w := 1 - d/maxDistance
			if w < proximityFloor {
				w = proximityFloor
			}
			w *= proximityScale
			g.AddEdge(ids[i], ids[j], w, KindProximity, "proximity")
			g.AddEdge(ids[j], ids[i], w, KindProximity, "proximity")
		}
	}
}

func (b *Builder) within(a, c model.Coordinate, maxDistance float64) bool {
	return vector.Distance2D(a.X, a.Y, c.X, c.Y) <= maxDistance
}
