package service

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gridsage/cascade/pkg/features"
	"github.com/gridsage/cascade/pkg/graph"
	"github.com/gridsage/cascade/pkg/impact"
	"github.com/gridsage/cascade/pkg/logging"
	"github.com/gridsage/cascade/pkg/metrics"
	"github.com/gridsage/cascade/pkg/model"
	"github.com/gridsage/cascade/pkg/propagation"
)

// Options configures a Predictor. Zero values fall back to defaults.
type Options struct {
	Build                graph.BuildConfig
	Seed                 int64
	ProbabilityThreshold float64
	Logger               logging.Logger
	Metrics              *metrics.Registry
	Clock                func() time.Time
}

// Predictor owns the current infrastructure graph and the fixed
// propagation network. Each Predictor instance is its own session: the
// graph lives behind a RWMutex and Initialize swaps in a fully built
// graph atomically, so a racing prediction observes either the old or the
// new graph, never a partial one.
type Predictor struct {
	mu       sync.RWMutex
	graph    *graph.Graph
	network  *propagation.Network
	builder  *graph.Builder
	analyzer *impact.Analyzer
	logger   logging.Logger
	registry *metrics.Registry
	clock    func() time.Time
}

// NewPredictor creates a predictor in the uninitialized state.
func NewPredictor(opts Options) *Predictor {
	if opts.Logger == nil {
		opts.Logger = logging.NewNopLogger()
	}
	if opts.Seed == 0 {
		opts.Seed = propagation.DefaultSeed
	}
	if opts.Build == (graph.BuildConfig{}) {
		opts.Build = graph.DefaultBuildConfig()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	return &Predictor{
		network:  propagation.NewNetwork(opts.Seed),
		builder:  graph.NewBuilder(opts.Build, opts.Logger),
		analyzer: impact.NewAnalyzer(opts.ProbabilityThreshold, opts.Logger),
		logger:   opts.Logger,
		registry: opts.Metrics,
		clock:    opts.Clock,
	}
}

// Initialize rebuilds the graph from a complete snapshot of
// infrastructure state, discarding any previous graph. Missing or empty
// snapshot sections are skipped, never an error. The returned view seeds
// the caller's visualization.
func (p *Predictor) Initialize(snap *model.Snapshot) *InitResult {
	start := p.clock()
	if snap == nil {
		snap = &model.Snapshot{}
	}

	g := p.builder.Build(snap, start)

	p.mu.Lock()
	p.graph = g
	p.mu.Unlock()

	if p.registry != nil {
		p.registry.RecordInitialization(p.clock().Sub(start), g.NodeCount(), g.EdgeCount())
	}
	p.logger.Info("predictor initialized",
		logging.Component("predictor"),
		logging.Int("nodes", g.NodeCount()),
		logging.Int("edges", g.EdgeCount()))

	return graphView(g)
}

// PredictFailureImpact injects a failure into the named node and runs the
// full propagation, decoding, ranking and assessment pipeline.
func (p *Predictor) PredictFailureImpact(nodeID, failureType, severity string) (*Prediction, error) {
	const op = "PredictFailureImpact"
	start := p.clock()

	p.mu.RLock()
	defer p.mu.RUnlock()

	g := p.graph
	if g == nil {
		p.recordPrediction("not_initialized", 0, 0)
		return nil, &PredictError{Op: op, NodeID: nodeID, Cause: ErrNotInitialized}
	}

	failed, ok := g.Node(nodeID)
	if !ok {
		p.recordPrediction("unknown_node", 0, 0)
		sample := g.SampleIDs(5)
		return nil, &PredictError{
			Op:     op,
			NodeID: nodeID,
			Cause:  fmt.Errorf("%w (valid ids include: %s)", ErrUnknownNode, strings.Join(sample, ", ")),
		}
	}

	failureType = normalizeFailureType(failureType, failed.Type)
	sev := impact.ParseSeverity(severity)

	outputs := p.network.Forward(injectFailure(g, failed.ID), g.Matrix())
	affected, paths, assessment := p.analyzer.Analyze(g, failed, failureType, sev, outputs)

	criticalCount, highCount := 0, 0
	for _, n := range affected {
		switch n.Severity {
		case impact.SeverityCritical:
			criticalCount++
		case impact.SeverityHigh:
			highCount++
		}
	}

	prediction := &Prediction{
		ID: uuid.NewString(),
		SourceFailure: SourceFailure{
			NodeID:      failed.ID,
			Name:        failed.Name,
			Type:        failed.Type,
			FailureType: failureType,
			Severity:    sev,
		},
		AffectedNodes:     affected,
		PropagationPath:   paths,
		OverallAssessment: assessment,
		TotalAffected:     len(affected),
		CriticalCount:     criticalCount,
		HighCount:         highCount,
		Timestamp:         p.clock(),
	}

	p.recordPrediction("success", p.clock().Sub(start), len(affected))
	p.logger.Info("failure impact predicted",
		logging.Component("predictor"),
		logging.PredictionID(prediction.ID),
		logging.NodeID(nodeID),
		logging.FailureType(failureType),
		logging.Int("affected", len(affected)))

	return prediction, nil
}

// FailureScenarios returns the static scenario catalog.
func (p *Predictor) FailureScenarios() []impact.Scenario {
	return impact.FailureScenarios()
}

// Initialized reports whether a graph has been built.
func (p *Predictor) Initialized() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.graph != nil
}

// GraphSize returns the current node and edge counts.
func (p *Predictor) GraphSize() (nodes, edges int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.graph == nil {
		return 0, 0
	}
	return p.graph.NodeCount(), p.graph.EdgeCount()
}

func (p *Predictor) recordPrediction(status string, duration time.Duration, affected int) {
	if p.registry != nil {
		p.registry.RecordPrediction(status, duration, affected)
	}
}

// normalizeFailureType degrades failure types not catalogued for the node
// type to the generic failure scenario.
func normalizeFailureType(failureType string, t model.NodeType) string {
	if failureType == "" || !impact.ScenarioAppliesTo(failureType, t) {
		return "failure"
	}
	return failureType
}

// injectFailure returns the per-node embedding rows for the forward pass,
// with the failed node's operational slots zeroed and its failure flag
// set. The overwrite happens on a copy, so the stored graph is never
// mutated.
func injectFailure(g *graph.Graph, failedID string) [][]float64 {
	n := g.NodeCount()
	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		node := g.NodeAt(i)
		if node.ID != failedID {
			rows[i] = node.Embedding
			continue
		}
		injected := make([]float64, len(node.Embedding))
		copy(injected, node.Embedding)
		for slot := features.SlotOperational0; slot <= features.SlotOperational4; slot++ {
			injected[slot] = 0
		}
		injected[features.SlotFailureFlag] = 1
		rows[i] = injected
	}
	return rows
}

func graphView(g *graph.Graph) *InitResult {
	nodes := make([]NodeView, 0, g.NodeCount())
	for _, n := range g.Nodes() {
		pos, _ := g.Position(n.ID)
		nodes = append(nodes, NodeView{ID: n.ID, Type: n.Type, Name: n.Name, X: pos.X, Y: pos.Y})
	}

	edges := make([]EdgeView, 0)
	for _, e := range g.Edges() {
		edges = append(edges, EdgeView{
			Source:       e.Source,
			Target:       e.Target,
			Weight:       e.Weight,
			Kind:         e.Kind,
			Relationship: e.Relationship,
		})
	}
	return &InitResult{Nodes: nodes, Edges: edges}
}
