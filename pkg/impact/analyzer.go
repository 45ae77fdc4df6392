package impact

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gridsage/cascade/pkg/graph"
	"github.com/gridsage/cascade/pkg/logging"
	"github.com/gridsage/cascade/pkg/model"
)

// DefaultProbabilityThreshold keeps only nodes whose decoded impact
// probability exceeds it.
const DefaultProbabilityThreshold = 0.15

// MaxPathDepth caps the breadth-first propagation-path reconstruction.
const MaxPathDepth = 5

// AffectedNode is one node predicted to suffer from the injected failure.
type AffectedNode struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Type              model.NodeType `json:"type"`
	Probability       int            `json:"probability"` // integer percent
	Severity          Severity       `json:"severity"`
	SeverityScore     float64        `json:"severityScore"`
	TimeToImpactHours float64        `json:"timeToImpactHours"`
	Effect            string         `json:"effect"`
	Recommendation    string         `json:"recommendation"`
	Metrics           Metrics        `json:"metrics"`
}

// PathStep is one edge of a reconstructed propagation chain.
type PathStep struct {
	From         string  `json:"from"`
	To           string  `json:"to"`
	Relationship string  `json:"relationship"`
	Weight       float64 `json:"weight"`
	Depth        int     `json:"depth"`
}

// Assessment aggregates the prediction into an overall picture.
type Assessment struct {
	RiskLevel              Severity `json:"riskLevel"`
	Summary                string   `json:"summary"`
	PriorityActions        []string `json:"priorityActions"`
	EstimatedRecoveryHours float64  `json:"estimatedRecoveryHours"`
	AffectedPopulation     int      `json:"affectedPopulation"`
}

// Analyzer thresholds, ranks and packages decoded metrics.
type Analyzer struct {
	threshold float64
	maxDepth  int
	logger    logging.Logger
}

// NewAnalyzer creates an analyzer with the given probability threshold.
// A non-positive threshold falls back to the default.
func NewAnalyzer(threshold float64, logger logging.Logger) *Analyzer {
	if threshold <= 0 {
		threshold = DefaultProbabilityThreshold
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Analyzer{threshold: threshold, maxDepth: MaxPathDepth, logger: logger}
}

// Analyze decodes every node's raw output, discards the failed node,
// keeps nodes above the probability threshold sorted by descending
// severity, reconstructs propagation paths and synthesizes the aggregate
// assessment.
func (a *Analyzer) Analyze(g *graph.Graph, failed *graph.Node, failureType string, severity Severity, outputs [][]float64) ([]AffectedNode, []PathStep, Assessment) {
	affected := a.collectAffected(g, failed, outputs)

	sort.SliceStable(affected, func(i, j int) bool {
		return affected[i].SeverityScore > affected[j].SeverityScore
	})

	paths := a.tracePropagation(g, failed.ID, affected)
	assessment := a.assess(failed, failureType, severity, affected)

	a.logger.Debug("impact analysis complete",
		logging.Component("impact-analyzer"),
		logging.NodeID(failed.ID),
		logging.Int("affected", len(affected)),
		logging.Int("path_steps", len(paths)))

	return affected, paths, assessment
}

func (a *Analyzer) collectAffected(g *graph.Graph, failed *graph.Node, outputs [][]float64) []AffectedNode {
	affected := make([]AffectedNode, 0)

	for i, raw := range outputs {
		node := g.NodeAt(i)
		if node.ID == failed.ID {
			continue
		}

		metrics := Decode(raw)
		if metrics.ImpactProbability <= a.threshold {
			continue
		}

		bucket := SeverityFromScore(metrics.SeverityScore)
		affected = append(affected, AffectedNode{
			ID:                node.ID,
			Name:              node.Name,
			Type:              node.Type,
			Probability:       int(metrics.ImpactProbability * 100),
			Severity:          bucket,
			SeverityScore:     metrics.SeverityScore,
			TimeToImpactHours: metrics.TimeToImpactHours,
			Effect:            EffectFor(failed.Type, failed.Name, node.Type),
			Recommendation:    RecommendationFor(node.Type, bucket),
			Metrics:           metrics,
		})
	}
	return affected
}

// tracePropagation walks breadth-first from the failed node, recording
// only edges that lead into the affected set. Depth is capped at
// MaxPathDepth.
func (a *Analyzer) tracePropagation(g *graph.Graph, failedID string, affected []AffectedNode) []PathStep {
	affectedSet := make(map[string]bool, len(affected))
	for _, n := range affected {
		affectedSet[n.ID] = true
	}

	type queueEntry struct {
		id    string
		depth int
	}

	steps := make([]PathStep, 0)
	visited := map[string]bool{failedID: true}
	queue := []queueEntry{{id: failedID, depth: 0}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current.depth >= a.maxDepth {
			continue
		}

		for _, edge := range g.OutEdges(current.id) {
			if visited[edge.Target] || !affectedSet[edge.Target] {
				continue
			}
			visited[edge.Target] = true
			steps = append(steps, PathStep{
				From:         edge.Source,
				To:           edge.Target,
				Relationship: edge.Relationship,
				Weight:       edge.Weight,
				Depth:        current.depth + 1,
			})
			queue = append(queue, queueEntry{id: edge.Target, depth: current.depth + 1})
		}
	}
	return steps
}

func (a *Analyzer) assess(failed *graph.Node, failureType string, severity Severity, affected []AffectedNode) Assessment {
	criticalCount, highCount := 0, 0
	totalSeverity := 0.0
	typeCounts := make(map[model.NodeType]int)

	for _, n := range affected {
		switch n.Severity {
		case SeverityCritical:
			criticalCount++
		case SeverityHigh:
			highCount++
		}
		totalSeverity += n.SeverityScore
		typeCounts[n.Type]++
	}

	meanSeverity := 0.0
	if len(affected) > 0 {
		meanSeverity = totalSeverity / float64(len(affected))
	}

	return Assessment{
		RiskLevel:              riskLevel(criticalCount, highCount, meanSeverity, len(affected)),
		Summary:                a.summarize(failed, failureType, affected, typeCounts),
		PriorityActions:        priorityActions(failed, typeCounts),
		EstimatedRecoveryHours: recoveryEstimate(failed.Type, failureType, severity, totalSeverity),
		AffectedPopulation:     affectedPopulation(failed, affected),
	}
}

// riskLevel derives the overall rating from critical/high counts and the
// mean severity of the affected set.
func riskLevel(criticalCount, highCount int, meanSeverity float64, totalAffected int) Severity {
	switch {
	case criticalCount > 0 || meanSeverity >= criticalThreshold:
		return SeverityCritical
	case highCount >= 3 || meanSeverity >= highThreshold:
		return SeverityHigh
	case totalAffected > 0 && meanSeverity >= mediumThreshold:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

func (a *Analyzer) summarize(failed *graph.Node, failureType string, affected []AffectedNode, typeCounts map[model.NodeType]int) string {
	name := failed.Name
	if name == "" {
		name = failed.ID
	}

	if len(affected) == 0 {
		return fmt.Sprintf("%s of %s (%s) is predicted to have no cascading impact on other infrastructure", titleCase(failureType), name, failed.Type)
	}

	breakdown := make([]string, 0, len(typeCounts))
	for _, t := range model.KnownNodeTypes() {
		if count := typeCounts[t]; count > 0 {
			breakdown = append(breakdown, fmt.Sprintf("%d %s", count, pluralize(t.String(), count)))
		}
	}

	return fmt.Sprintf("%s of %s (%s) is predicted to affect %d infrastructure elements: %s",
		titleCase(failureType), name, failed.Type, len(affected), strings.Join(breakdown, ", "))
}

// priorityActions assembles actions from type-presence rules over the
// affected set.
func priorityActions(failed *graph.Node, typeCounts map[model.NodeType]int) []string {
	name := failed.Name
	if name == "" {
		name = failed.ID
	}

	actions := []string{fmt.Sprintf("Dispatch inspection crew to %s", name)}
	if typeCounts[model.TypeRoad] > 0 {
		actions = append(actions, "Publish traffic diversions for affected roads")
	}
	if typeCounts[model.TypePower] > 0 {
		actions = append(actions, "Deploy emergency power to affected distribution points")
	}
	if typeCounts[model.TypeHospital] > 0 || typeCounts[model.TypeSchool] > 0 {
		actions = append(actions, "Activate backup services for hospitals and schools")
	}
	if typeCounts[model.TypeTank] > 0 || typeCounts[model.TypePump] > 0 || typeCounts[model.TypePipe] > 0 {
		actions = append(actions, "Arrange alternative water supply for affected areas")
	}
	return actions
}

// recoveryEstimate scales the type x failure-type base hours by the
// injected severity and the accumulated impact.
func recoveryEstimate(failedType model.NodeType, failureType string, severity Severity, totalSeverity float64) float64 {
	impactScale := 1 + totalSeverity/10
	if impactScale > 2 {
		impactScale = 2
	}
	return RecoveryBaseFor(failedType, failureType) * severity.Multiplier() * impactScale
}

// affectedPopulation sums flat per-type weights over the failed node and
// every affected node.
func affectedPopulation(failed *graph.Node, affected []AffectedNode) int {
	total := PopulationWeight(failed.Type)
	for _, n := range affected {
		total += PopulationWeight(n.Type)
	}
	return total
}

func titleCase(s string) string {
	if s == "" {
		return "Failure"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}
