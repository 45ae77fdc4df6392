package service

import (
	"time"

	"github.com/gridsage/cascade/pkg/graph"
	"github.com/gridsage/cascade/pkg/impact"
	"github.com/gridsage/cascade/pkg/model"
)

// NodeView is one graph node in the shape the visualization layer
// consumes.
type NodeView struct {
	ID   string         `json:"id"`
	Type model.NodeType `json:"type"`
	Name string         `json:"name"`
	X    float64        `json:"x"`
	Y    float64        `json:"y"`
}

// EdgeView is one graph edge in the shape the visualization layer
// consumes.
type EdgeView struct {
	Source       string         `json:"source"`
	Target       string         `json:"target"`
	Weight       float64        `json:"weight"`
	Kind         graph.EdgeKind `json:"kind"`
	Relationship string         `json:"relationship"`
}

// InitResult seeds the visualization after a successful initialize.
type InitResult struct {
	Nodes []NodeView `json:"nodes"`
	Edges []EdgeView `json:"edges"`
}

// SourceFailure echoes the injected failure back to the caller.
type SourceFailure struct {
	NodeID      string          `json:"nodeId"`
	Name        string          `json:"name"`
	Type        model.NodeType  `json:"type"`
	FailureType string          `json:"failureType"`
	Severity    impact.Severity `json:"severity"`
}

// Prediction is the full result of one failure-impact prediction.
type Prediction struct {
	ID                string                `json:"id"`
	SourceFailure     SourceFailure         `json:"sourceFailure"`
	AffectedNodes     []impact.AffectedNode `json:"affectedNodes"`
	PropagationPath   []impact.PathStep     `json:"propagationPath"`
	OverallAssessment impact.Assessment     `json:"overallAssessment"`
	TotalAffected     int                   `json:"totalAffected"`
	CriticalCount     int                   `json:"criticalCount"`
	HighCount         int                   `json:"highCount"`
	Timestamp         time.Time             `json:"timestamp"`
}
