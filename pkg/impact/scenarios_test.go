package impact

import (
	"testing"

	"github.com/gridsage/cascade/pkg/model"
)

// TestFailureScenarios_Catalog tests catalog integrity: every scenario has
// an id, a name and at least one known applicable type
func TestFailureScenarios_Catalog(t *testing.T) {
	scenarios := FailureScenarios()
	if len(scenarios) == 0 {
		t.Fatal("Expected non-empty catalog")
	}

	known := make(map[model.NodeType]bool)
	for _, nt := range model.KnownNodeTypes() {
		known[nt] = true
	}

	seen := make(map[string]bool)
	for _, s := range scenarios {
		if s.ID == "" || s.Name == "" || s.Description == "" {
			t.Errorf("Incomplete scenario: %+v", s)
		}
		if seen[s.ID] {
			t.Errorf("Duplicate scenario id %q", s.ID)
		}
		seen[s.ID] = true

		if len(s.ApplicableTo) == 0 {
			t.Errorf("Scenario %q applies to no types", s.ID)
		}
		for _, nt := range s.ApplicableTo {
			if !known[nt] {
				t.Errorf("Scenario %q references unknown type %q", s.ID, nt)
			}
		}
	}
}

// TestFailureScenarios_GenericFailureCoversAllTypes tests that every node
// type has at least the generic failure mode
func TestFailureScenarios_GenericFailureCoversAllTypes(t *testing.T) {
	for _, nt := range model.KnownNodeTypes() {
		if !ScenarioAppliesTo("failure", nt) {
			t.Errorf("Type %q lacks the generic failure scenario", nt)
		}
	}
}

// TestScenarioAppliesTo tests type-specific applicability
func TestScenarioAppliesTo(t *testing.T) {
	if !ScenarioAppliesTo("flood", model.TypeRoad) {
		t.Error("Flood should apply to roads")
	}
	if ScenarioAppliesTo("flood", model.TypePower) {
		t.Error("Flood should not apply to power nodes")
	}
	if ScenarioAppliesTo("nonexistent", model.TypeRoad) {
		t.Error("Unknown scenario id should apply to nothing")
	}
}

// TestFailureScenarios_ReturnsCopy tests that callers cannot mutate the
// catalog
func TestFailureScenarios_ReturnsCopy(t *testing.T) {
	first := FailureScenarios()
	first[0].ID = "tampered"

	if FailureScenarios()[0].ID == "tampered" {
		t.Error("Catalog was mutated through the returned slice")
	}
}
