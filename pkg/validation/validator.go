package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/gridsage/cascade/pkg/model"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// Validation constants
	MaxIDLength          = 100
	MaxFailureTypeLength = 50
	MaxSnapshotNodes     = 10000

	// Node ids may carry separators common in GIS exports
	idPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.:-]*$`)
)

func init() {
	validate = validator.New()
}

// PredictRequest represents a request to predict failure impact
type PredictRequest struct {
	NodeID      string `json:"nodeId" validate:"required,max=100"`
	FailureType string `json:"failureType" validate:"omitempty,max=50"`
	Severity    string `json:"severity" validate:"omitempty,oneof=low medium high critical"`
}

// ValidatePredictRequest validates a failure-impact prediction request
func ValidatePredictRequest(req *PredictRequest) error {
	if req == nil {
		return errors.New("predict request cannot be nil")
	}

	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}

	if err := ValidateNodeID(req.NodeID); err != nil {
		return fmt.Errorf("NodeId: %w", err)
	}

	return nil
}

// ValidateSnapshot validates an infrastructure state snapshot before the
// graph is rebuilt from it. Duplicate ids across sections are rejected
// because the node table is keyed by id.
func ValidateSnapshot(snap *model.Snapshot) error {
	if snap == nil {
		return errors.New("snapshot cannot be nil")
	}

	if err := validate.Struct(snap); err != nil {
		return formatValidationError(err)
	}

	if count := snap.NodeCount(); count > MaxSnapshotNodes {
		return fmt.Errorf("snapshot has %d elements, maximum is %d", count, MaxSnapshotNodes)
	}

	seen := make(map[string]bool, snap.NodeCount())
	check := func(section, id string) error {
		if err := ValidateNodeID(id); err != nil {
			return fmt.Errorf("%s: %w", section, err)
		}
		if seen[id] {
			return fmt.Errorf("%s: duplicate node id '%s'", section, id)
		}
		seen[id] = true
		return nil
	}

	for _, r := range snap.Roads {
		if err := check("Roads", r.ID); err != nil {
			return err
		}
	}
	for _, b := range snap.Buildings {
		if err := check("Buildings", b.ID); err != nil {
			return err
		}
	}
	for _, p := range snap.PowerNodes {
		if err := check("PowerNodes", p.ID); err != nil {
			return err
		}
	}
	for _, t := range snap.WaterTanks {
		if err := check("WaterTanks", t.ID); err != nil {
			return err
		}
	}
	for _, p := range snap.WaterPumps {
		if err := check("WaterPumps", p.ID); err != nil {
			return err
		}
	}
	for _, p := range snap.WaterPipes {
		if err := check("WaterPipes", p.ID); err != nil {
			return err
		}
	}
	for _, s := range snap.Sensors {
		if err := check("Sensors", s.ID); err != nil {
			return err
		}
	}
	for _, c := range snap.Clusters {
		if err := check("Clusters", c.ID); err != nil {
			return err
		}
	}

	return nil
}

// ValidateNodeID validates a node identifier
func ValidateNodeID(id string) error {
	if id == "" {
		return errors.New("node id cannot be empty")
	}
	if len(id) > MaxIDLength {
		return fmt.Errorf("node id '%s' exceeds maximum length of %d characters", id, MaxIDLength)
	}
	if !idPattern.MatchString(id) {
		return fmt.Errorf("node id '%s' contains invalid characters (alphanumeric, underscore, dot, colon and dash allowed)", id)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Field()
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of %s", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, tag)
		}
	}

	return err
}
