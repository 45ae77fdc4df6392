package validation

import (
	"errors"
	"strings"
	"testing"
)

// TestConfigValidator_NoErrors tests that valid values pass
func TestConfigValidator_NoErrors(t *testing.T) {
	err := NewConfigValidator("TestConfig").
		Required("name", "cascade").
		RangeInt("port", 8090, 1, 65535).
		Positive("workers", 4).
		PositiveFloat("distance", 80.0).
		RangeFloat("threshold", 0.15, 0, 1).
		OneOf("level", "INFO", []string{"DEBUG", "INFO", "WARN", "ERROR"}).
		Validate()

	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

// TestConfigValidator_Required tests empty-string detection
func TestConfigValidator_Required(t *testing.T) {
	cv := NewConfigValidator("TestConfig").Required("name", "")

	if !cv.HasErrors() {
		t.Fatal("Expected validation errors")
	}
	err := cv.Validate()
	if err == nil || !strings.Contains(err.Error(), "TestConfig.name") {
		t.Errorf("Error should name the field: %v", err)
	}
}

// TestConfigValidator_RangeInt tests boundary behavior
func TestConfigValidator_RangeInt(t *testing.T) {
	scenarios := []struct {
		value   int
		wantErr bool
	}{
		{1, false},
		{65535, false},
		{0, true},
		{70000, true},
	}

	for _, sc := range scenarios {
		err := NewConfigValidator("TestConfig").RangeInt("port", sc.value, 1, 65535).Validate()
		if (err != nil) != sc.wantErr {
			t.Errorf("Value %d: wantErr=%v, got %v", sc.value, sc.wantErr, err)
		}
	}
}

// TestConfigValidator_RangeFloat tests float range validation
func TestConfigValidator_RangeFloat(t *testing.T) {
	if err := NewConfigValidator("TestConfig").RangeFloat("threshold", 1.5, 0, 1).Validate(); err == nil {
		t.Error("Expected error for out-of-range float")
	}
	if err := NewConfigValidator("TestConfig").RangeFloat("threshold", 0, 0, 1).Validate(); err != nil {
		t.Errorf("Boundary value should pass: %v", err)
	}
}

// TestConfigValidator_PositiveFloat tests non-positive rejection
func TestConfigValidator_PositiveFloat(t *testing.T) {
	if err := NewConfigValidator("TestConfig").PositiveFloat("distance", 0).Validate(); err == nil {
		t.Error("Expected error for zero")
	}
	if err := NewConfigValidator("TestConfig").PositiveFloat("distance", -1).Validate(); err == nil {
		t.Error("Expected error for negative")
	}
}

// TestConfigValidator_OneOf tests the allowed-values check
func TestConfigValidator_OneOf(t *testing.T) {
	err := NewConfigValidator("TestConfig").
		OneOf("level", "TRACE", []string{"DEBUG", "INFO"}).
		Validate()
	if err == nil || !strings.Contains(err.Error(), "TRACE") {
		t.Errorf("Error should name the rejected value: %v", err)
	}
}

// TestConfigValidator_Custom tests custom validation functions
func TestConfigValidator_Custom(t *testing.T) {
	sentinel := errors.New("custom failure")
	cv := NewConfigValidator("TestConfig").
		Custom("field", func() error { return sentinel }).
		Custom("other", func() error { return nil })

	if len(cv.Errors()) != 1 {
		t.Fatalf("Expected 1 error, got %d", len(cv.Errors()))
	}
	if !errors.Is(cv.Errors()[0], sentinel) {
		t.Errorf("Custom error should wrap the original: %v", cv.Errors()[0])
	}
}

// TestConfigValidator_When tests conditional validation
func TestConfigValidator_When(t *testing.T) {
	err := NewConfigValidator("TestConfig").
		When(false, func(cv *ConfigValidator) {
			cv.Positive("skipped", -1)
		}).
		Validate()
	if err != nil {
		t.Errorf("Skipped validation should not fire: %v", err)
	}

	err = NewConfigValidator("TestConfig").
		When(true, func(cv *ConfigValidator) {
			cv.Positive("applied", -1)
		}).
		Validate()
	if err == nil {
		t.Error("Applied validation should fire")
	}
}

// TestConfigValidator_MultipleErrors tests error accumulation
func TestConfigValidator_MultipleErrors(t *testing.T) {
	cv := NewConfigValidator("TestConfig").
		Required("name", "").
		Positive("workers", -1).
		RangeInt("port", 0, 1, 65535)

	if len(cv.Errors()) != 3 {
		t.Errorf("Expected 3 errors, got %d", len(cv.Errors()))
	}
	err := cv.Validate()
	if err == nil || !strings.Contains(err.Error(), "3 errors") {
		t.Errorf("Combined error should report the count: %v", err)
	}
}

// TestValidateConfig tests the Validatable passthrough
func TestValidateConfig(t *testing.T) {
	if err := ValidateConfig(nil); err == nil {
		t.Error("Expected error for nil config")
	}
}

// TestDefaultOr tests zero-value defaulting
func TestDefaultOr(t *testing.T) {
	if got := DefaultOrInt(0, 42); got != 42 {
		t.Errorf("Expected default 42, got %d", got)
	}
	if got := DefaultOrInt(7, 42); got != 7 {
		t.Errorf("Expected 7, got %d", got)
	}
	if got := DefaultOrFloat(0, 0.15); got != 0.15 {
		t.Errorf("Expected default 0.15, got %f", got)
	}
	if got := DefaultOrFloat(0.3, 0.15); got != 0.3 {
		t.Errorf("Expected 0.3, got %f", got)
	}
}
