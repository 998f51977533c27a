package console

import "testing"

func bandDefinition(t *testing.T) PanelDefinition {
	t.Helper()
	reg := NewRegistry()
	def, ok := reg.Definition("console.panel.metric_band")
	if !ok {
		t.Fatalf("metric band definition missing")
	}
	return def
}

func TestJSONSchemaValidatorAcceptsValidConfig(t *testing.T) {
	validator := NewJSONSchemaValidator()
	err := validator.Validate(bandDefinition(t), map[string]any{
		"label":           "Prediction Accuracy",
		"unit":            "%",
		"floor":           60,
		"ceiling":         80,
		"refresh_seconds": 4,
	})
	if err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestJSONSchemaValidatorRejectsMissingRequired(t *testing.T) {
	validator := NewJSONSchemaValidator()
	err := validator.Validate(bandDefinition(t), map[string]any{
		"label": "Prediction Accuracy",
	})
	if err == nil {
		t.Fatalf("expected missing floor/ceiling to fail validation")
	}
}

func TestJSONSchemaValidatorRejectsUnknownKeys(t *testing.T) {
	validator := NewJSONSchemaValidator()
	err := validator.Validate(bandDefinition(t), map[string]any{
		"label":    "Prediction Accuracy",
		"floor":    60,
		"ceiling":  80,
		"mystery":  true,
		"mystery2": "x",
	})
	if err == nil {
		t.Fatalf("expected additional properties to fail validation")
	}
}

func TestJSONSchemaValidatorSkipsEmptySchema(t *testing.T) {
	validator := NewJSONSchemaValidator()
	def := PanelDefinition{Code: "demo.panel.free", Name: "Free"}
	if err := validator.Validate(def, map[string]any{"anything": "goes"}); err != nil {
		t.Fatalf("expected empty schema to pass, got %v", err)
	}
}

func TestJSONSchemaValidatorCachesCompiledSchemas(t *testing.T) {
	validator := NewJSONSchemaValidator()
	def := bandDefinition(t)
	cfg := map[string]any{"label": "L", "floor": 1, "ceiling": 2}
	if err := validator.Validate(def, cfg); err != nil {
		t.Fatalf("first validation failed: %v", err)
	}
	if err := validator.Validate(def, cfg); err != nil {
		t.Fatalf("second validation failed: %v", err)
	}
	validator.mu.RLock()
	defer validator.mu.RUnlock()
	if len(validator.compiled) != 1 {
		t.Fatalf("expected one compiled schema, got %d", len(validator.compiled))
	}
}
