package config

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.WarnUnusedVariables {
		t.Error("expected unused-variable warnings on by default")
	}
	if cfg.MaxInstantiationsPerItem != 256 {
		t.Errorf("expected default instantiation cap of 256, got %d", cfg.MaxInstantiationsPerItem)
	}
}

func TestParseCompilerConfigFillsDefaults(t *testing.T) {
	cfg, err := ParseCompilerConfig([]byte(`warn_unused_variables: false`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.WarnUnusedVariables {
		t.Error("expected warn_unused_variables: false to be honored")
	}
	if cfg.MaxInstantiationsPerItem != 256 {
		t.Errorf("expected omitted max_instantiations_per_item to fall back to 256, got %d", cfg.MaxInstantiationsPerItem)
	}
}

func TestParseCompilerConfigOverridesBoth(t *testing.T) {
	cfg, err := ParseCompilerConfig([]byte("warn_unused_variables: false\nmax_instantiations_per_item: 10\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.WarnUnusedVariables {
		t.Error("expected warn_unused_variables: false to be honored")
	}
	if cfg.MaxInstantiationsPerItem != 10 {
		t.Errorf("expected max_instantiations_per_item 10, got %d", cfg.MaxInstantiationsPerItem)
	}
}

func TestParseCompilerConfigRejectsNonPositiveCap(t *testing.T) {
	cfg, err := ParseCompilerConfig([]byte("max_instantiations_per_item: -5\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxInstantiationsPerItem != 256 {
		t.Errorf("expected a non-positive cap to fall back to the default, got %d", cfg.MaxInstantiationsPerItem)
	}
}

func TestParseCompilerConfigRejectsMalformedYAML(t *testing.T) {
	if _, err := ParseCompilerConfig([]byte("not: [valid: yaml")); err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}

func TestLoadCompilerConfigMissingFile(t *testing.T) {
	if _, err := LoadCompilerConfig("/nonexistent/enumc.yaml"); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestGetOperatorKnownAndUnknown(t *testing.T) {
	op := GetOperator("+")
	if op == nil || op.Precedence != PrecAdditive {
		t.Fatalf("expected + to resolve with additive precedence, got %v", op)
	}
	if GetOperator("=>") != nil {
		t.Fatal("expected an unregistered symbol to resolve to nil")
	}
}
