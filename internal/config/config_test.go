package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LocalBaseURL == "" {
		t.Error("LocalBaseURL has no default")
	}
	if cfg.GeminiModel == "" {
		t.Error("GeminiModel has no default")
	}
	if cfg.TranscriptDB == "" {
		t.Error("TranscriptDB has no default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LOCAL_MODEL", "qwen2.5")
	t.Setenv("OTEL_TRACES_ENABLED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LocalModel != "qwen2.5" {
		t.Errorf("LocalModel = %q", cfg.LocalModel)
	}
	if !cfg.TraceEnabled {
		t.Error("TraceEnabled not picked up")
	}
}
