package cmd

import "testing"

// TestNewContextHonorsConfiguredTrace ensures .vcore.yaml's "trace: true"
// force-enables fold-trace recording for commands other than "trace".
func TestNewContextHonorsConfiguredTrace(t *testing.T) {
	oldCfg := cfg
	defer func() { cfg = oldCfg }()

	cfg = &Config{Trace: false}
	if ctx := newContext("", ""); ctx.Trace() != nil {
		t.Fatal("Trace() should be nil when cfg.Trace is false")
	}

	cfg = &Config{Trace: true}
	if ctx := newContext("", ""); ctx.Trace() == nil {
		t.Fatal("Trace() should be enabled when cfg.Trace is true")
	}
}

func TestNewContextHandlesNilConfig(t *testing.T) {
	oldCfg := cfg
	defer func() { cfg = oldCfg }()
	cfg = nil

	if ctx := newContext("", ""); ctx == nil {
		t.Fatal("newContext must not fail when cfg hasn't been loaded yet")
	}
}
