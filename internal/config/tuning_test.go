package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestTuningDefaults(t *testing.T) {
	var cfg *TuningConfig // nil config is all defaults

	if got := cfg.GetRobotsPerTeam(); got != DefaultRobotsPerTeam {
		t.Errorf("GetRobotsPerTeam = %d, want %d", got, DefaultRobotsPerTeam)
	}
	if got := cfg.GetStepLength(); got != DefaultStepLength {
		t.Errorf("GetStepLength = %v, want %v", got, DefaultStepLength)
	}
	if got := cfg.GetBallFriction(); got != DefaultBallFriction {
		t.Errorf("GetBallFriction = %v, want %v", got, DefaultBallFriction)
	}
	if got := cfg.GetCurveSigmaScale(); got != DefaultCurveSigmaScale {
		t.Errorf("GetCurveSigmaScale = %v, want %v", got, DefaultCurveSigmaScale)
	}
}

func TestLoadTuningConfigPartial(t *testing.T) {
	path := writeConfig(t, "tuning.json", `{"step_length": "20ms", "ball_friction": 0.5}`)

	cfg, err := LoadTuningConfig(path)
	if err != nil {
		t.Fatalf("LoadTuningConfig: %v", err)
	}
	if got := cfg.GetStepLength(); got != 20*time.Millisecond {
		t.Errorf("GetStepLength = %v, want 20ms", got)
	}
	if got := cfg.GetBallFriction(); got != 0.5 {
		t.Errorf("GetBallFriction = %v, want 0.5", got)
	}
	// Unset fields keep defaults.
	if got := cfg.GetRobotsPerTeam(); got != DefaultRobotsPerTeam {
		t.Errorf("GetRobotsPerTeam = %d, want default", got)
	}
}

func TestLoadTuningConfigRejectsInvalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"bad_step.json", `{"step_length": "fast"}`},
		{"zero_step.json", `{"step_length": "0s"}`},
		{"neg_friction.json", `{"ball_friction": -1}`},
		{"neg_sigma.json", `{"curve_sigma_scale": -0.1}`},
		{"zero_team.json", `{"robots_per_team": 0}`},
		{"not_json.json", `{`},
	}
	for _, c := range cases {
		path := writeConfig(t, c.name, c.content)
		if _, err := LoadTuningConfig(path); err == nil {
			t.Errorf("%s: expected error", c.name)
		}
	}
}

func TestLoadTuningConfigRejectsNonJSONPath(t *testing.T) {
	path := writeConfig(t, "tuning.yaml", `{}`)
	if _, err := LoadTuningConfig(path); err == nil {
		t.Error("expected error for non-.json extension")
	}
}
