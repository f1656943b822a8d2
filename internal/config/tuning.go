// Package config loads the simulation's JSON configuration: tuning
// parameters for the physics shell and the setup-pose list robots are placed
// from at the start of a run.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// TuningConfig holds the run-level tuning knobs. Fields are pointers so a
// partial JSON file only overrides what it names; Get* methods fall back to
// defaults for unset fields.
type TuningConfig struct {
	// RobotsPerTeam is the team numbering offset: raw identifiers above it
	// belong to the second team.
	RobotsPerTeam *int `json:"robots_per_team,omitempty"`

	// StepLength is the physics step as a duration string like "10ms".
	StepLength *string `json:"step_length,omitempty"`

	// BallFriction is the horizontal deceleration applied to the rolling
	// ball under the planar engine, in m/s².
	BallFriction *float64 `json:"ball_friction,omitempty"`

	// CurveSigmaScale is the standard deviation of the ball curve draw per
	// second of elapsed sample time, in radians.
	CurveSigmaScale *float64 `json:"curve_sigma_scale,omitempty"`
}

// Defaults used when a field is not set in the JSON file.
const (
	DefaultRobotsPerTeam   = 20
	DefaultStepLength      = 10 * time.Millisecond
	DefaultBallFriction    = 0.35  // m/s²
	DefaultCurveSigmaScale = 0.015 // rad/s
)

func (c *TuningConfig) GetRobotsPerTeam() int {
	if c != nil && c.RobotsPerTeam != nil {
		return *c.RobotsPerTeam
	}
	return DefaultRobotsPerTeam
}

func (c *TuningConfig) GetStepLength() time.Duration {
	if c != nil && c.StepLength != nil {
		if d, err := time.ParseDuration(*c.StepLength); err == nil {
			return d
		}
	}
	return DefaultStepLength
}

func (c *TuningConfig) GetBallFriction() float64 {
	if c != nil && c.BallFriction != nil {
		return *c.BallFriction
	}
	return DefaultBallFriction
}

func (c *TuningConfig) GetCurveSigmaScale() float64 {
	if c != nil && c.CurveSigmaScale != nil {
		return *c.CurveSigmaScale
	}
	return DefaultCurveSigmaScale
}

// Validate checks that set fields are usable.
func (c *TuningConfig) Validate() error {
	if c.RobotsPerTeam != nil && *c.RobotsPerTeam < 1 {
		return fmt.Errorf("robots_per_team must be >= 1, got %d", *c.RobotsPerTeam)
	}
	if c.StepLength != nil {
		d, err := time.ParseDuration(*c.StepLength)
		if err != nil {
			return fmt.Errorf("invalid step_length %q: %w", *c.StepLength, err)
		}
		if d <= 0 {
			return fmt.Errorf("step_length must be positive, got %v", d)
		}
	}
	if c.BallFriction != nil && *c.BallFriction < 0 {
		return fmt.Errorf("ball_friction must be >= 0, got %f", *c.BallFriction)
	}
	if c.CurveSigmaScale != nil && *c.CurveSigmaScale < 0 {
		return fmt.Errorf("curve_sigma_scale must be >= 0, got %f", *c.CurveSigmaScale)
	}
	return nil
}

// LoadTuningConfig loads a TuningConfig from a JSON file. Fields omitted
// from the file keep their defaults, so partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &TuningConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// readConfigFile validates and reads a JSON config file (max 1MB).
func readConfigFile(path string) ([]byte, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return data, nil
}
