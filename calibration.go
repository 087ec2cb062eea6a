package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"gps_flyover/timeline"
)

// loadCalibration returns the default calibration with any values from the
// YAML file at path applied on top. An empty path yields the defaults.
func loadCalibration(path string) (timeline.Calibration, error) {
	cal := timeline.DefaultCalibration()
	if path == "" {
		return cal, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cal, fmt.Errorf("failed to read calibration file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cal); err != nil {
		return cal, fmt.Errorf("failed to parse calibration file: %w", err)
	}
	if err := cal.Validate(); err != nil {
		return cal, fmt.Errorf("calibration file %s: %w", path, err)
	}
	return cal, nil
}
