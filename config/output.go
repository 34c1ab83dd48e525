package config

import "fmt"

// OutputConfig defines where and how reports are written.
type OutputConfig struct {
	// Format selects the report encoding: "csv" or "json".
	Format string `json:"format" yaml:"format"`
	// SchedulePath is the optimized schedule report location.
	SchedulePath string `json:"schedule_path" yaml:"schedule_path"`
	// CutListPath is the cut list report location.
	CutListPath string `json:"cut_list_path" yaml:"cut_list_path"`
}

// SetDefaults applies sane defaults.
func (c *OutputConfig) SetDefaults() {
	if c.Format == "" {
		c.Format = "csv"
	}
	if c.SchedulePath == "" {
		c.SchedulePath = "optimized_schedule." + c.Format
	}
	if c.CutListPath == "" {
		c.CutListPath = "cut_list." + c.Format
	}
}

// Validate checks mandatory fields.
func (c OutputConfig) Validate() error {
	if c.Format != "csv" && c.Format != "json" {
		return fmt.Errorf("unknown output format %s", c.Format)
	}
	if c.SchedulePath == "" || c.CutListPath == "" {
		return fmt.Errorf("output paths are required")
	}
	return nil
}
