package metrics

import "time"

// RunResult aggregates the observable outcome of one planning run.
type RunResult struct {
	RunID            string
	Inputs           int
	Admitted         int
	Scheduled        int
	Rejections       map[string]int // cause wording -> count
	EquivalentOrders int
	Elapsed          time.Duration
	Time             time.Time
}

// RunRecorder records planning runs for observability purposes.
type RunRecorder interface {
	RecordRun(res RunResult) error
}

// NopRecorder discards everything.
type NopRecorder struct{}

// RecordRun implements RunRecorder.
func (NopRecorder) RecordRun(RunResult) error { return nil }

// Config selects and parameterizes the recorder sinks.
type Config struct {
	// Sinks lists the enabled recorders: "prometheus", "influx", "nop".
	Sinks  []string     `json:"sinks" yaml:"sinks"`
	Influx InfluxConfig `json:"influx" yaml:"influx"`
}

// InfluxConfig holds the InfluxDB connection parameters.
type InfluxConfig struct {
	URL    string `json:"url" yaml:"url"`
	Token  string `json:"token" yaml:"token"`
	Org    string `json:"org" yaml:"org"`
	Bucket string `json:"bucket" yaml:"bucket"`
}
