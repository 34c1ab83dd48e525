package metrics

import (
	"errors"
	"fmt"

	coremetrics "github.com/obsnight/transitplan/core/metrics"
)

// MultiRecorder fans a run out to several recorders and joins their
// errors.
type MultiRecorder struct {
	recorders []coremetrics.RunRecorder
}

// NewMultiRecorder composes the given recorders. Nil entries are skipped.
func NewMultiRecorder(recorders ...coremetrics.RunRecorder) *MultiRecorder {
	m := &MultiRecorder{}
	for _, r := range recorders {
		if r != nil {
			m.recorders = append(m.recorders, r)
		}
	}
	return m
}

// RecordRun implements coremetrics.RunRecorder.
func (m *MultiRecorder) RecordRun(res coremetrics.RunResult) error {
	var errs []error
	for _, r := range m.recorders {
		if err := r.RecordRun(res); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewRecorder builds the recorder stack selected by cfg. An empty sink
// list yields a NopRecorder.
func NewRecorder(cfg coremetrics.Config) (coremetrics.RunRecorder, error) {
	if len(cfg.Sinks) == 0 {
		return coremetrics.NopRecorder{}, nil
	}
	var recorders []coremetrics.RunRecorder
	for _, name := range cfg.Sinks {
		switch name {
		case "prometheus":
			rec, err := NewPromRecorder()
			if err != nil {
				return nil, fmt.Errorf("prometheus recorder: %w", err)
			}
			recorders = append(recorders, rec)
		case "influx":
			recorders = append(recorders, NewInfluxRecorderWithFallback(cfg.Influx))
		case "nop":
			recorders = append(recorders, coremetrics.NopRecorder{})
		default:
			return nil, fmt.Errorf("unknown metrics sink %q", name)
		}
	}
	if len(recorders) == 1 {
		return recorders[0], nil
	}
	return NewMultiRecorder(recorders...), nil
}
