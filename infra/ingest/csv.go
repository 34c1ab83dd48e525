// Package ingest parses the transit candidate tables produced by
// ephemeris services. The core never reads files itself; this package
// is the ingestion collaborator feeding it typed events.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/obsnight/transitplan/core/filter"
	"github.com/obsnight/transitplan/core/model"
)

// Source column names, lowercased. The air-mass columns are optional;
// their absence is recorded in Table.Columns rather than treated as an
// error, because the admission filter reports it as a distinct cause.
const (
	colName       = "planetname"
	colDuration   = "transitduration"
	colMidpoint   = "midpointcalendar"
	colRA         = "ra"
	colDec        = "dec"
	colPeriod     = "period"
	colDepth      = "transitdepthcalc"
	colMidAir     = "midpointairmass"
	colIngressAir = "ingressairmass"
	colEgressAir  = "egressairmass"
	colMagnitude  = "magnitude_k"
)

// midpointLayouts are the timestamp formats seen in source exports.
var midpointLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"01/02/2006 15:04",
	time.RFC3339,
}

// Table is one ingested candidate table.
type Table struct {
	Events  []model.CandidateEvent
	Columns filter.Columns
}

// ReadFile reads a candidate CSV from disk.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Read parses a candidate table. Lines starting with '#' are comments.
// Missing or unparsable numeric cells become invalid OptFloats (the
// NaN convention of the source format); an unparsable midpoint is a
// malformed file and fails the read.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{colName, colDuration, colMidpoint} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	t := &Table{
		Columns: filter.Columns{
			MidAirMass:     has(idx, colMidAir),
			IngressAirMass: has(idx, colIngressAir),
			EgressAirMass:  has(idx, colEgressAir),
		},
	}
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line++
		midRaw := field(rec, idx, colMidpoint)
		mid, err := parseMidpoint(midRaw)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		t.Events = append(t.Events, model.CandidateEvent{
			Name:           field(rec, idx, colName),
			Duration:       parseOpt(field(rec, idx, colDuration)),
			Midpoint:       mid,
			RA:             parseOpt(field(rec, idx, colRA)),
			Dec:            parseOpt(field(rec, idx, colDec)),
			Period:         parseOpt(field(rec, idx, colPeriod)),
			TransitDepth:   parseOpt(field(rec, idx, colDepth)),
			MidAirMass:     parseOpt(field(rec, idx, colMidAir)),
			IngressAirMass: parseOpt(field(rec, idx, colIngressAir)),
			EgressAirMass:  parseOpt(field(rec, idx, colEgressAir)),
			Magnitude:      parseOpt(field(rec, idx, colMagnitude)),
		})
	}
	return t, nil
}

func has(idx map[string]int, name string) bool {
	_, ok := idx[name]
	return ok
}

func field(rec []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func parseOpt(s string) model.OptFloat {
	if s == "" || strings.EqualFold(s, "nan") {
		return model.OptFloat{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return model.OptFloat{}
	}
	return model.Float(v)
}

func parseMidpoint(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty midpoint")
	}
	for _, layout := range midpointLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized midpoint %q", s)
}
