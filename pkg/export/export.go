// Package export renders optimized schedules and cut lists for the
// reporting side: CSV for spreadsheets, JSON for automation consumers.
// The core hands over typed data only; all display formatting happens
// here.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/obsnight/transitplan/core/model"
)

// DisplayTimeLayout is the timestamp format used in reports.
const DisplayTimeLayout = "2006-01-02 15:04"

var scheduleHeader = []string{
	"Name", "Duration (hours)", "Midpoint",
	"Transit Start Time", "Transit End Time",
	"Schedule Start Time", "Schedule End Time",
	"RA", "Dec", "Period", "Transit Depth", "Air Mass", "Magnitude K",
}

var cutListHeader = append(append([]string{}, scheduleHeader...), "Cause")

// ScheduleRow is the JSON shape of one planned slot. Optional numerics
// are null when the source had no value.
type ScheduleRow struct {
	Name          string   `json:"name"`
	DurationHours *float64 `json:"duration_hours"`
	Midpoint      string   `json:"midpoint"`
	TransitStart  string   `json:"transit_start"`
	TransitEnd    string   `json:"transit_end"`
	ScheduleStart string   `json:"schedule_start"`
	ScheduleEnd   string   `json:"schedule_end"`
	RA            *float64 `json:"ra"`
	Dec           *float64 `json:"dec"`
	Period        *float64 `json:"period"`
	TransitDepth  *float64 `json:"transit_depth"`
	AirMass       *float64 `json:"air_mass"`
	Magnitude     *float64 `json:"magnitude_k"`
}

// CutRow is a ScheduleRow plus the rejection cause. Window fields are
// empty when the event was cut before derivation.
type CutRow struct {
	ScheduleRow
	Cause string `json:"cause"`
}

// WriteScheduleCSV writes the optimized schedule to w.
func WriteScheduleCSV(w io.Writer, s model.Schedule) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(scheduleHeader); err != nil {
		return err
	}
	for _, slot := range s {
		if err := cw.Write(slotRecord(&slot, slot.Event)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteScheduleJSON writes the optimized schedule to w as a JSON array.
func WriteScheduleJSON(w io.Writer, s model.Schedule) error {
	rows := make([]ScheduleRow, 0, len(s))
	for _, slot := range s {
		rows = append(rows, scheduleRow(&slot, slot.Event))
	}
	enc := json.NewEncoder(w)
	return enc.Encode(rows)
}

// WriteCutListCSV writes every rejected event with its cause to w, in
// evaluation order.
func WriteCutListCSV(w io.Writer, cut []model.RejectedEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(cutListHeader); err != nil {
		return err
	}
	for _, entry := range cut {
		rec := slotRecord(entry.Slot, entry.Event)
		rec = append(rec, entry.Cause.String())
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCutListJSON writes the cut list to w as a JSON array.
func WriteCutListJSON(w io.Writer, cut []model.RejectedEntry) error {
	rows := make([]CutRow, 0, len(cut))
	for _, entry := range cut {
		rows = append(rows, CutRow{
			ScheduleRow: scheduleRow(entry.Slot, entry.Event),
			Cause:       entry.Cause.String(),
		})
	}
	enc := json.NewEncoder(w)
	return enc.Encode(rows)
}

// slot may be nil for events rejected before window derivation.
func scheduleRow(slot *model.ScheduleSlot, ev model.CandidateEvent) ScheduleRow {
	row := ScheduleRow{
		Name:          ev.Name,
		DurationHours: optPtr(ev.Duration),
		Midpoint:      ev.Midpoint.Format(DisplayTimeLayout),
		RA:            optPtr(ev.RA),
		Dec:           optPtr(ev.Dec),
		Period:        optPtr(ev.Period),
		TransitDepth:  optPtr(ev.TransitDepth),
		AirMass:       optPtr(ev.MidAirMass),
		Magnitude:     optPtr(ev.Magnitude),
	}
	if slot != nil {
		row.TransitStart = slot.TransitStart.Format(DisplayTimeLayout)
		row.TransitEnd = slot.TransitEnd.Format(DisplayTimeLayout)
		row.ScheduleStart = slot.Start.Format(DisplayTimeLayout)
		row.ScheduleEnd = slot.End.Format(DisplayTimeLayout)
	}
	return row
}

func slotRecord(slot *model.ScheduleSlot, ev model.CandidateEvent) []string {
	row := scheduleRow(slot, ev)
	return []string{
		row.Name,
		optString(ev.Duration),
		row.Midpoint,
		row.TransitStart,
		row.TransitEnd,
		row.ScheduleStart,
		row.ScheduleEnd,
		optString(ev.RA),
		optString(ev.Dec),
		optString(ev.Period),
		optString(ev.TransitDepth),
		optString(ev.MidAirMass),
		optString(ev.Magnitude),
	}
}

func optPtr(o model.OptFloat) *float64 {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

func optString(o model.OptFloat) string {
	if !o.Valid {
		return ""
	}
	return strconv.FormatFloat(o.Value, 'f', -1, 64)
}

// FormatTime formats t for display, matching the report layout.
func FormatTime(t time.Time) string {
	return t.Format(DisplayTimeLayout)
}
