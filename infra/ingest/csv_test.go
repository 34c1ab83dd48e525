package ingest

import (
	"strings"
	"testing"
	"time"
)

const sampleCSV = `# exported 2024-10-09
planetname,transitduration,midpointcalendar,ra,dec,period,transitdepthcalc,midpointairmass,ingressairmass,egressairmass,magnitude_k
WASP-12 b,3.0,2024-10-09 22:00:00,97.64,29.67,1.09,0.014,1.2,1.4,1.3,10.19
HAT-P-7 b,nan,2024-10-09 23:30:00,292.25,47.97,2.20,0.006,1.1,,1.5,9.33
`

func TestReadSample(t *testing.T) {
	tbl, err := Read(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(tbl.Events) != 2 {
		t.Fatalf("events %d", len(tbl.Events))
	}
	if !tbl.Columns.MidAirMass || !tbl.Columns.IngressAirMass || !tbl.Columns.EgressAirMass {
		t.Fatalf("columns %+v", tbl.Columns)
	}

	ev := tbl.Events[0]
	if ev.Name != "WASP-12 b" {
		t.Fatalf("name %q", ev.Name)
	}
	if !ev.Duration.Valid || ev.Duration.Value != 3.0 {
		t.Fatalf("duration %+v", ev.Duration)
	}
	want := time.Date(2024, 10, 9, 22, 0, 0, 0, time.UTC)
	if !ev.Midpoint.Equal(want) {
		t.Fatalf("midpoint %v", ev.Midpoint)
	}

	// NaN duration and empty ingress both parse to invalid values.
	ev = tbl.Events[1]
	if ev.Duration.Valid {
		t.Fatalf("nan duration should be invalid")
	}
	if ev.IngressAirMass.Valid {
		t.Fatalf("empty ingress should be invalid")
	}
	if !ev.EgressAirMass.Valid || ev.EgressAirMass.Value != 1.5 {
		t.Fatalf("egress %+v", ev.EgressAirMass)
	}
}

func TestReadMissingAirMassColumns(t *testing.T) {
	data := "planetname,transitduration,midpointcalendar,magnitude_k\n" +
		"x,2.0,2024-10-09 22:00:00,9.1\n"
	tbl, err := Read(strings.NewReader(data))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if tbl.Columns.MidAirMass || tbl.Columns.IngressAirMass || tbl.Columns.EgressAirMass {
		t.Fatalf("columns should be absent: %+v", tbl.Columns)
	}
	if tbl.Events[0].MidAirMass.Valid {
		t.Fatalf("absent column should yield invalid value")
	}
}

func TestReadSlashDates(t *testing.T) {
	data := "planetname,transitduration,midpointcalendar\nx,1.0,10/09/2024 22:15\n"
	tbl, err := Read(strings.NewReader(data))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := time.Date(2024, 10, 9, 22, 15, 0, 0, time.UTC)
	if !tbl.Events[0].Midpoint.Equal(want) {
		t.Fatalf("midpoint %v", tbl.Events[0].Midpoint)
	}
}

func TestReadErrors(t *testing.T) {
	if _, err := Read(strings.NewReader("")); err == nil {
		t.Fatalf("expected error for empty input")
	}
	if _, err := Read(strings.NewReader("planetname,transitduration\n")); err == nil {
		t.Fatalf("expected error for missing midpoint column")
	}
	bad := "planetname,transitduration,midpointcalendar\nx,1.0,not-a-time\n"
	if _, err := Read(strings.NewReader(bad)); err == nil {
		t.Fatalf("expected error for malformed midpoint")
	}
}
