package cmd

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/obsnight/transitplan/config"
	"github.com/obsnight/transitplan/core/analyze"
	"github.com/obsnight/transitplan/core/filter"
	coremetrics "github.com/obsnight/transitplan/core/metrics"
	"github.com/obsnight/transitplan/core/model"
	"github.com/obsnight/transitplan/core/schedule"
	"github.com/obsnight/transitplan/infra/ingest"
	"github.com/obsnight/transitplan/infra/logger"
	"github.com/obsnight/transitplan/infra/metrics"
	"github.com/obsnight/transitplan/infra/mqtt"
	"github.com/obsnight/transitplan/pkg/export"
)

var planCmd = &cobra.Command{
	Use:   "plan <candidates.csv>",
	Short: "Compute an optimized observation schedule from a candidate table",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New("plan")
	runID := uuid.NewString()
	started := time.Now()

	tbl, err := ingest.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}
	logMissingColumns(log, tbl.Columns)

	fcfg, err := cfg.Planner.FilterConfig()
	if err != nil {
		return fmt.Errorf("planner config: %w", err)
	}
	pipe, err := filter.New(fcfg, tbl.Columns)
	if err != nil {
		return fmt.Errorf("admission filter: %w", err)
	}
	res := pipe.Run(tbl.Events)

	planned, overlaps := schedule.Plan(res.Admitted)
	cutList := append(res.Rejected, overlaps...)
	equiv := schedule.CountEquivalent([][]model.ScheduleSlot{res.Admitted}, len(planned))
	summary := analyze.Summarize(planned)

	if err := writeReports(cfg.Output, planned, cutList); err != nil {
		return err
	}
	if err := recordRun(cfg, runID, len(tbl.Events), res, planned, cutList, equiv, started); err != nil {
		log.Errorf("record metrics: %v", err)
	}
	if cfg.MQTT.Enabled {
		if err := publishPlan(cfg.MQTT, planned); err != nil {
			log.Errorf("publish plan: %v", err)
		}
	}

	log.Infow("run complete", map[string]any{
		"run_id":            runID,
		"inputs":            len(tbl.Events),
		"admitted":          len(res.Admitted),
		"scheduled":         len(planned),
		"cut":               len(cutList),
		"equivalent_orders": equiv,
		"targets":           summary.Targets,
		"span_hours":        summary.SpanHours,
		"mean_air_mass":     summary.MeanAirMass,
	})
	return nil
}

// logMissingColumns surfaces schema gaps once per run; per-row effects
// show up in the cut list as their own causes.
func logMissingColumns(log logger.Logger, cols filter.Columns) {
	if !cols.MidAirMass {
		log.Warnf("mid-point air mass column not found in source")
	}
	if !cols.IngressAirMass {
		log.Warnf("ingress air mass column not found in source")
	}
	if !cols.EgressAirMass {
		log.Warnf("egress air mass column not found in source")
	}
}

func writeReports(out config.OutputConfig, planned model.Schedule, cutList []model.RejectedEntry) error {
	schedFile, err := os.Create(out.SchedulePath)
	if err != nil {
		return fmt.Errorf("create schedule report: %w", err)
	}
	defer schedFile.Close()
	cutFile, err := os.Create(out.CutListPath)
	if err != nil {
		return fmt.Errorf("create cut list report: %w", err)
	}
	defer cutFile.Close()

	switch out.Format {
	case "json":
		if err := export.WriteScheduleJSON(schedFile, planned); err != nil {
			return fmt.Errorf("write schedule: %w", err)
		}
		if err := export.WriteCutListJSON(cutFile, cutList); err != nil {
			return fmt.Errorf("write cut list: %w", err)
		}
	default:
		if err := export.WriteScheduleCSV(schedFile, planned); err != nil {
			return fmt.Errorf("write schedule: %w", err)
		}
		if err := export.WriteCutListCSV(cutFile, cutList); err != nil {
			return fmt.Errorf("write cut list: %w", err)
		}
	}
	return nil
}

func recordRun(cfg *config.Config, runID string, inputs int, res filter.Result, planned model.Schedule, cutList []model.RejectedEntry, equiv int, started time.Time) error {
	rec, err := metrics.NewRecorder(cfg.Metrics)
	if err != nil {
		return err
	}
	rejections := make(map[string]int, len(cutList))
	for _, entry := range cutList {
		rejections[entry.Cause.String()]++
	}
	return rec.RecordRun(coremetrics.RunResult{
		RunID:            runID,
		Inputs:           inputs,
		Admitted:         len(res.Admitted),
		Scheduled:        len(planned),
		Rejections:       rejections,
		EquivalentOrders: equiv,
		Elapsed:          time.Since(started),
		Time:             started,
	})
}

func publishPlan(cfg mqtt.Config, planned model.Schedule) error {
	var buf bytes.Buffer
	if err := export.WriteScheduleJSON(&buf, planned); err != nil {
		return err
	}
	pub, err := mqtt.NewPahoPublisher(cfg)
	if err != nil {
		return err
	}
	defer pub.Close()
	return pub.PublishPlan(buf.Bytes())
}
