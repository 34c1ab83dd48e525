package metrics

import (
	"context"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/obsnight/transitplan/core/metrics"
	"github.com/obsnight/transitplan/infra/logger"
)

// InfluxRecorder writes planning runs to an InfluxDB bucket.
type InfluxRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxRecorder creates a recorder for the given InfluxDB endpoint.
func NewInfluxRecorder(cfg coremetrics.InfluxConfig) *InfluxRecorder {
	client := influxdb2.NewClient(cfg.URL, cfg.Token)
	return &InfluxRecorder{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		log:      logger.New("influx-recorder"),
	}
}

// NewInfluxRecorderWithFallback pings the InfluxDB instance and returns
// a NopRecorder when the health check fails, so an unreachable metrics
// backend never blocks a planning run.
func NewInfluxRecorderWithFallback(cfg coremetrics.InfluxConfig) coremetrics.RunRecorder {
	rec := NewInfluxRecorder(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := rec.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			rec.log.Errorf("influx health check error: %v", err)
		} else {
			rec.log.Errorf("influx health status: %s", health.Status)
		}
		rec.client.Close()
		return coremetrics.NopRecorder{}
	}
	return rec
}

// RecordRun writes the run as a single measurement point.
func (r *InfluxRecorder) RecordRun(res coremetrics.RunResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	rejected := 0
	for _, n := range res.Rejections {
		rejected += n
	}
	p := write.NewPointWithMeasurement("planning_run").
		AddTag("run_id", res.RunID).
		AddField("inputs", res.Inputs).
		AddField("admitted", res.Admitted).
		AddField("scheduled", res.Scheduled).
		AddField("rejected", rejected).
		AddField("equivalent_orders", res.EquivalentOrders).
		AddField("elapsed_ms", res.Elapsed.Milliseconds()).
		SetTime(res.Time)
	return r.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (r *InfluxRecorder) Close() {
	r.client.Close()
}
