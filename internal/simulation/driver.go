package simulation

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/voltgrid/gridsim/internal/topology"
)

const alertTypeOverload = "Overload"

// DriverConfig describes one simulation run.
type DriverConfig struct {
	Start      time.Time
	End        time.Time
	Step       time.Duration
	Seed       int64 // 0 seeds from the wall clock
	FlushEvery int   // ticks per flush chunk, 0 buffers the whole run
	Params     Params
}

// Stats summarizes a completed run.
type Stats struct {
	RunID      string
	Ticks      int
	Flushes    int
	Weather    int
	Prices     int
	Loads      int
	Generation int
	Lines      int
	Alerts     int
}

// Driver walks the fixed timestamp grid and feeds the signal models in
// dependency order: weather and price per region first, then loads consuming
// the cached per-region weather, then generation, then line loads. All state
// (weather walks, per-run consumer classes, the RNG) is owned here.
type Driver struct {
	log    *slog.Logger
	cfg    DriverConfig
	models Models
	topo   topology.Snapshot
	sink   Sink

	rng     *rand.Rand
	runID   string
	classes map[int64]topology.ConsumerClass
	weather map[int64]WeatherState
}

// NewDriver prepares a run: seeds the random source, assigns each substation
// a consumer class for the duration of the run, and initializes per-region
// weather state.
func NewDriver(log *slog.Logger, cfg DriverConfig, topo topology.Snapshot, sink Sink) *Driver {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	d := &Driver{
		log:     log,
		cfg:     cfg,
		models:  Models{P: cfg.Params, Step: cfg.Step},
		topo:    topo,
		sink:    sink,
		rng:     rng,
		runID:   uuid.NewString(),
		classes: make(map[int64]topology.ConsumerClass, len(topo.Substations)),
		weather: make(map[int64]WeatherState, len(topo.Regions)),
	}
	for _, sub := range topo.Substations {
		d.classes[sub.ID] = topology.Classes[rng.Intn(len(topology.Classes))]
	}
	for _, reg := range topo.Regions {
		d.weather[reg.ID] = d.models.NewWeatherState(rng, cfg.Start)
	}
	for _, sub := range topo.Substations {
		if _, ok := d.weather[sub.RegionID]; !ok {
			log.Warn("substation references unknown region, its load will see zero-value weather",
				"substationId", sub.ID, "regionId", sub.RegionID)
		}
	}
	d.log = log.With("runId", d.runID)
	d.log.Info("run prepared", "seed", seed,
		"start", cfg.Start, "end", cfg.End, "step", cfg.Step.String())
	return d
}

// RunID identifies this run in logs.
func (d *Driver) RunID() string { return d.runID }

// Class reports the consumer class assigned to a substation for this run.
func (d *Driver) Class(substationID int64) topology.ConsumerClass {
	return d.classes[substationID]
}

// Run executes the simulation over the full grid and flushes the generated
// batches through the sink. With FlushEvery > 0 a flush happens every K
// ticks; each flush is an independent transactional unit, so chunks already
// committed stay committed when a later chunk fails.
func (d *Driver) Run(ctx context.Context) (Stats, error) {
	stats := Stats{RunID: d.runID}
	batch := &Batch{}

	for ts := d.cfg.Start; !ts.After(d.cfg.End); ts = ts.Add(d.cfg.Step) {
		d.tick(ts, batch, &stats)
		stats.Ticks++

		if d.cfg.FlushEvery > 0 && stats.Ticks%d.cfg.FlushEvery == 0 {
			if err := d.flush(ctx, batch, &stats); err != nil {
				return stats, err
			}
			batch = &Batch{}
		}
	}

	if batch.Len() > 0 {
		if err := d.flush(ctx, batch, &stats); err != nil {
			return stats, err
		}
	}

	d.log.Info("run complete",
		"ticks", stats.Ticks, "flushes", stats.Flushes,
		"loads", stats.Loads, "generation", stats.Generation,
		"lines", stats.Lines, "alerts", stats.Alerts)
	return stats, nil
}

func (d *Driver) tick(ts time.Time, batch *Batch, stats *Stats) {
	weatherCache := make(map[int64]WeatherSample, len(d.topo.Regions))

	for _, reg := range d.topo.Regions {
		sample, next := d.models.Weather(d.rng, ts, d.weather[reg.ID])
		d.weather[reg.ID] = next
		weatherCache[reg.ID] = sample

		batch.Weather = append(batch.Weather, WeatherRow{
			Timestamp: ts, RegionID: reg.ID,
			TemperatureC: sample.TemperatureC, Condition: sample.Condition,
		})
		batch.Prices = append(batch.Prices, PriceRow{
			Timestamp: ts, RegionID: reg.ID,
			PricePerMWh: d.models.Price(d.rng, ts),
		})
		stats.Weather++
		stats.Prices++
	}

	for _, sub := range d.topo.Substations {
		temp := weatherCache[sub.RegionID].TemperatureC
		load, anomaly := d.models.Load(d.rng, sub, d.classes[sub.ID], ts, temp)
		batch.Loads = append(batch.Loads, LoadRow{
			Timestamp: ts, SubstationID: sub.ID, LoadMW: load,
		})
		stats.Loads++

		if anomaly {
			batch.Alerts = append(batch.Alerts, AlertRow{
				Timestamp: ts,
				Type:      alertTypeOverload,
				Description: fmt.Sprintf(
					"Overload detected at substation %d: load %.2f MW exceeds limit %.2f MW",
					sub.ID, load, sub.CapacityMW),
				SubstationID: sub.ID,
			})
			stats.Alerts++
		}
	}

	// Generation keys off the first region's sky condition, matching the
	// reference generator. Runs with no regions fall back to cloudy.
	cond := CondCloudy
	if len(d.topo.Regions) > 0 {
		cond = weatherCache[d.topo.Regions[0].ID].Condition
	}
	for _, gen := range d.topo.Generators {
		batch.Generation = append(batch.Generation, GenerationRow{
			Timestamp: ts, GeneratorID: gen.ID,
			OutputMW: d.models.Generation(d.rng, gen, cond, ts),
		})
		stats.Generation++
	}

	for _, line := range d.topo.Lines {
		batch.Lines = append(batch.Lines, LineRow{
			Timestamp: ts, LineID: line.ID,
			LoadMW: d.models.LineLoad(d.rng, line),
		})
		stats.Lines++
	}
}

func (d *Driver) flush(ctx context.Context, batch *Batch, stats *Stats) error {
	if err := d.sink.WriteBatch(ctx, batch); err != nil {
		return fmt.Errorf("flush %d rows: %w", batch.Len(), err)
	}
	stats.Flushes++
	d.log.Info("batch flushed", "rows", batch.Len(), "flush", stats.Flushes)
	return nil
}
