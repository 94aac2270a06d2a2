package simulation

import (
	"context"
	"time"
)

// Output rows, one struct per append target of the store's write contract.

type WeatherRow struct {
	Timestamp    time.Time
	RegionID     int64
	TemperatureC float64
	Condition    Condition
}

type PriceRow struct {
	Timestamp   time.Time
	RegionID    int64
	PricePerMWh float64
}

type LoadRow struct {
	Timestamp    time.Time
	SubstationID int64
	LoadMW       float64
}

type GenerationRow struct {
	Timestamp   time.Time
	GeneratorID int64
	OutputMW    float64
}

type LineRow struct {
	Timestamp time.Time
	LineID    int64
	LoadMW    float64
}

type AlertRow struct {
	Timestamp    time.Time
	Type         string
	Description  string
	SubstationID int64
}

// Batch accumulates generated rows between flushes.
type Batch struct {
	Weather    []WeatherRow
	Prices     []PriceRow
	Loads      []LoadRow
	Generation []GenerationRow
	Lines      []LineRow
	Alerts     []AlertRow
}

// Len is the total row count across all streams.
func (b *Batch) Len() int {
	return len(b.Weather) + len(b.Prices) + len(b.Loads) +
		len(b.Generation) + len(b.Lines) + len(b.Alerts)
}

// Sink receives fully-formed batches. Each WriteBatch call must be
// all-or-nothing: on error none of the batch may be visible in the store.
type Sink interface {
	WriteBatch(ctx context.Context, b *Batch) error
}
