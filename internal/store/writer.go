package store

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/voltgrid/gridsim/internal/simulation"
)

// Append targets of the write contract. Lowercase because the schema was
// created with unquoted identifiers and pq.CopyIn quotes the name it gets.
const (
	tableWeather    = "weatherreports"
	tablePricing    = "energypricing"
	tableLoads      = "loadmeasurements"
	tableGeneration = "generationmeasurements"
	tableLines      = "linemeasurements"
	tableAlerts     = "alerts"
)

// Writer is the batch sink backed by Postgres COPY. Each WriteBatch call is
// one transaction: either every row of the batch becomes visible or none.
type Writer struct {
	db  *sql.DB
	log *slog.Logger
}

// NewWriter creates a writer over an open store connection.
func NewWriter(db *sql.DB, log *slog.Logger) *Writer {
	return &Writer{db: db, log: log}
}

// WriteBatch bulk-inserts one batch. The alerts stream is written only when
// non-empty; alert status defaults to NEW in the schema. On any failure the
// transaction rolls back and the error carries the table and pending row
// count.
func (w *Writer) WriteBatch(ctx context.Context, b *simulation.Batch) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return &WriteError{Table: tableWeather, Rows: b.Len(), Err: err}
	}
	defer tx.Rollback()

	err = copyRows(ctx, tx, tableWeather,
		[]string{"timestamp", "region_id", "temperature", "conditions"},
		len(b.Weather), func(i int) []interface{} {
			r := b.Weather[i]
			return []interface{}{r.Timestamp, r.RegionID, r.TemperatureC, string(r.Condition)}
		})
	if err != nil {
		return err
	}

	err = copyRows(ctx, tx, tablePricing,
		[]string{"timestamp", "region_id", "price_per_mwh"},
		len(b.Prices), func(i int) []interface{} {
			r := b.Prices[i]
			return []interface{}{r.Timestamp, r.RegionID, decimal.NewFromFloat(r.PricePerMWh)}
		})
	if err != nil {
		return err
	}

	err = copyRows(ctx, tx, tableLoads,
		[]string{"timestamp", "actual_load_mw", "substation_id"},
		len(b.Loads), func(i int) []interface{} {
			r := b.Loads[i]
			return []interface{}{r.Timestamp, r.LoadMW, r.SubstationID}
		})
	if err != nil {
		return err
	}

	err = copyRows(ctx, tx, tableGeneration,
		[]string{"timestamp", "actual_generation_mw", "generator_id"},
		len(b.Generation), func(i int) []interface{} {
			r := b.Generation[i]
			return []interface{}{r.Timestamp, r.OutputMW, r.GeneratorID}
		})
	if err != nil {
		return err
	}

	err = copyRows(ctx, tx, tableLines,
		[]string{"timestamp", "actual_load_mw", "line_id"},
		len(b.Lines), func(i int) []interface{} {
			r := b.Lines[i]
			return []interface{}{r.Timestamp, r.LoadMW, r.LineID}
		})
	if err != nil {
		return err
	}

	if len(b.Alerts) > 0 {
		err = copyRows(ctx, tx, tableAlerts,
			[]string{"timestamp", "alert_type", "description", "substation_id"},
			len(b.Alerts), func(i int) []interface{} {
				r := b.Alerts[i]
				return []interface{}{r.Timestamp, r.Type, r.Description, r.SubstationID}
			})
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return &WriteError{Table: tableAlerts, Rows: b.Len(), Err: err}
	}

	w.log.Info("batch committed",
		"weather", len(b.Weather), "prices", len(b.Prices),
		"loads", len(b.Loads), "generation", len(b.Generation),
		"lines", len(b.Lines), "alerts", len(b.Alerts))
	return nil
}

func copyRows(ctx context.Context, tx *sql.Tx, table string, cols []string, n int, row func(i int) []interface{}) error {
	if n == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(table, cols...))
	if err != nil {
		return &WriteError{Table: table, Rows: n, Err: err}
	}
	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, row(i)...); err != nil {
			stmt.Close()
			return &WriteError{Table: table, Rows: n, Err: err}
		}
	}
	// Final empty Exec flushes the COPY buffer.
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return &WriteError{Table: table, Rows: n, Err: err}
	}
	if err := stmt.Close(); err != nil {
		return &WriteError{Table: table, Rows: n, Err: err}
	}
	return nil
}
