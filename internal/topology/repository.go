package topology

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
)

// Repository fetches the static reference tables from the grid store.
type Repository struct {
	db  *sql.DB
	log *slog.Logger
}

// NewRepository creates a repository over an open store connection.
func NewRepository(db *sql.DB, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}

// Fetch loads the full topology snapshot. An empty reference table is not an
// error: the run simply produces no samples for that entity type, and a
// warning names the table so the operator can tell a thin run from a bug.
// A read that fails mid-iteration is an error, never a truncated snapshot.
func (r *Repository) Fetch(ctx context.Context) (Snapshot, error) {
	var (
		snap Snapshot
		err  error
	)

	if snap.Substations, err = r.fetchSubstations(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Generators, err = r.fetchGenerators(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Lines, err = r.fetchLines(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Regions, err = r.fetchRegions(ctx); err != nil {
		return Snapshot{}, err
	}

	for table, n := range map[string]int{
		"regions":     len(snap.Regions),
		"substations": len(snap.Substations),
		"generators":  len(snap.Generators),
		"powerlines":  len(snap.Lines),
	} {
		if n == 0 {
			r.log.Warn("empty reference table, no samples will be generated for it", "table", table)
		}
	}
	r.log.Info("topology loaded",
		"regions", len(snap.Regions),
		"substations", len(snap.Substations),
		"generators", len(snap.Generators),
		"lines", len(snap.Lines))

	return snap, nil
}

func (r *Repository) fetchSubstations(ctx context.Context) ([]Substation, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT substation_id, capacity_mw, region_id FROM substations")
	if err != nil {
		return nil, fmt.Errorf("fetch substations: %w", err)
	}
	defer rows.Close()

	var out []Substation
	for rows.Next() {
		var (
			sub      Substation
			capacity decimal.Decimal
		)
		if err := rows.Scan(&sub.ID, &capacity, &sub.RegionID); err != nil {
			return nil, fmt.Errorf("scan substation: %w", err)
		}
		sub.CapacityMW = capacity.InexactFloat64()
		out = append(out, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate substations: %w", err)
	}
	return out, nil
}

func (r *Repository) fetchGenerators(ctx context.Context) ([]Generator, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT generator_id, generator_type, max_output_mw FROM generators")
	if err != nil {
		return nil, fmt.Errorf("fetch generators: %w", err)
	}
	defer rows.Close()

	var out []Generator
	for rows.Next() {
		var (
			gen Generator
			typ string
			max decimal.Decimal
		)
		if err := rows.Scan(&gen.ID, &typ, &max); err != nil {
			return nil, fmt.Errorf("scan generator: %w", err)
		}
		gen.Type = ParseGeneratorType(typ)
		gen.MaxOutputMW = max.InexactFloat64()
		out = append(out, gen)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate generators: %w", err)
	}
	return out, nil
}

func (r *Repository) fetchLines(ctx context.Context) ([]PowerLine, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT line_id, max_load_mw, from_substation_id FROM powerlines")
	if err != nil {
		return nil, fmt.Errorf("fetch power lines: %w", err)
	}
	defer rows.Close()

	var out []PowerLine
	for rows.Next() {
		var (
			line PowerLine
			max  decimal.Decimal
		)
		if err := rows.Scan(&line.ID, &max, &line.FromSubstationID); err != nil {
			return nil, fmt.Errorf("scan power line: %w", err)
		}
		line.MaxLoadMW = max.InexactFloat64()
		out = append(out, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate power lines: %w", err)
	}
	return out, nil
}

func (r *Repository) fetchRegions(ctx context.Context) ([]Region, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT region_id FROM regions")
	if err != nil {
		return nil, fmt.Errorf("fetch regions: %w", err)
	}
	defer rows.Close()

	var out []Region
	for rows.Next() {
		var reg Region
		if err := rows.Scan(&reg.ID); err != nil {
			return nil, fmt.Errorf("scan region: %w", err)
		}
		out = append(out, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate regions: %w", err)
	}
	return out, nil
}
