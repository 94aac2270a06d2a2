package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Reader runs the aggregate queries behind the dashboard API. Every method
// is a single read; the only write is ResolveAlert's conditional update.
type Reader struct {
	db *sql.DB
}

// NewReader creates a reader over an open store connection.
func NewReader(db *sql.DB) *Reader {
	return &Reader{db: db}
}

// ActiveAlert is an open overload alert joined with its substation.
type ActiveAlert struct {
	AlertID           int64     `json:"alert_id"`
	Timestamp         time.Time `json:"timestamp"`
	SubstationName    string    `json:"substation_name"`
	SubstationLimitMW float64   `json:"substation_limit"`
	Description       string    `json:"alert_description"`
}

// ActiveAlerts returns NEW alerts, newest first.
func (r *Reader) ActiveAlerts(ctx context.Context) ([]ActiveAlert, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.alert_id, a.timestamp, s.substation_name, s.capacity_mw, a.description
		FROM alerts a
		JOIN substations s ON a.substation_id = s.substation_id
		WHERE a.status = 'NEW'
		ORDER BY a.timestamp DESC`)
	if err != nil {
		return nil, fmt.Errorf("query active alerts: %w", err)
	}
	defer rows.Close()

	var out []ActiveAlert
	for rows.Next() {
		var a ActiveAlert
		if err := rows.Scan(&a.AlertID, &a.Timestamp, &a.SubstationName, &a.SubstationLimitMW, &a.Description); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ResolveAlert transitions an alert from NEW to RESOLVED. The update is
// conditional on the current status, so it reports false when the alert is
// missing or already resolved instead of flapping the row.
func (r *Reader) ResolveAlert(ctx context.Context, alertID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE alerts SET status = 'RESOLVED' WHERE alert_id = $1 AND status = 'NEW'`,
		alertID)
	if err != nil {
		return false, fmt.Errorf("resolve alert %d: %w", alertID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("resolve alert %d: %w", alertID, err)
	}
	return n > 0, nil
}

// HourBucket is an average load keyed by hour of day.
type HourBucket struct {
	HourOfDay int     `json:"hour_of_day"`
	AvgLoadMW float64 `json:"avg_load"`
}

// HourlyLoad averages load per hour of day across the whole history.
func (r *Reader) HourlyLoad(ctx context.Context) ([]HourBucket, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT EXTRACT(HOUR FROM timestamp)::int AS hour_of_day, AVG(actual_load_mw)
		FROM loadmeasurements
		GROUP BY hour_of_day
		ORDER BY hour_of_day`)
	if err != nil {
		return nil, fmt.Errorf("query hourly load: %w", err)
	}
	defer rows.Close()

	var out []HourBucket
	for rows.Next() {
		var b HourBucket
		if err := rows.Scan(&b.HourOfDay, &b.AvgLoadMW); err != nil {
			return nil, fmt.Errorf("scan hourly load: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// MixRow is total generated output per fuel type.
type MixRow struct {
	GeneratorType string  `json:"generator_type"`
	TotalMW       float64 `json:"total_generated"`
}

// GenerationMix sums generated output by fuel type.
func (r *Reader) GenerationMix(ctx context.Context) ([]MixRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT g.generator_type, SUM(gm.actual_generation_mw)
		FROM generationmeasurements gm
		JOIN generators g ON gm.generator_id = g.generator_id
		GROUP BY g.generator_type`)
	if err != nil {
		return nil, fmt.Errorf("query generation mix: %w", err)
	}
	defer rows.Close()

	var out []MixRow
	for rows.Next() {
		var m MixRow
		if err := rows.Scan(&m.GeneratorType, &m.TotalMW); err != nil {
			return nil, fmt.Errorf("scan generation mix: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// CorrelationRow pairs hourly average load with hourly average temperature.
type CorrelationRow struct {
	Hour      time.Time `json:"hour"`
	AvgLoadMW float64   `json:"avg_load"`
	AvgTempC  float64   `json:"avg_temp"`
}

// LoadTempCorrelation joins hourly load and temperature averages over the
// trailing 7 days of history.
func (r *Reader) LoadTempCorrelation(ctx context.Context) ([]CorrelationRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		WITH time_window AS (
			SELECT MAX(timestamp) - INTERVAL '7 days' AS start_time, MAX(timestamp) AS end_time
			FROM loadmeasurements
		),
		hourly_load AS (
			SELECT date_trunc('hour', timestamp) AS hour, AVG(actual_load_mw) AS avg_load
			FROM loadmeasurements, time_window
			WHERE timestamp BETWEEN time_window.start_time AND time_window.end_time
			GROUP BY hour
		),
		hourly_weather AS (
			SELECT date_trunc('hour', timestamp) AS hour, AVG(temperature) AS avg_temp
			FROM weatherreports, time_window
			WHERE timestamp BETWEEN time_window.start_time AND time_window.end_time
			GROUP BY hour
		)
		SELECT hl.hour, hl.avg_load, hw.avg_temp
		FROM hourly_load hl
		JOIN hourly_weather hw ON hl.hour = hw.hour
		ORDER BY hl.hour`)
	if err != nil {
		return nil, fmt.Errorf("query load/temp correlation: %w", err)
	}
	defer rows.Close()

	var out []CorrelationRow
	for rows.Next() {
		var c CorrelationRow
		if err := rows.Scan(&c.Hour, &c.AvgLoadMW, &c.AvgTempC); err != nil {
			return nil, fmt.Errorf("scan correlation: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// HeatmapCell is an average load keyed by ISO weekday and hour.
type HeatmapCell struct {
	DayOfWeek int     `json:"day_of_week"`
	HourOfDay int     `json:"hour_of_day"`
	AvgLoadMW float64 `json:"avg_load"`
}

// LoadHeatmap averages load per (ISO weekday, hour) cell.
func (r *Reader) LoadHeatmap(ctx context.Context) ([]HeatmapCell, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT EXTRACT(ISODOW FROM timestamp)::int AS day_of_week,
		       EXTRACT(HOUR FROM timestamp)::int AS hour_of_day,
		       AVG(actual_load_mw)
		FROM loadmeasurements
		GROUP BY 1, 2
		ORDER BY 1, 2`)
	if err != nil {
		return nil, fmt.Errorf("query heatmap: %w", err)
	}
	defer rows.Close()

	var out []HeatmapCell
	for rows.Next() {
		var c HeatmapCell
		if err := rows.Scan(&c.DayOfWeek, &c.HourOfDay, &c.AvgLoadMW); err != nil {
			return nil, fmt.Errorf("scan heatmap: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// NetworkNode is a substation with its latest load, for the topology map.
type NetworkNode struct {
	SubstationID   int64   `json:"substation_id"`
	SubstationName string  `json:"substation_name"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	CapacityMW     float64 `json:"capacity_mw"`
	CurrentLoadMW  float64 `json:"current_load"`
	LoadPercent    float64 `json:"load_percent"`
}

// NetworkEdge is a power line with its latest load.
type NetworkEdge struct {
	LineID           int64   `json:"line_id"`
	FromSubstationID int64   `json:"from_substation_id"`
	ToSubstationID   int64   `json:"to_substation_id"`
	LineName         string  `json:"line_name"`
	MaxLoadMW        float64 `json:"max_load_mw"`
	CurrentLoadMW    float64 `json:"current_load"`
	LoadPercent      float64 `json:"load_percent"`
}

// NetworkMap is a full snapshot of the grid with latest measurements.
type NetworkMap struct {
	Nodes []NetworkNode `json:"nodes"`
	Edges []NetworkEdge `json:"edges"`
}

// FullNetworkMap returns every geolocated substation and every line with its
// most recent measurement and percent-of-capacity.
func (r *Reader) FullNetworkMap(ctx context.Context) (NetworkMap, error) {
	var nm NetworkMap

	rows, err := r.db.QueryContext(ctx, `
		WITH latest_loads AS (
			SELECT DISTINCT ON (substation_id) substation_id, actual_load_mw
			FROM loadmeasurements
			ORDER BY substation_id, timestamp DESC
		)
		SELECT s.substation_id, s.substation_name, s.latitude, s.longitude, s.capacity_mw,
		       COALESCE(ll.actual_load_mw, 0),
		       CASE WHEN s.capacity_mw > 0
		            THEN COALESCE(ll.actual_load_mw, 0) / s.capacity_mw * 100
		            ELSE 0 END
		FROM substations s
		LEFT JOIN latest_loads ll ON s.substation_id = ll.substation_id
		WHERE s.latitude IS NOT NULL AND s.longitude IS NOT NULL`)
	if err != nil {
		return nm, fmt.Errorf("query network nodes: %w", err)
	}
	for rows.Next() {
		var n NetworkNode
		if err := rows.Scan(&n.SubstationID, &n.SubstationName, &n.Latitude, &n.Longitude,
			&n.CapacityMW, &n.CurrentLoadMW, &n.LoadPercent); err != nil {
			rows.Close()
			return nm, fmt.Errorf("scan network node: %w", err)
		}
		nm.Nodes = append(nm.Nodes, n)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nm, fmt.Errorf("iterate network nodes: %w", err)
	}
	if err := rows.Close(); err != nil {
		return nm, fmt.Errorf("query network nodes: %w", err)
	}

	rows, err = r.db.QueryContext(ctx, `
		WITH latest_line_loads AS (
			SELECT DISTINCT ON (line_id) line_id, actual_load_mw
			FROM linemeasurements
			ORDER BY line_id, timestamp DESC
		)
		SELECT pl.line_id, pl.from_substation_id, pl.to_substation_id, pl.line_name, pl.max_load_mw,
		       COALESCE(lll.actual_load_mw, 0),
		       CASE WHEN pl.max_load_mw > 0
		            THEN COALESCE(lll.actual_load_mw, 0) / pl.max_load_mw * 100
		            ELSE 0 END
		FROM powerlines pl
		LEFT JOIN latest_line_loads lll ON pl.line_id = lll.line_id`)
	if err != nil {
		return nm, fmt.Errorf("query network edges: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var e NetworkEdge
		if err := rows.Scan(&e.LineID, &e.FromSubstationID, &e.ToSubstationID, &e.LineName,
			&e.MaxLoadMW, &e.CurrentLoadMW, &e.LoadPercent); err != nil {
			return nm, fmt.Errorf("scan network edge: %w", err)
		}
		nm.Edges = append(nm.Edges, e)
	}
	return nm, rows.Err()
}

// SankeyFlow is one directed energy flow between two labeled diagram nodes.
type SankeyFlow struct {
	From  string
	To    string
	ValMW float64
}

// EnergyFlows returns the directed flows behind the Sankey diagram: total
// generation from each fuel type into its region, then total consumption
// from each region into each consumer class. Generation flows come first so
// the diagram reads left to right.
func (r *Reader) EnergyFlows(ctx context.Context) ([]SankeyFlow, error) {
	gen, err := r.queryFlows(ctx, "generation flows", `
		SELECT 'gen: ' || g.generator_type, 'region: ' || r.region_name,
		       SUM(gm.actual_generation_mw)
		FROM generationmeasurements gm
		JOIN generators g ON gm.generator_id = g.generator_id
		JOIN substations s ON g.substation_id = s.substation_id
		JOIN regions r ON s.region_id = r.region_id
		GROUP BY 1, 2`)
	if err != nil {
		return nil, err
	}
	con, err := r.queryFlows(ctx, "consumption flows", `
		SELECT 'region: ' || r.region_name, 'consumer: ' || c.consumer_type,
		       SUM(lm.actual_load_mw)
		FROM loadmeasurements lm
		JOIN consumers c ON lm.substation_id = c.substation_id
		JOIN substations s ON c.substation_id = s.substation_id
		JOIN regions r ON s.region_id = r.region_id
		GROUP BY 1, 2`)
	if err != nil {
		return nil, err
	}
	return append(gen, con...), nil
}

func (r *Reader) queryFlows(ctx context.Context, what, query string) ([]SankeyFlow, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", what, err)
	}
	defer rows.Close()

	var out []SankeyFlow
	for rows.Next() {
		var f SankeyFlow
		if err := rows.Scan(&f.From, &f.To, &f.ValMW); err != nil {
			return nil, fmt.Errorf("scan %s: %w", what, err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// MaintenanceEvent is a scheduled outage with its resolved object name.
type MaintenanceEvent struct {
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Reason     string    `json:"reason"`
	ObjectType string    `json:"object_type"`
	ObjectName string    `json:"object_name"`
}

// MaintenanceCalendar lists maintenance events in chronological order,
// resolving the object name against the substation or line it targets.
func (r *Reader) MaintenanceCalendar(ctx context.Context) ([]MaintenanceEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT me.start_time, me.end_time, me.reason, me.object_type,
		       CASE WHEN me.object_type = 'substation' THEN s.substation_name
		            WHEN me.object_type = 'line' THEN pl.line_name
		            ELSE 'N/A' END AS object_name
		FROM maintenanceevents me
		LEFT JOIN substations s ON me.object_id = s.substation_id AND me.object_type = 'substation'
		LEFT JOIN powerlines pl ON me.object_id = pl.line_id AND me.object_type = 'line'
		ORDER BY me.start_time ASC`)
	if err != nil {
		return nil, fmt.Errorf("query maintenance calendar: %w", err)
	}
	defer rows.Close()

	var out []MaintenanceEvent
	for rows.Next() {
		var e MaintenanceEvent
		if err := rows.Scan(&e.StartTime, &e.EndTime, &e.Reason, &e.ObjectType, &e.ObjectName); err != nil {
			return nil, fmt.Errorf("scan maintenance event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ConsumerTypeCount is the number of consumers per class.
type ConsumerTypeCount struct {
	ConsumerType string `json:"consumer_type"`
	Count        int64  `json:"consumer_count"`
}

// ConsumerTypes counts consumers by class.
func (r *Reader) ConsumerTypes(ctx context.Context) ([]ConsumerTypeCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT consumer_type, COUNT(*) FROM consumers GROUP BY consumer_type`)
	if err != nil {
		return nil, fmt.Errorf("query consumer types: %w", err)
	}
	defer rows.Close()

	var out []ConsumerTypeCount
	for rows.Next() {
		var c ConsumerTypeCount
		if err := rows.Scan(&c.ConsumerType, &c.Count); err != nil {
			return nil, fmt.Errorf("scan consumer type: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CostRow is the total cost of consumed energy for one hour.
type CostRow struct {
	Hour      time.Time `json:"hour"`
	TotalCost float64   `json:"total_hourly_cost"`
}

// HourlyCost multiplies consumed MWh by the average regional price, per hour
// over the trailing 7 days. The 0.25 factor converts 15-minute MW samples to
// MWh.
func (r *Reader) HourlyCost(ctx context.Context) ([]CostRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		WITH hourly_consumption AS (
			SELECT date_trunc('hour', lm.timestamp) AS hour, s.region_id,
			       SUM(lm.actual_load_mw * 0.25) AS total_mwh
			FROM loadmeasurements lm
			JOIN substations s ON lm.substation_id = s.substation_id
			GROUP BY 1, 2
		),
		hourly_prices AS (
			SELECT date_trunc('hour', timestamp) AS hour, region_id,
			       AVG(price_per_mwh) AS avg_price
			FROM energypricing
			GROUP BY 1, 2
		)
		SELECT hc.hour, SUM(hc.total_mwh * hp.avg_price)
		FROM hourly_consumption hc
		JOIN hourly_prices hp ON hc.hour = hp.hour AND hc.region_id = hp.region_id
		WHERE hc.hour >= (SELECT MAX(timestamp) - INTERVAL '7 days' FROM loadmeasurements)
		GROUP BY hc.hour
		ORDER BY hc.hour`)
	if err != nil {
		return nil, fmt.Errorf("query hourly cost: %w", err)
	}
	defer rows.Close()

	var out []CostRow
	for rows.Next() {
		var c CostRow
		if err := rows.Scan(&c.Hour, &c.TotalCost); err != nil {
			return nil, fmt.Errorf("scan hourly cost: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
