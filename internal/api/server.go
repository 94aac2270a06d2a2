// Package api serves the dashboard's read endpoints and the alert-resolve
// transition over the grid store.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/voltgrid/gridsim/internal/store"
)

// Store is the read surface the handlers need. *store.Reader satisfies it;
// tests substitute a fake.
type Store interface {
	ActiveAlerts(ctx context.Context) ([]store.ActiveAlert, error)
	ResolveAlert(ctx context.Context, alertID int64) (bool, error)
	HourlyLoad(ctx context.Context) ([]store.HourBucket, error)
	GenerationMix(ctx context.Context) ([]store.MixRow, error)
	LoadTempCorrelation(ctx context.Context) ([]store.CorrelationRow, error)
	LoadHeatmap(ctx context.Context) ([]store.HeatmapCell, error)
	EnergyFlows(ctx context.Context) ([]store.SankeyFlow, error)
	FullNetworkMap(ctx context.Context) (store.NetworkMap, error)
	MaintenanceCalendar(ctx context.Context) ([]store.MaintenanceEvent, error)
	ConsumerTypes(ctx context.Context) ([]store.ConsumerTypeCount, error)
	HourlyCost(ctx context.Context) ([]store.CostRow, error)
}

// Server wires the routes over a Store.
type Server struct {
	log    *slog.Logger
	store  Store
	router *gin.Engine
}

// NewServer builds the router with all dashboard routes registered.
func NewServer(log *slog.Logger, st Store) *Server {
	s := &Server{log: log, store: st}

	r := gin.New()
	r.Use(gin.Recovery(), metricsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	v1.GET("/alerts/active", s.handleActiveAlerts)
	v1.POST("/alerts/:id/resolve", s.handleResolveAlert)
	v1.GET("/load/hourly", s.handleHourlyLoad)
	v1.GET("/generation/mix", s.handleGenerationMix)
	v1.GET("/correlation/load-temp", s.handleLoadTempCorrelation)
	v1.GET("/analysis/heatmap", s.handleHeatmap)
	v1.GET("/analysis/sankey", s.handleSankey)
	v1.GET("/network/map", s.handleNetworkMap)
	v1.GET("/maintenance/calendar", s.handleMaintenanceCalendar)
	v1.GET("/analysis/consumer-types", s.handleConsumerTypes)
	v1.GET("/finance/hourly-cost", s.handleHourlyCost)

	s.router = r
	return s
}

// Router exposes the underlying handler, for tests and for http.Server.
func (s *Server) Router() http.Handler { return s.router }
