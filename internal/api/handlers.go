package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (s *Server) fail(c *gin.Context, what string, err error) {
	s.log.Error("query failed", "what", what, "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": what + " query failed"})
}

func (s *Server) handleActiveAlerts(c *gin.Context) {
	alerts, err := s.store.ActiveAlerts(c.Request.Context())
	if err != nil {
		s.fail(c, "active alerts", err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

func (s *Server) handleResolveAlert(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid alert id"})
		return
	}
	resolved, err := s.store.ResolveAlert(c.Request.Context(), id)
	if err != nil {
		s.fail(c, "resolve alert", err)
		return
	}
	if !resolved {
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Alert %d not found or already resolved.", id)})
		return
	}
	s.log.Info("alert resolved", "alertId", id)
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Alert %d resolved successfully.", id)})
}

func (s *Server) handleHourlyLoad(c *gin.Context) {
	data, err := s.store.HourlyLoad(c.Request.Context())
	if err != nil {
		s.fail(c, "hourly load", err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (s *Server) handleGenerationMix(c *gin.Context) {
	data, err := s.store.GenerationMix(c.Request.Context())
	if err != nil {
		s.fail(c, "generation mix", err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (s *Server) handleLoadTempCorrelation(c *gin.Context) {
	data, err := s.store.LoadTempCorrelation(c.Request.Context())
	if err != nil {
		s.fail(c, "load/temp correlation", err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (s *Server) handleHeatmap(c *gin.Context) {
	data, err := s.store.LoadHeatmap(c.Request.Context())
	if err != nil {
		s.fail(c, "heatmap", err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// sankeyDiagram is the node/link layout the dashboard's Sankey widget
// renders: node labels plus index-based links.
type sankeyDiagram struct {
	Nodes sankeyNodes `json:"nodes"`
	Links sankeyLinks `json:"links"`
}

type sankeyNodes struct {
	Label []string `json:"label"`
}

type sankeyLinks struct {
	Source []int     `json:"source"`
	Target []int     `json:"target"`
	Value  []float64 `json:"value"`
	Label  []string  `json:"label"`
}

func (s *Server) handleSankey(c *gin.Context) {
	flows, err := s.store.EnergyFlows(c.Request.Context())
	if err != nil {
		s.fail(c, "sankey", err)
		return
	}

	diagram := sankeyDiagram{
		Nodes: sankeyNodes{Label: []string{}},
		Links: sankeyLinks{Source: []int{}, Target: []int{}, Value: []float64{}, Label: []string{}},
	}
	index := make(map[string]int)
	nodeOf := func(label string) int {
		if i, ok := index[label]; ok {
			return i
		}
		i := len(diagram.Nodes.Label)
		index[label] = i
		diagram.Nodes.Label = append(diagram.Nodes.Label, label)
		return i
	}
	for _, f := range flows {
		diagram.Links.Source = append(diagram.Links.Source, nodeOf(f.From))
		diagram.Links.Target = append(diagram.Links.Target, nodeOf(f.To))
		diagram.Links.Value = append(diagram.Links.Value, f.ValMW)
		diagram.Links.Label = append(diagram.Links.Label, fmt.Sprintf("%s -> %s", f.From, f.To))
	}
	c.JSON(http.StatusOK, diagram)
}

func (s *Server) handleNetworkMap(c *gin.Context) {
	data, err := s.store.FullNetworkMap(c.Request.Context())
	if err != nil {
		s.fail(c, "network map", err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (s *Server) handleMaintenanceCalendar(c *gin.Context) {
	data, err := s.store.MaintenanceCalendar(c.Request.Context())
	if err != nil {
		s.fail(c, "maintenance calendar", err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (s *Server) handleConsumerTypes(c *gin.Context) {
	data, err := s.store.ConsumerTypes(c.Request.Context())
	if err != nil {
		s.fail(c, "consumer types", err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (s *Server) handleHourlyCost(c *gin.Context) {
	data, err := s.store.HourlyCost(c.Request.Context())
	if err != nil {
		s.fail(c, "hourly cost", err)
		return
	}
	c.JSON(http.StatusOK, data)
}
