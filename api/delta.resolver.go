package api

import (
	"foxvalley/internal/domain"

	"github.com/gin-gonic/gin"
)

type getDeltaResponse struct {
	Candidates domain.DeltaReport `json:"candidates"`
	Holdings   domain.DeltaReport `json:"holdings"`
}

func (m ApiHandler) delta(c *gin.Context) {
	rec := m.reconcile(c)
	if rec == nil {
		return
	}

	c.JSON(200, getDeltaResponse{
		Candidates: rec.CandidateDelta,
		Holdings:   rec.HoldingsDelta,
	})
}

func (m ApiHandler) diagnostics(c *gin.Context) {
	rec := m.reconcile(c)
	if rec == nil {
		return
	}

	events := []domain.Diagnostic(rec.Diagnostics)
	if events == nil {
		events = []domain.Diagnostic{}
	}
	c.JSON(200, gin.H{
		"runID":  rec.RunID,
		"events": events,
	})
}
