package api

import (
	"fmt"
	"strings"

	"foxvalley/internal/domain"

	"github.com/gin-gonic/gin"
)

type candidateResponse struct {
	Ticker           string   `json:"ticker"`
	Rank             *int     `json:"rank"`
	Sources          []string `json:"sources"`
	Held             bool     `json:"held"`
	Action           string   `json:"action"`
	AllocationPct    float64  `json:"allocationPct"`
	AllocationAmount float64  `json:"allocationAmount"`
	TacticalScore    *float64 `json:"tacticalScore"`
	TacticalTag      string   `json:"tacticalTag,omitempty"`
	CompositeScore   *float64 `json:"compositeScore"`
	PriceChange5d    *float64 `json:"priceChange5d"`
	Volatility30d    *float64 `json:"volatility30d"`
}

type screenResponse struct {
	Label      string           `json:"label"`
	File       snapshotResponse `json:"file"`
	PriorFile  snapshotResponse `json:"priorFile"`
	NumEntries int              `json:"numEntries"`
}

type getCandidatesResponse struct {
	Date       string              `json:"date"`
	Screens    []screenResponse    `json:"screens"`
	Candidates []candidateResponse `json:"candidates"`
}

var actionsByName = map[string]domain.Action{
	"buy":    domain.ActionBuy,
	"hold":   domain.ActionHold,
	"review": domain.ActionReview,
	"watch":  domain.ActionWatch,
	"trim":   domain.ActionTrim,
	"avoid":  domain.ActionAvoid,
}

// GET /candidates?action=buy
func (m ApiHandler) candidates(c *gin.Context) {
	var filter *domain.Action
	if q := c.Query("action"); q != "" {
		action, ok := actionsByName[strings.ToLower(q)]
		if !ok {
			returnErrorJsonCode(fmt.Errorf("unknown action %q", q), c, 400)
			return
		}
		filter = &action
	}

	rec := m.reconcile(c)
	if rec == nil {
		return
	}

	screens := []screenResponse{}
	for _, s := range rec.Screens {
		screens = append(screens, screenResponse{
			Label:      s.Label,
			File:       newSnapshotResponse(s.File),
			PriorFile:  newSnapshotResponse(s.PriorFile),
			NumEntries: s.NumEntries,
		})
	}

	out := []candidateResponse{}
	for _, cand := range rec.Candidates.Candidates {
		if filter != nil && cand.Action != *filter {
			continue
		}
		out = append(out, candidateResponse{
			Ticker:           cand.Ticker,
			Rank:             cand.Rank,
			Sources:          cand.Sources,
			Held:             cand.Held,
			Action:           string(cand.Action),
			AllocationPct:    cand.AllocationPct,
			AllocationAmount: cand.AllocationAmount,
			TacticalScore:    cand.TacticalScore,
			TacticalTag:      cand.TacticalTag,
			CompositeScore:   cand.Metrics.CompositeScore,
			PriceChange5d:    cand.Metrics.PriceChange5d,
			Volatility30d:    cand.Metrics.Volatility30d,
		})
	}

	c.JSON(200, getCandidatesResponse{
		Date:       rec.Date,
		Screens:    screens,
		Candidates: out,
	})
}
