package api

import (
	"foxvalley/internal/domain"

	"github.com/gin-gonic/gin"
)

type snapshotResponse struct {
	Found     bool   `json:"found"`
	Name      string `json:"name,omitempty"`
	DateToken string `json:"dateToken,omitempty"`
}

func newSnapshotResponse(f domain.SnapshotFile) snapshotResponse {
	return snapshotResponse{
		Found:     f.Found,
		Name:      f.Name,
		DateToken: f.DateToken,
	}
}

type positionResponse struct {
	Ticker        string   `json:"ticker"`
	Description   string   `json:"description"`
	Shares        *float64 `json:"shares"`
	Price         *float64 `json:"price"`
	MarketValue   float64  `json:"marketValue"`
	CostBasis     *float64 `json:"costBasis"`
	GainPct       *float64 `json:"gainPct"`
	AllocationPct *float64 `json:"allocationPct"`
	TrailingStop  *float64 `json:"trailingStop"`
	Rank          *int     `json:"rank"`
	Signal        string   `json:"signal,omitempty"`
	Placeholder   bool     `json:"placeholder,omitempty"`
}

type getPortfolioResponse struct {
	Date      string                  `json:"date"`
	File      snapshotResponse        `json:"file"`
	Summary   domain.PortfolioSummary `json:"summary"`
	Positions []positionResponse      `json:"positions"`
	Delta     domain.DeltaReport      `json:"delta"`
}

func (m ApiHandler) portfolio(c *gin.Context) {
	rec := m.reconcile(c)
	if rec == nil {
		return
	}

	positions := []positionResponse{}
	for _, p := range rec.Positions {
		positions = append(positions, positionResponse{
			Ticker:        p.Ticker,
			Description:   p.Description,
			Shares:        p.Shares,
			Price:         p.Price,
			MarketValue:   p.MarketValue(),
			CostBasis:     p.CostBasis,
			GainPct:       p.GainPct(),
			AllocationPct: p.AllocationPct,
			TrailingStop:  p.TrailingStop,
			Rank:          p.Rank,
			Signal:        p.Signal,
			Placeholder:   p.Placeholder,
		})
	}

	c.JSON(200, getPortfolioResponse{
		Date:      rec.Portfolio.Date,
		File:      newSnapshotResponse(rec.PortfolioFile),
		Summary:   rec.Summary,
		Positions: positions,
		Delta:     rec.HoldingsDelta,
	})
}
