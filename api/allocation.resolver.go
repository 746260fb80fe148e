package api

import (
	"github.com/gin-gonic/gin"
)

type allocationEntryResponse struct {
	Ticker string  `json:"ticker"`
	Pct    float64 `json:"pct"`
	Amount string  `json:"amount"`
}

type getAllocationResponse struct {
	Date           string                    `json:"date"`
	TotalValue     string                    `json:"totalValue"`
	DeployFraction float64                   `json:"deployFraction"`
	PositionCap    float64                   `json:"positionCap"`
	Deployable     string                    `json:"deployable"`
	PerPositionPct float64                   `json:"perPositionPct"`
	TotalAmount    string                    `json:"totalAmount"`
	Entries        []allocationEntryResponse `json:"entries"`
}

func (m ApiHandler) allocation(c *gin.Context) {
	rec := m.reconcile(c)
	if rec == nil {
		return
	}
	plan := rec.Allocation

	entries := []allocationEntryResponse{}
	for _, e := range plan.Entries {
		entries = append(entries, allocationEntryResponse{
			Ticker: e.Ticker,
			Pct:    e.Pct,
			Amount: e.Amount.StringFixed(2),
		})
	}

	c.JSON(200, getAllocationResponse{
		Date:           rec.Date,
		TotalValue:     plan.TotalValue.StringFixed(2),
		DeployFraction: plan.DeployFraction,
		PositionCap:    plan.PositionCap,
		Deployable:     plan.Deployable.StringFixed(2),
		PerPositionPct: plan.PerPositionPct,
		TotalAmount:    plan.TotalAmount().StringFixed(2),
		Entries:        entries,
	})
}
