package api

import (
	"fmt"

	"foxvalley/internal/calculator"
	"foxvalley/internal/domain"

	"github.com/gin-gonic/gin"
)

type getHistoryResponse struct {
	Points []domain.HistoryPoint    `json:"points"`
	Stats  *calculator.HistoryStats `json:"stats"`
}

func (m ApiHandler) history(c *gin.Context) {
	points, stats, err := m.ArchiveService.History(requestContext(c))
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to get history: %w", err), c)
		return
	}

	c.JSON(200, getHistoryResponse{
		Points: points,
		Stats:  stats,
	})
}

func (m ApiHandler) archive(c *gin.Context) {
	moved, err := m.ArchiveService.ArchiveStale(requestContext(c))
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, gin.H{
		"archived": moved,
	})
}
