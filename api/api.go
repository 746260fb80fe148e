package api

import (
	"context"
	"fmt"
	"time"

	"foxvalley/internal/domain"
	"foxvalley/internal/logger"
	l3_service "foxvalley/internal/service/l3"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ApiHandler struct {
	ReconciliationService l3_service.ReconciliationService
	BriefService          l3_service.BriefService
	ArchiveService        l3_service.ArchiveService
	BundleService         l3_service.BundleService
	Logger                *zap.SugaredLogger
}

func (m ApiHandler) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to foxvalley"})
	})
	router.GET("/portfolio", m.portfolio)
	router.GET("/candidates", m.candidates)
	router.GET("/allocation", m.allocation)
	router.GET("/delta", m.delta)
	router.GET("/diagnostics", m.diagnostics)
	router.GET("/history", m.history)
	router.GET("/brief", m.getBrief)
	router.POST("/brief", m.writeBrief)
	router.POST("/archive", m.archive)
	router.POST("/bundle", m.bundle)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	return m.Router().Run(fmt.Sprintf(":%d", port))
}

func requestContext(c *gin.Context) context.Context {
	return c.Request.Context()
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, 500)
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	logger.FromContext(requestContext(c)).Errorw("request failed", "error", err.Error(), "status", code)
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

// reconcile runs the pipeline for the request. it writes the error response
// itself and returns nil on failure.
func (m ApiHandler) reconcile(c *gin.Context) *domain.Reconciliation {
	rec, err := m.ReconciliationService.Run(requestContext(c))
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to reconcile: %w", err), c)
		return nil
	}
	return rec
}

func (m ApiHandler) logRequestMiddleware(c *gin.Context) {
	requestID := uuid.New()
	log := m.Logger
	if log == nil {
		log = logger.New()
	}
	log = log.With("requestID", requestID)
	c.Request = c.Request.WithContext(logger.WithLogger(c.Request.Context(), log))

	start := time.Now().UTC()
	c.Next()

	log.Infow(
		"handled request",
		"method", c.Request.Method,
		"route", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"durationMs", time.Since(start).Milliseconds(),
		"ip", c.ClientIP(),
	)
}
