package cmd

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/inventory-sim/inventory-sim/sim/network"
	"github.com/inventory-sim/inventory-sim/sim/sweep"
)

// ErrorDetail is the body of every API error.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ErrorResponse wraps an ErrorDetail.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// SimulationRequest is the body of POST /v1/simulations.
type SimulationRequest struct {
	Input   network.Input `json:"input"`
	Options sweep.Options `json:"options"`
}

// CountResponse is the body returned by POST /v1/scenarios/count.
type CountResponse struct {
	Scenarios int `json:"scenarios"`
}

// Server exposes count and sweep operations over HTTP.
type Server struct {
	metrics  *sweep.Metrics
	validate *validator.Validate
}

// NewServer creates a Server recording into m.
func NewServer(m *sweep.Metrics) *Server {
	return &Server{metrics: m, validate: newValidator()}
}

// Router builds the gin engine with every route and middleware.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(requestLogger())
	router.Use(errorHandler())
	router.Use(s.metricsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	api := router.Group("/v1")
	{
		api.POST("/scenarios/count", s.countScenarios)
		api.POST("/simulations", s.runSimulation)
	}
	router.NoRoute(func(c *gin.Context) {
		abortWithError(c, http.StatusNotFound, "NOT_FOUND", "route not found", nil)
	})
	return router
}

func (s *Server) countScenarios(c *gin.Context) {
	var in network.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	c.JSON(http.StatusOK, CountResponse{Scenarios: sweep.Count(&in)})
}

func (s *Server) runSimulation(c *gin.Context) {
	var req SimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	if err := s.validate.Struct(req.Options); err != nil {
		abortWithError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid options", validationFields(err))
		return
	}
	req.Options.Metrics = s.metrics

	var (
		report *sweep.Report
		err    error
	)
	if c.Query("logs") == "true" {
		report, err = sweep.RunWithLogs(c.Request.Context(), &req.Input, req.Options, nil)
	} else {
		report, err = sweep.Run(c.Request.Context(), &req.Input, req.Options)
	}
	if err != nil {
		abortWithError(c, http.StatusServiceUnavailable, "CANCELLED", err.Error(), nil)
		return
	}
	c.JSON(http.StatusOK, newReportDocument(report))
}

func abortWithError(c *gin.Context, status int, code, message string, fields map[string]string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorDetail{Code: code, Message: message, Fields: fields},
	})
}

// validationFields maps each failing field to the tag it failed.
func validationFields(err error) map[string]string {
	fields := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, e := range verrs {
			fields[e.Field()] = e.Tag() + formatParam(e.Param())
		}
	}
	return fields
}

func formatParam(p string) string {
	if p == "" {
		return ""
	}
	return "=" + p
}

// errorHandler turns panics into a JSON 500.
func errorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logrus.Errorf("panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		abortWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", nil)
	})
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logrus.Debugf("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

func (s *Server) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		s.metrics.RecordHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
