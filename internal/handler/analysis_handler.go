package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/merli/hearttrack-backend-go/internal/ecg"
	"github.com/merli/hearttrack-backend-go/internal/models"
	"github.com/merli/hearttrack-backend-go/internal/service"
	"github.com/merli/hearttrack-backend-go/pkg/response"
)

// AnalysisHandler handles HTTP requests for analysis artifacts
type AnalysisHandler struct {
	analysis *service.AnalysisService
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysis *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysis: analysis}
}

// Analyze handles POST /api/v1/recordings/:id/analyze
//
// Re-runs the pipeline with a different threshold fraction and/or activity
// schedule. The previous run's artifacts are replaced wholesale.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	// An empty body re-runs with the server defaults.
	var req models.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.analysis.Analyze(c.Param("id"), req)
	if err != nil {
		var cfgErr *ecg.ConfigError
		if errors.As(err, &cfgErr) {
			response.Error(c, http.StatusBadRequest, "Invalid analysis configuration", err)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Analysis failed", err)
		return
	}
	if result == nil {
		response.Error(c, http.StatusNotFound, "Recording not found", nil)
		return
	}

	response.Success(c, gin.H{
		"beatCount":    result.Beats.Len(),
		"droppedBeats": result.DroppedBeats,
		"intervals":    result.Intervals,
	})
}

// GetSamples handles GET /api/v1/recordings/:id/samples
//
// Returns the enriched sample series for plotting, optionally restricted
// to an elapsed-time window and decimated with a stride.
func (h *AnalysisHandler) GetSamples(c *gin.Context) {
	var filter models.SampleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	result, err := h.analysis.Result(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get samples", err)
		return
	}
	if result == nil {
		response.Error(c, http.StatusNotFound, "Recording not found", nil)
		return
	}

	if filter.Stride < 1 {
		filter.Stride = 1
	}

	var samples []models.Sample
	for i, s := range result.Samples.Samples {
		if filter.ToSeconds > 0 && s.ElapsedSeconds >= filter.ToSeconds {
			break
		}
		if s.ElapsedSeconds < filter.FromSeconds {
			continue
		}
		if i%filter.Stride != 0 {
			continue
		}
		samples = append(samples, s)
	}

	response.Success(c, gin.H{
		"samples":    samples,
		"total":      result.Samples.Len(),
		"returned":   len(samples),
		"hasAccel":   result.Samples.HasAccel,
		"sampleRate": result.Samples.SampleRate,
	})
}

// GetBeats handles GET /api/v1/recordings/:id/beats
func (h *AnalysisHandler) GetBeats(c *gin.Context) {
	result, err := h.analysis.Result(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get beats", err)
		return
	}
	if result == nil {
		response.Error(c, http.StatusNotFound, "Recording not found", nil)
		return
	}

	response.Success(c, gin.H{
		"beats":        result.Beats.Beats,
		"beatCount":    result.Beats.Len(),
		"droppedBeats": result.DroppedBeats,
	})
}

// GetHRV handles GET /api/v1/recordings/:id/hrv
func (h *AnalysisHandler) GetHRV(c *gin.Context) {
	summary, err := h.analysis.HRVSummary(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to compute HRV summary", err)
		return
	}
	if summary == nil {
		response.Error(c, http.StatusNotFound, "Recording not found", nil)
		return
	}
	response.Success(c, summary)
}

// GetActivities handles GET /api/v1/recordings/:id/activities
func (h *AnalysisHandler) GetActivities(c *gin.Context) {
	result, err := h.analysis.Result(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get activities", err)
		return
	}
	if result == nil {
		response.Error(c, http.StatusNotFound, "Recording not found", nil)
		return
	}

	summaries, err := h.analysis.ActivitySummaries(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to compute activity summaries", err)
		return
	}

	response.Success(c, gin.H{
		"intervals": result.Intervals,
		"summaries": summaries,
	})
}

// GetZones handles GET /api/v1/recordings/:id/zones?age=25
func (h *AnalysisHandler) GetZones(c *gin.Context) {
	age, err := strconv.Atoi(c.DefaultQuery("age", "25"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid age", err)
		return
	}

	report, err := h.analysis.ZoneReport(c.Param("id"), age)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Failed to compute zone report", err)
		return
	}
	if report == nil {
		response.Error(c, http.StatusNotFound, "Recording not found", nil)
		return
	}
	response.Success(c, report)
}
