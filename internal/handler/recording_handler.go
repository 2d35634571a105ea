package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/merli/hearttrack-backend-go/internal/ecg"
	"github.com/merli/hearttrack-backend-go/internal/ingest"
	"github.com/merli/hearttrack-backend-go/internal/models"
	"github.com/merli/hearttrack-backend-go/internal/service"
	"github.com/merli/hearttrack-backend-go/pkg/response"
)

// RecordingHandler handles HTTP requests for recording upload and metadata
type RecordingHandler struct {
	recordings *service.RecordingService
	analysis   *service.AnalysisService
}

// NewRecordingHandler creates a new recording handler
func NewRecordingHandler(recordings *service.RecordingService, analysis *service.AnalysisService) *RecordingHandler {
	return &RecordingHandler{recordings: recordings, analysis: analysis}
}

// Upload handles POST /api/v1/recordings
//
// Accepts a multipart form with a "file" field holding the sensor export
// (.csv or .txt) and an optional "threshold" field overriding the peak
// detection threshold fraction for the initial analysis.
func (h *RecordingHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Missing file upload", err)
		return
	}

	var req models.AnalysisRequest
	if raw := c.PostForm("threshold"); raw != "" {
		req.ThresholdFraction, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid threshold value", err)
			return
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Failed to open upload", err)
		return
	}
	defer file.Close()

	rec, samples, err := h.recordings.Upload(fileHeader.Filename, file)
	if err != nil {
		var missing *ingest.MissingColumnError
		if errors.As(err, &missing) {
			response.Error(c, http.StatusBadRequest, "Upload is missing a required column", err)
			return
		}
		response.Error(c, http.StatusBadRequest, "Failed to parse upload", err)
		return
	}

	result, err := h.analysis.AnalyzeSamples(rec.ID, samples, rec.HasAccel, req)
	if err != nil {
		var cfgErr *ecg.ConfigError
		if errors.As(err, &cfgErr) {
			response.Error(c, http.StatusBadRequest, "Invalid analysis configuration", err)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Analysis failed", err)
		return
	}

	response.Success(c, gin.H{
		"recording":    rec,
		"beatCount":    result.Beats.Len(),
		"droppedBeats": result.DroppedBeats,
	})
}

// GetRecordings handles GET /api/v1/recordings
func (h *RecordingHandler) GetRecordings(c *gin.Context) {
	recordings, err := h.recordings.GetRecordings()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list recordings", err)
		return
	}
	response.Success(c, recordings)
}

// GetRecordingByID handles GET /api/v1/recordings/:id
func (h *RecordingHandler) GetRecordingByID(c *gin.Context) {
	rec, err := h.recordings.GetRecordingByID(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get recording", err)
		return
	}
	if rec == nil {
		response.Error(c, http.StatusNotFound, "Recording not found", nil)
		return
	}
	response.Success(c, rec)
}

// DeleteRecording handles DELETE /api/v1/recordings/:id
func (h *RecordingHandler) DeleteRecording(c *gin.Context) {
	id := c.Param("id")
	if err := h.recordings.DeleteRecording(id); err != nil {
		response.Error(c, http.StatusNotFound, "Recording not found", err)
		return
	}
	h.analysis.Forget(id)
	response.Success(c, gin.H{"deleted": id})
}
