package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/merli/hearttrack-backend-go/internal/config"
	"github.com/merli/hearttrack-backend-go/internal/database"
	"github.com/merli/hearttrack-backend-go/internal/ecg"
	"github.com/merli/hearttrack-backend-go/internal/handler"
	"github.com/merli/hearttrack-backend-go/internal/middleware"
	"github.com/merli/hearttrack-backend-go/internal/models"
	"github.com/merli/hearttrack-backend-go/internal/repository"
	"github.com/merli/hearttrack-backend-go/internal/service"
	"github.com/merli/hearttrack-backend-go/pkg/response"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.MaxMultipartMemory = cfg.MaxUploadBytes

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "HeartTrack Backend API is running",
		})
	})

	// Wire repository -> service -> handler
	repo := repository.NewRecordingRepository(database.GetDB())
	recordingService := service.NewRecordingService(repo, cfg.SampleRate)

	schedule := models.DefaultActivitySchedule()
	analysisService := service.NewAnalysisService(repo, ecg.Config{
		SampleRate:        cfg.SampleRate,
		ThresholdFraction: cfg.PeakThreshold,
		Boundaries:        schedule.Boundaries,
		Labels:            schedule.Labels,
	})

	recordingHandler := handler.NewRecordingHandler(recordingService, analysisService)
	analysisHandler := handler.NewAnalysisHandler(analysisService)

	// API 路由组
	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(120, time.Minute))

	// Token 签发
	api.POST("/auth/token", func(c *gin.Context) {
		var body struct {
			APIKey string `json:"apiKey" binding:"required"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || body.APIKey != cfg.APIKey {
			response.Error(c, http.StatusUnauthorized, "Invalid API key", nil)
			return
		}
		token, err := middleware.IssueToken(cfg.JWTSecret)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to issue token", err)
			return
		}
		response.Success(c, gin.H{"token": token})
	})

	protected := api.Group("")
	if cfg.AuthEnabled {
		protected.Use(middleware.Auth(cfg.JWTSecret))
	}

	// 心电记录接口
	recordings := protected.Group("/recordings")
	{
		recordings.POST("", recordingHandler.Upload)
		recordings.GET("", recordingHandler.GetRecordings)
		recordings.GET("/:id", recordingHandler.GetRecordingByID)
		recordings.DELETE("/:id", recordingHandler.DeleteRecording)

		// 分析结果接口
		recordings.POST("/:id/analyze", analysisHandler.Analyze)
		recordings.GET("/:id/samples", analysisHandler.GetSamples)
		recordings.GET("/:id/beats", analysisHandler.GetBeats)
		recordings.GET("/:id/hrv", analysisHandler.GetHRV)
		recordings.GET("/:id/activities", analysisHandler.GetActivities)
		recordings.GET("/:id/zones", analysisHandler.GetZones)
	}

	return r
}
