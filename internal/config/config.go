package config

import (
	"os"
	"strconv"
)

// Config 应用配置
type Config struct {
	Port        string
	DBPath      string
	JWTSecret   string
	APIKey      string
	AuthEnabled bool

	// Analysis defaults
	SampleRate    float64 // Device ticks per second
	PeakThreshold float64 // Fraction of max ECG used as detection threshold

	MaxUploadBytes int64 // 上传文件大小上限（字节）
}

// Load 加载配置
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/recordings/recordings.db"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	apiKey := os.Getenv("API_KEY")
	if apiKey == "" {
		apiKey = "dev-api-key"
	}

	sampleRate := 1024.0 // Sensor tick rate of the wearable
	if raw := os.Getenv("SAMPLE_RATE"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
			sampleRate = v
		}
	}

	peakThreshold := 0.6
	if raw := os.Getenv("PEAK_THRESHOLD"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 && v <= 1 {
			peakThreshold = v
		}
	}

	return &Config{
		Port:           port,
		DBPath:         dbPath,
		JWTSecret:      jwtSecret,
		APIKey:         apiKey,
		AuthEnabled:    os.Getenv("AUTH_ENABLED") == "true",
		SampleRate:     sampleRate,
		PeakThreshold:  peakThreshold,
		MaxUploadBytes: 1024 * 1024 * 100, // 100MB 上传上限
	}
}
