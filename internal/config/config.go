package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	MaxUploadMB  int
	LogFile      string

	// ingestion knobs
	PreferredSheet string  // sheet name tried first (annual plan exports use 연간)
	HeaderScanRows int     // how deep the header locator scans
	MaxDailyGJ     float64 // outlier bound separating daily rows from subtotals
}

func Load() Config {
	port, _ := strconv.Atoi(getenv("PORT", "8084"))
	mb, _ := strconv.Atoi(getenv("MAX_UPLOAD_MB", "64"))
	scan, _ := strconv.Atoi(getenv("HEADER_SCAN_ROWS", "20"))
	maxGJ, _ := strconv.ParseFloat(getenv("MAX_DAILY_GJ", "100000"), 64)
	origins := strings.Split(getenv("ALLOW_ORIGINS", "*"), ",")
	return Config{
		Host:           getenv("HOST", "127.0.0.1"),
		Port:           port,
		AllowOrigins:   origins,
		LogLevel:       getenv("LOG_LEVEL", "info"),
		MaxUploadMB:    mb,
		LogFile:        getenv("LOG_FILE", "logs/supply-service.log"),
		PreferredSheet: getenv("PREFERRED_SHEET", "연간"),
		HeaderScanRows: scan,
		MaxDailyGJ:     maxGJ,
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
