package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const envPrefix = "TOPEVENTS_"

// applyEnvOverrides overwrites fields whose TOPEVENTS_* variable is set and parses.
func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.LogLevel, "LOG_LEVEL")

	setStr(&cfg.Polymarket.GammaURL, "GAMMA_URL")
	setStr(&cfg.Polymarket.SiteURL, "SITE_URL")
	setStr(&cfg.Polymarket.UserAgent, "USER_AGENT")
	setDuration(&cfg.Polymarket.HTTPTimeout, "HTTP_TIMEOUT")

	setInt(&cfg.Report.Limit, "LIMIT")
	setInt(&cfg.Report.Days, "DAYS")
	setInt(&cfg.Report.Top, "TOP")
	setBool(&cfg.Report.Scored, "SCORED")
	setFloat64(&cfg.Report.MinScore, "MIN_SCORE")
	setStr(&cfg.Report.Format, "FORMAT")

	setStr(&cfg.Server.Addr, "SERVER_ADDR")
	setStringSlice(&cfg.Server.CORSOrigins, "SERVER_CORS_ORIGINS")
	setDuration(&cfg.Server.RequestTimeout, "SERVER_REQUEST_TIMEOUT")
}

func lookup(key string) (string, bool) {
	v := os.Getenv(envPrefix + key)
	return v, v != ""
}

func setStr(dst *string, key string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := lookup(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v, ok := lookup(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v, ok := lookup(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *Duration, key string) {
	if v, ok := lookup(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = Duration(d)
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	v, ok := lookup(key)
	if !ok {
		return
	}
	var cleaned []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			cleaned = append(cleaned, p)
		}
	}
	if len(cleaned) > 0 {
		*dst = cleaned
	}
}
