package plan

import (
	"os"
	"strconv"
)

// Config holds plan-store tunables. AvgSpeedKmh only feeds the estimated
// duration readout; it has nothing to do with routing.
type Config struct {
	DefaultPlanName string
	AvgSpeedKmh     float64
}

// DefaultConfig returns a Config with display-oriented defaults.
func DefaultConfig() Config {
	return Config{
		DefaultPlanName: "My Trip",
		AvgSpeedKmh:     20,
	}
}

// LoadConfig reads plan configuration from environment variables, falling
// back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("LOCALMATE_PLAN_NAME"); v != "" {
		cfg.DefaultPlanName = v
	}
	if v := os.Getenv("LOCALMATE_AVG_SPEED_KMH"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.AvgSpeedKmh = f
		}
	}

	return cfg
}
